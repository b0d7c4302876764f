package schema

// CollectionItemTable represents the 'collection.item' table.
// Every kind shares the table; variant columns are left at their defaults for other kinds.
type CollectionItemTable struct {
	Table         string
	ID            string
	ItemType      string
	Title         string
	Description   string
	ReleaseDate   string
	Language      string
	Genres        string
	Tags          string
	CoverImageURL string
	AverageRating string
	RatingsCount  string
	UpdatedAt     string

	// Book
	Authors     string
	Publisher   string
	PageCount   string
	CurrentPage string
	BookFormat  string

	// Movie
	Duration string

	// Game
	Platform   string
	TimePlayed string
}

// CollectionItem is the schema definition for collection.item
var CollectionItem = CollectionItemTable{
	Table:         "collection.item",
	ID:            "id",
	ItemType:      "itemtype",
	Title:         "title",
	Description:   "description",
	ReleaseDate:   "releasedate",
	Language:      "language",
	Genres:        "genres",
	Tags:          "tags",
	CoverImageURL: "coverimageurl",
	AverageRating: "averagerating",
	RatingsCount:  "ratingscount",
	UpdatedAt:     "updatedat",
	Authors:       "authors",
	Publisher:     "publisher",
	PageCount:     "pagecount",
	CurrentPage:   "currentpage",
	BookFormat:    "bookformat",
	Duration:      "duration",
	Platform:      "platform",
	TimePlayed:    "timeplayed",
}

// Columns returns all standard column names
func (t CollectionItemTable) Columns() []string {
	return []string{
		t.ID, t.ItemType, t.Title, t.Description, t.ReleaseDate, t.Language, t.Genres, t.Tags,
		t.CoverImageURL, t.AverageRating, t.RatingsCount, t.UpdatedAt,
		t.Authors, t.Publisher, t.PageCount, t.CurrentPage, t.BookFormat,
		t.Duration, t.Platform, t.TimePlayed,
	}
}
