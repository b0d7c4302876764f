package schema

// CollectionSeasonTable represents the 'collection.season' table
type CollectionSeasonTable struct {
	Table        string
	ID           string
	ShowID       string
	Name         string
	ExternalID   string
	SeasonNumber string
	ReleaseDate  string
	Description  string
}

// CollectionSeason is the schema definition for collection.season
var CollectionSeason = CollectionSeasonTable{
	Table:        "collection.season",
	ID:           "id",
	ShowID:       "showid",
	Name:         "name",
	ExternalID:   "externalid",
	SeasonNumber: "seasonnumber",
	ReleaseDate:  "releasedate",
	Description:  "description",
}

func (t CollectionSeasonTable) Columns() []string {
	return []string{t.ID, t.ShowID, t.Name, t.ExternalID, t.SeasonNumber, t.ReleaseDate, t.Description}
}
