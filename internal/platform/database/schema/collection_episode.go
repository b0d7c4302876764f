package schema

// CollectionEpisodeTable represents the 'collection.episode' table
type CollectionEpisodeTable struct {
	Table         string
	ID            string
	SeasonID      string
	Name          string
	ExternalID    string
	Watched       string
	EpisodeNumber string
	Duration      string
	ReleaseDate   string
	Description   string
}

// CollectionEpisode is the schema definition for collection.episode
var CollectionEpisode = CollectionEpisodeTable{
	Table:         "collection.episode",
	ID:            "id",
	SeasonID:      "seasonid",
	Name:          "name",
	ExternalID:    "externalid",
	Watched:       "watched",
	EpisodeNumber: "episodenumber",
	Duration:      "duration",
	ReleaseDate:   "releasedate",
	Description:   "description",
}

func (t CollectionEpisodeTable) Columns() []string {
	return []string{
		t.ID, t.SeasonID, t.Name, t.ExternalID, t.Watched, t.EpisodeNumber,
		t.Duration, t.ReleaseDate, t.Description,
	}
}
