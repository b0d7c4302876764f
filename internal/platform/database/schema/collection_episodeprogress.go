package schema

// CollectionEpisodeProgressTable represents the 'collection.episodeprogress' table
type CollectionEpisodeProgressTable struct {
	Table         string
	ID            string
	UserItemID    string
	SeasonNumber  string
	EpisodeNumber string
	Watched       string
	WatchedOn     string
}

// CollectionEpisodeProgress is the schema definition for collection.episodeprogress
var CollectionEpisodeProgress = CollectionEpisodeProgressTable{
	Table:         "collection.episodeprogress",
	ID:            "id",
	UserItemID:    "useritemid",
	SeasonNumber:  "seasonnumber",
	EpisodeNumber: "episodenumber",
	Watched:       "watched",
	WatchedOn:     "watchedon",
}

func (t CollectionEpisodeProgressTable) Columns() []string {
	return []string{t.ID, t.UserItemID, t.SeasonNumber, t.EpisodeNumber, t.Watched, t.WatchedOn}
}
