package schema

// CollectionExternalIDTable represents the 'collection.externalid' table
type CollectionExternalIDTable struct {
	Table      string
	ItemID     string
	Source     string
	Identifier string
}

// CollectionExternalID is the schema definition for collection.externalid
var CollectionExternalID = CollectionExternalIDTable{
	Table:      "collection.externalid",
	ItemID:     "itemid",
	Source:     "source",
	Identifier: "identifier",
}

func (t CollectionExternalIDTable) Columns() []string {
	return []string{t.ItemID, t.Source, t.Identifier}
}
