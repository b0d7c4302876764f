package schema

// CollectionUserItemTable represents the 'collection.useritem' table,
// the join between an account and a collectible item.
type CollectionUserItemTable struct {
	Table         string
	ID            string
	UserID        string
	ItemID        string
	Status        string
	UserRating    string
	Notes         string
	DateAdded     string
	DateStarted   string
	DateCompleted string
	UpdatedAt     string
}

// CollectionUserItem is the schema definition for collection.useritem
var CollectionUserItem = CollectionUserItemTable{
	Table:         "collection.useritem",
	ID:            "id",
	UserID:        "userid",
	ItemID:        "itemid",
	Status:        "status",
	UserRating:    "userrating",
	Notes:         "notes",
	DateAdded:     "dateadded",
	DateStarted:   "datestarted",
	DateCompleted: "datecompleted",
	UpdatedAt:     "updatedat",
}

func (t CollectionUserItemTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.ItemID, t.Status, t.UserRating, t.Notes,
		t.DateAdded, t.DateStarted, t.DateCompleted, t.UpdatedAt,
	}
}
