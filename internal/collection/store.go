// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"

	"github.com/taibuivan/drecktrack/internal/collectible"
	"github.com/taibuivan/drecktrack/internal/platform/apperr"
)

// ErrEntryNotFound is returned when a user has no entry for an item.
var ErrEntryNotFound = apperr.NotFound("Collection entry")

// # Collection Data Access

// Repository defines the data access contract for a user's collection.
//
// Listing methods return items without show seasons; [Repository.LoadSeasons]
// fetches them on demand.
type Repository interface {

	/*
		Count returns how many entries of userID match filter.
	*/
	Count(context context.Context, userID string, filter Filter) (int, error)

	/*
		List returns one slice of userID's entries matching filter.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)
		  - filter: Filter
		  - ordering: Ordering (resolved sort key)
		  - direction: Direction
		  - limit: int
		  - offset: int

		Returns:
		  - []*Entry: Entries with external ids and episode progress loaded
		  - error: Database retrieval failures
	*/
	List(context context.Context, userID string, filter Filter, ordering Ordering, direction Direction, limit, offset int) ([]*Entry, error)

	/*
		LoadSeasons attaches seasons and episodes to every Show among items,
		ordered by season and episode number. Other kinds are left untouched.
	*/
	LoadSeasons(context context.Context, items ...*collectible.Item) error

	/*
		Find returns userID's entry for itemID.

		Returns:
		  - *Entry: The entry with its item
		  - error: ErrEntryNotFound if the user has no such entry
	*/
	Find(context context.Context, userID, itemID string) (*Entry, error)

	/*
		ItemIDs reports which of itemIDs already have an entry for userID.
	*/
	ItemIDs(context context.Context, userID string, itemIDs []string) (map[string]bool, error)

	/*
		ExternalIdentifiers reports which of identifiers belong to an item in userID's collection.
	*/
	ExternalIdentifiers(context context.Context, userID string, identifiers []string) (map[string]bool, error)

	/*
		Create persists new entries together with their items in one transaction.
	*/
	Create(context context.Context, entries ...*Entry) error

	/*
		Update overwrites entries and their items in one transaction.
	*/
	Update(context context.Context, entries ...*Entry) error

	/*
		Delete removes userID's entry for itemID and the item it owns.

		Returns:
		  - error: ErrEntryNotFound if the user has no such entry
	*/
	Delete(context context.Context, userID, itemID string) error
}
