// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package collection manages a user's personal collection of collectible items.

An [Entry] joins one account to one [collectible.Item] and carries the user's
tracking state: status, rating, notes, dates and per-episode progress for shows.

Core Responsibilities:

  - Query: Filtered, ordered and paginated reads of a user's collection.
  - Commands: Add, update and remove entries, singly or in batches.
  - Ordering: A per-kind registry of sort keys shared by both repositories.

The entry owns its item; removing an entry removes the item and everything
hanging off it.
*/
package collection

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/drecktrack/internal/collectible"
)

// # Domain Enums

// Status is the user's progress state for an entry.
type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusOnHold     Status = "OnHold"
	StatusDropped    Status = "Dropped"
)

// Statuses lists every known status.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold, StatusDropped}
}

// ParseStatus resolves a status name ignoring case.
func ParseStatus(value string) (Status, error) {
	for _, status := range Statuses() {
		if strings.EqualFold(string(status), value) {
			return status, nil
		}
	}
	return "", fmt.Errorf("collection: unknown status %q", value)
}

// Direction is the sort direction of a collection query.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection returns [Descending] only for "desc" in any case.
func ParseDirection(value string) Direction {
	if strings.EqualFold(strings.TrimSpace(value), string(Descending)) {
		return Descending
	}
	return Ascending
}

// # Domain Entities

// Entry is one item in a user's collection.
type Entry struct {
	ID              string            `json:"id"`
	UserID          string            `json:"-"`
	ItemID          string            `json:"collectibleItemId"`
	Status          Status            `json:"status"`
	UserRating      *int              `json:"userRating"`
	Notes           string            `json:"notes"`
	DateAdded       time.Time         `json:"dateAdded"`
	DateStarted     *time.Time        `json:"dateStarted"`
	DateCompleted   *time.Time        `json:"dateCompleted"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	EpisodeProgress []EpisodeProgress `json:"episodeProgress"`
	Item            *collectible.Item `json:"collectibleItem"`
}

// EpisodeProgress records whether the user watched one episode of a show.
type EpisodeProgress struct {
	ID            string     `json:"-"`
	SeasonNumber  int        `json:"seasonNumber"`
	EpisodeNumber int        `json:"episodeNumber"`
	Watched       bool       `json:"watched"`
	WatchedOn     *time.Time `json:"watchedOn"`
}

// Clone returns a deep copy of the entry.
func (entry *Entry) Clone() *Entry {
	copied := *entry
	copied.UserRating = clonePtr(entry.UserRating)
	copied.DateStarted = clonePtr(entry.DateStarted)
	copied.DateCompleted = clonePtr(entry.DateCompleted)
	if entry.EpisodeProgress != nil {
		copied.EpisodeProgress = make([]EpisodeProgress, len(entry.EpisodeProgress))
		for i, progress := range entry.EpisodeProgress {
			progress.WatchedOn = clonePtr(progress.WatchedOn)
			copied.EpisodeProgress[i] = progress
		}
	}
	copied.Item = entry.Item.Clone()
	return &copied
}

// # Commands

// AddInput is the payload to add an item to the collection.
// The item is kept raw until the service converts it.
type AddInput struct {
	Status          Status            `json:"status"`
	UserRating      *int              `json:"userRating"`
	Notes           string            `json:"notes"`
	DateStarted     *time.Time        `json:"dateStarted"`
	DateCompleted   *time.Time        `json:"dateCompleted"`
	EpisodeProgress []EpisodeProgress `json:"episodeProgress"`
	CollectibleItem json.RawMessage   `json:"collectibleItem"`
}

// UpdateInput is the payload to update an existing entry. CollectibleItemID
// addresses the entry in batch updates; single updates take it from the path.
// A missing collectibleItem leaves the stored item untouched.
type UpdateInput struct {
	AddInput
	CollectibleItemID string `json:"collectibleItemId"`
}

// Filter narrows a collection listing. Empty fields do not filter.
type Filter struct {
	Kind                collectible.Kind
	Status              Status
	Term                string
	ExcludedExternalIDs []string
}

// Query is a complete listing request.
type Query struct {
	Filter
	OrderBy   string
	Direction Direction
	Page      int
	Size      int
}

// Page is one page of a collection listing.
type Page struct {
	TotalItems            int       `json:"totalItems"`
	PageNumber            int       `json:"pageNumber"`
	PageSize              int       `json:"pageSize"`
	Items                 []*Entry  `json:"items"`
	OrderFields           []string  `json:"orderFields"`
	CurrentOrderBy        string    `json:"currentOrderBy"`
	CurrentOrderDirection Direction `json:"currentOrderDirection"`
}

// # Validation Fields

const (
	FieldTitle       = "collectibleItem.title"
	FieldItemType    = "collectibleItem.itemType"
	FieldCurrentPage = "collectibleItem.currentPage"
	FieldSeasons     = "collectibleItem.seasons"
	FieldItem        = "collectibleItem"
	FieldStatus      = "status"
	FieldUserRating  = "userRating"
	FieldItemID      = "collectibleItemId"
)

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
