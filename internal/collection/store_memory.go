// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/taibuivan/drecktrack/internal/collectible"
	"github.com/taibuivan/drecktrack/internal/platform/apperr"
	"github.com/taibuivan/drecktrack/pkg/slice"
)

// MemoryRepository is an in-process [Repository] used by tests and local runs.
// Entries are cloned on the way in and out, so callers never share state with it.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]*Entry // keyed by entry id
}

// NewMemoryRepository creates an empty in-memory collection store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: make(map[string]*Entry)}
}

// Count returns how many entries of userID match filter.
func (repository *MemoryRepository) Count(_ context.Context, userID string, filter Filter) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	return len(repository.matching(userID, filter)), nil
}

// List returns one slice of userID's entries matching filter. Shows come back
// without seasons, as with the Postgres repository.
func (repository *MemoryRepository) List(_ context.Context, userID string, filter Filter, ordering Ordering, direction Direction, limit, offset int) ([]*Entry, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matches := repository.matching(userID, filter)
	slices.SortStableFunc(matches, func(a, b *Entry) int {
		order := ordering.Compare(a, b)
		if direction == Descending {
			order = -order
		}
		if order != 0 {
			return order
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if offset >= len(matches) {
		return []*Entry{}, nil
	}
	matches = matches[offset:min(offset+limit, len(matches))]

	return slice.Map(matches, func(entry *Entry) *Entry {
		copied := entry.Clone()
		stripSeasons(copied.Item)
		return copied
	}), nil
}

// LoadSeasons attaches the stored seasons to every Show among items.
func (repository *MemoryRepository) LoadSeasons(_ context.Context, items ...*collectible.Item) error {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, item := range items {
		show, ok := item.Show()
		if !ok {
			continue
		}

		show.Seasons = []collectible.Season{}
		for _, stored := range repository.entries {
			if stored.ItemID != item.ID {
				continue
			}
			if storedShow, ok := stored.Item.Clone().Show(); ok {
				storedShow.SortSeasons()
				show.Seasons = append(show.Seasons, storedShow.Seasons...)
			}
			break
		}
	}
	return nil
}

// Find returns userID's entry for itemID.
func (repository *MemoryRepository) Find(_ context.Context, userID, itemID string) (*Entry, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	entry := repository.find(userID, itemID)
	if entry == nil {
		return nil, ErrEntryNotFound
	}

	copied := entry.Clone()
	stripSeasons(copied.Item)
	return copied, nil
}

// ItemIDs reports which of itemIDs already have an entry for userID.
func (repository *MemoryRepository) ItemIDs(_ context.Context, userID string, itemIDs []string) (map[string]bool, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	present := make(map[string]bool)
	for _, itemID := range itemIDs {
		if repository.find(userID, itemID) != nil {
			present[itemID] = true
		}
	}
	return present, nil
}

// ExternalIdentifiers reports which of identifiers belong to an item in userID's collection.
func (repository *MemoryRepository) ExternalIdentifiers(_ context.Context, userID string, identifiers []string) (map[string]bool, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	wanted := make(map[string]bool, len(identifiers))
	for _, identifier := range identifiers {
		wanted[identifier] = true
	}

	present := make(map[string]bool)
	for _, entry := range repository.entries {
		if entry.UserID != userID {
			continue
		}
		for _, externalID := range entry.Item.ExternalIDs {
			if wanted[externalID.Identifier] {
				present[externalID.Identifier] = true
			}
		}
	}
	return present, nil
}

// Create stores new entries.
func (repository *MemoryRepository) Create(_ context.Context, entries ...*Entry) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	// Item ids are a primary key across all users; nothing is written on a clash.
	taken := make(map[string]bool, len(repository.entries)+len(entries))
	for _, stored := range repository.entries {
		taken[stored.ItemID] = true
	}
	for _, entry := range entries {
		if taken[entry.ItemID] {
			return apperr.Conflict("Collection item already exists")
		}
		taken[entry.ItemID] = true
	}

	for _, entry := range entries {
		repository.entries[entry.ID] = entry.Clone()
	}
	return nil
}

// Update overwrites stored entries; entries that no longer exist are ignored.
func (repository *MemoryRepository) Update(_ context.Context, entries ...*Entry) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, entry := range entries {
		if _, ok := repository.entries[entry.ID]; ok {
			repository.entries[entry.ID] = entry.Clone()
		}
	}
	return nil
}

// Delete removes userID's entry for itemID together with its item.
func (repository *MemoryRepository) Delete(_ context.Context, userID, itemID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	entry := repository.find(userID, itemID)
	if entry == nil {
		return ErrEntryNotFound
	}
	delete(repository.entries, entry.ID)
	return nil
}

// # Helpers

// find returns the earliest-added entry of userID for itemID. Callers hold the lock.
func (repository *MemoryRepository) find(userID, itemID string) *Entry {
	var found *Entry
	for _, entry := range repository.entries {
		if entry.UserID != userID || entry.ItemID != itemID {
			continue
		}
		if found == nil || entry.DateAdded.Before(found.DateAdded) {
			found = entry
		}
	}
	return found
}

// matching returns the stored entries of userID that pass filter. Callers hold the lock.
func (repository *MemoryRepository) matching(userID string, filter Filter) []*Entry {
	folder := cases.Fold()
	term := folder.String(filter.Term)

	excluded := make(map[string]bool, len(filter.ExcludedExternalIDs))
	for _, identifier := range filter.ExcludedExternalIDs {
		excluded[identifier] = true
	}

	var matches []*Entry
	for _, entry := range repository.entries {
		if entry.UserID != userID {
			continue
		}
		if filter.Kind != "" && entry.Item.Kind() != filter.Kind {
			continue
		}
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		if term != "" &&
			!strings.Contains(folder.String(entry.Item.Title), term) &&
			!strings.Contains(folder.String(entry.Item.Description), term) {
			continue
		}
		if slices.ContainsFunc(entry.Item.ExternalIDs, func(id collectible.ExternalID) bool { return excluded[id.Identifier] }) {
			continue
		}
		matches = append(matches, entry)
	}
	return matches
}

// stripSeasons drops show seasons so they are only visible after LoadSeasons.
func stripSeasons(item *collectible.Item) {
	if show, ok := item.Show(); ok {
		show.Seasons = nil
	}
}
