// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/drecktrack/internal/collectible"
	"github.com/taibuivan/drecktrack/internal/platform/apperr"
	"github.com/taibuivan/drecktrack/internal/platform/validate"
	"github.com/taibuivan/drecktrack/pkg/pagination"
	"github.com/taibuivan/drecktrack/pkg/slice"
	"github.com/taibuivan/drecktrack/pkg/uuid"
)

const (
	maxTitleLength = 500
	minUserRating  = 1
	maxUserRating  = 5
)

// Service implements the collection use cases on top of a [Repository].
type Service struct {
	repo     Repository
	registry *Registry
	logger   *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewService constructs a new [Service].
func NewService(repo Repository, registry *Registry, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		registry: registry,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.New,
	}
}

// # Queries

/*
Query returns one page of the user's collection.

Description: Resolves the requested ordering for the filtered kind, clamps the
page window to the number of matching entries and, when the listing is
restricted to shows, loads seasons and episodes for every item on the page.

Parameters:
  - context: context.Context
  - userID: string (UUID)
  - query: Query

Returns:
  - *Page: The page envelope with the entries and available order fields
  - error: Database failures
*/
func (service *Service) Query(context context.Context, userID string, query Query) (*Page, error) {

	// ── 1. Resolve ordering ─────────────────────────────────────────────
	ordering, _ := service.registry.Resolve(query.Kind, query.OrderBy)

	direction := query.Direction
	if direction != Descending {
		direction = Ascending
	}

	// ── 2. Clamp the window ─────────────────────────────────────────────
	total, err := service.repo.Count(context, userID, query.Filter)
	if err != nil {
		return nil, err
	}

	params := pagination.Clamp(query.Page, query.Size, total)

	// ── 3. Fetch the page ───────────────────────────────────────────────
	entries, err := service.repo.List(context, userID, query.Filter, ordering, direction, params.Size, params.Offset())
	if err != nil {
		return nil, err
	}

	if query.Kind == collectible.KindShow && len(entries) > 0 {
		items := slice.Map(entries, func(entry *Entry) *collectible.Item { return entry.Item })
		if err := service.repo.LoadSeasons(context, items...); err != nil {
			return nil, err
		}
	}

	if entries == nil {
		entries = []*Entry{}
	}

	return &Page{
		TotalItems:            total,
		PageNumber:            params.Page,
		PageSize:              params.Size,
		Items:                 entries,
		OrderFields:           service.registry.Options(query.Kind),
		CurrentOrderBy:        ordering.Key,
		CurrentOrderDirection: direction,
	}, nil
}

/*
Get returns the user's entry for itemID. Shows come with seasons and episodes.

Returns:
  - *Entry: The fully loaded entry
  - error: ErrEntryNotFound if the item is not in the user's collection
*/
func (service *Service) Get(context context.Context, userID, itemID string) (*Entry, error) {
	entry, err := service.repo.Find(context, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.LoadSeasons(context, entry.Item); err != nil {
		return nil, err
	}

	return entry, nil
}

/*
MissingExternalIDs returns the identifiers that belong to no item in the
user's collection, in request order and without duplicates.
*/
func (service *Service) MissingExternalIDs(context context.Context, userID string, identifiers []string) ([]string, error) {
	if len(identifiers) == 0 {
		return []string{}, nil
	}

	present, err := service.repo.ExternalIdentifiers(context, userID, identifiers)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(identifiers))
	return slice.Filter(identifiers, func(identifier string) bool {
		if present[identifier] || seen[identifier] {
			return false
		}
		seen[identifier] = true
		return true
	}), nil
}

// # Commands

/*
Add puts a new item into the user's collection.

Description: Decodes the polymorphic item payload, assigns missing ids,
validates the entry and rejects items the user already tracks.

Parameters:
  - context: context.Context
  - userID: string (UUID)
  - input: AddInput

Returns:
  - *Entry: The stored entry
  - error: VALIDATION_ERROR for bad payloads, CONFLICT for duplicates
*/
func (service *Service) Add(context context.Context, userID string, input AddInput) (*Entry, error) {
	entry, err := service.newEntry(userID, input)
	if err != nil {
		return nil, err
	}

	existing, err := service.repo.ItemIDs(context, userID, []string{entry.ItemID})
	if err != nil {
		return nil, err
	}
	if existing[entry.ItemID] {
		return nil, apperr.Conflict("Item already exists in your collection")
	}

	if err := service.repo.Create(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("collection_item_added",
		slog.String("user_id", userID),
		slog.String("item_id", entry.ItemID),
		slog.String("item_type", string(entry.Item.Kind())),
	)
	return entry, nil
}

/*
AddMany adds a batch of items in one transaction.

Description: Items already in the collection, and repeats of an id earlier in
the same batch, are skipped silently. Any invalid payload rejects the batch.

Returns:
  - int: How many entries were stored
  - error: VALIDATION_ERROR or database failures
*/
func (service *Service) AddMany(context context.Context, userID string, inputs []AddInput) (int, error) {

	// ── 1. Convert and validate everything first ────────────────────────
	entries := make([]*Entry, 0, len(inputs))
	for index, input := range inputs {
		entry, err := service.newEntry(userID, input)
		if err != nil {
			return 0, atIndex(index, err)
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return 0, nil
	}

	// ── 2. Drop what the user already has ───────────────────────────────
	itemIDs := slice.Map(entries, func(entry *Entry) string { return entry.ItemID })
	existing, err := service.repo.ItemIDs(context, userID, itemIDs)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(entries))
	fresh := slice.Filter(entries, func(entry *Entry) bool {
		if existing[entry.ItemID] || seen[entry.ItemID] {
			return false
		}
		seen[entry.ItemID] = true
		return true
	})

	if len(fresh) == 0 {
		return 0, nil
	}

	// ── 3. Persist ──────────────────────────────────────────────────────
	if err := service.repo.Create(context, fresh...); err != nil {
		return 0, err
	}

	service.logger.Info("collection_items_added",
		slog.String("user_id", userID),
		slog.Int("requested", len(inputs)),
		slog.Int("added", len(fresh)),
	)
	return len(fresh), nil
}

/*
Update overwrites the user's tracking state for itemID.

Description: Status is kept when the payload leaves it empty; rating, notes and
dates are replaced as sent. Episode progress is replaced only when present.
A collectibleItem payload replaces the stored item but may not change its kind.

Returns:
  - *Entry: The updated entry
  - error: ErrEntryNotFound, VALIDATION_ERROR or database failures
*/
func (service *Service) Update(context context.Context, userID, itemID string, input UpdateInput) (*Entry, error) {
	entry, err := service.load(context, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := service.apply(entry, input.AddInput); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("collection_item_updated",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
	)
	return entry, nil
}

/*
UpdateMany applies a batch of updates in one transaction.

Description: Each input names its entry through collectibleItemId. Inputs that
match no entry are skipped. Several inputs for one entry apply in order.

Returns:
  - int: How many distinct entries were updated
  - error: VALIDATION_ERROR or database failures
*/
func (service *Service) UpdateMany(context context.Context, userID string, inputs []UpdateInput) (int, error) {
	pending := make(map[string]*Entry, len(inputs))
	order := make([]*Entry, 0, len(inputs))

	for _, input := range inputs {
		// An id that cannot name a stored entry is skipped like a missing one.
		itemID := strings.TrimSpace(input.CollectibleItemID)
		if !uuid.Valid(itemID) {
			continue
		}

		entry, ok := pending[itemID]
		if !ok {
			loaded, err := service.load(context, userID, itemID)
			if errors.Is(err, ErrEntryNotFound) {
				continue
			}
			if err != nil {
				return 0, err
			}
			entry = loaded
			pending[itemID] = entry
			order = append(order, entry)
		}

		if err := service.apply(entry, input.AddInput); err != nil {
			return 0, err
		}
	}

	if len(order) == 0 {
		return 0, nil
	}

	if err := service.repo.Update(context, order...); err != nil {
		return 0, err
	}

	service.logger.Info("collection_items_updated",
		slog.String("user_id", userID),
		slog.Int("requested", len(inputs)),
		slog.Int("updated", len(order)),
	)
	return len(order), nil
}

// Remove deletes the user's entry for itemID together with the item.
func (service *Service) Remove(context context.Context, userID, itemID string) error {
	if err := service.repo.Delete(context, userID, itemID); err != nil {
		return err
	}

	service.logger.Warn("collection_item_removed",
		slog.String("user_id", userID),
		slog.String("item_id", itemID),
	)
	return nil
}

// # Helpers

// load finds an entry with its full item graph so a later overwrite keeps
// seasons and episodes intact.
func (service *Service) load(context context.Context, userID, itemID string) (*Entry, error) {
	entry, err := service.repo.Find(context, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := service.repo.LoadSeasons(context, entry.Item); err != nil {
		return nil, err
	}
	return entry, nil
}

// newEntry converts an add payload into a validated, fully identified entry.
func (service *Service) newEntry(userID string, input AddInput) (*Entry, error) {
	if isAbsent(input.CollectibleItem) {
		return nil, validate.RequiredError(FieldItem, "This field is required")
	}

	item, err := collectible.DecodeFold(input.CollectibleItem)
	if err != nil {
		return nil, itemError(err)
	}

	status := StatusNotStarted
	if strings.TrimSpace(string(input.Status)) != "" {
		parsed, err := ParseStatus(string(input.Status))
		if err != nil {
			return nil, validate.RequiredError(FieldStatus, "Unknown status")
		}
		status = parsed
	}

	item.Normalize(service.newID)

	now := service.now()
	item.UpdatedAt = now

	entry := &Entry{
		ID:              service.newID(),
		UserID:          userID,
		ItemID:          item.ID,
		Status:          status,
		UserRating:      input.UserRating,
		Notes:           input.Notes,
		DateAdded:       now,
		DateStarted:     input.DateStarted,
		DateCompleted:   input.DateCompleted,
		UpdatedAt:       now,
		EpisodeProgress: service.progress(input.EpisodeProgress),
		Item:            item,
	}

	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// apply merges an update payload into a loaded entry.
func (service *Service) apply(entry *Entry, input AddInput) error {
	if strings.TrimSpace(string(input.Status)) != "" {
		status, err := ParseStatus(string(input.Status))
		if err != nil {
			return validate.RequiredError(FieldStatus, "Unknown status")
		}
		entry.Status = status
	}

	entry.UserRating = input.UserRating
	entry.Notes = input.Notes
	entry.DateStarted = input.DateStarted
	entry.DateCompleted = input.DateCompleted

	if input.EpisodeProgress != nil {
		entry.EpisodeProgress = service.progress(input.EpisodeProgress)
	}

	if !isAbsent(input.CollectibleItem) {
		item, err := collectible.Decode(input.CollectibleItem)
		if err != nil {
			return itemError(err)
		}
		if item.Kind() != entry.Item.Kind() {
			return validate.RequiredError(FieldItemType, "Item type cannot change")
		}
		item.ID = entry.ItemID
		item.Normalize(service.newID)
		entry.Item = item
	}

	now := service.now()
	entry.UpdatedAt = now
	entry.Item.UpdatedAt = now

	return validateEntry(entry)
}

// progress copies progress rows and gives each a fresh id.
func (service *Service) progress(rows []EpisodeProgress) []EpisodeProgress {
	if rows == nil {
		return nil
	}
	copied := make([]EpisodeProgress, len(rows))
	for i, row := range rows {
		row.ID = service.newID()
		copied[i] = row
	}
	return copied
}

func validateEntry(entry *Entry) error {
	validator := &validate.Validator{}

	validator.UUID(FieldItemID, entry.ItemID)
	validator.Required(FieldTitle, entry.Item.Title).MaxLen(FieldTitle, entry.Item.Title, maxTitleLength)

	if entry.UserRating != nil {
		validator.Range(FieldUserRating, *entry.UserRating, minUserRating, maxUserRating)
	}

	if book, ok := entry.Item.Book(); ok && book.CurrentPage != nil {
		validator.Min(FieldCurrentPage, *book.CurrentPage, 0)
	}

	// Seasons and episodes are stored under UUID keys like the item itself.
	if show, ok := entry.Item.Show(); ok {
		for i, season := range show.Seasons {
			seasonField := FieldSeasons + "[" + strconv.Itoa(i) + "]"
			validator.UUID(seasonField+".id", season.ID)
			for j, episode := range season.Episodes {
				validator.UUID(seasonField+".episodes["+strconv.Itoa(j)+"].id", episode.ID)
			}
		}
	}

	return validator.Err()
}

// itemError maps a codec failure onto a client-facing validation error.
func itemError(err error) error {
	switch {
	case errors.Is(err, collectible.ErrMissingItemType), errors.Is(err, collectible.ErrEmptyItemType):
		return validate.RequiredError(FieldItemType, "This field is required")
	case errors.Is(err, collectible.ErrUnknownItemType):
		return validate.RequiredError(FieldItemType, "Unknown item type")
	default:
		return apperr.ValidationError("Invalid collectible item", apperr.FieldError{
			Field:   FieldItem,
			Message: err.Error(),
		})
	}
}

func isAbsent(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func indexed(index int, field string) string {
	return "[" + strconv.Itoa(index) + "]." + field
}

// atIndex prefixes the field details of a validation error with the position
// of the batch element that caused it.
func atIndex(index int, err error) error {
	appError := apperr.As(err)
	if appError == nil || len(appError.Details) == 0 {
		return err
	}

	details := make([]apperr.FieldError, len(appError.Details))
	for i, detail := range appError.Details {
		details[i] = apperr.FieldError{Field: indexed(index, detail.Field), Message: detail.Message}
	}
	return apperr.ValidationError(appError.Message, details...)
}
