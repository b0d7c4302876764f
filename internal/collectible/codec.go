// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collectible

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/drecktrack/pkg/pointer"
)

// ErrNoVariant is returned when encoding an item that carries no variant payload.
var ErrNoVariant = errors.New("collectible: item has no variant")

// # Wire Shapes
//
// Every wire struct embeds baseWire so the shared fields are emitted first and
// flat, followed by the variant's own fields.

type baseWire struct {
	ItemType      Kind         `json:"itemType"`
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	ReleaseDate   *time.Time   `json:"releaseDate,omitempty"`
	Language      string       `json:"language"`
	CoverImageURL string       `json:"coverImageUrl"`
	AverageRating *float64     `json:"averageRating,omitempty"`
	RatingsCount  *int         `json:"ratingsCount,omitempty"`
	Genres        []string     `json:"genres"`
	Tags          []string     `json:"tags"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	ExternalIDs   []ExternalID `json:"externalIds"`
}

type bookWire struct {
	baseWire
	Authors     []string    `json:"authors"`
	Publisher   string      `json:"publisher"`
	PageCount   *int        `json:"pageCount,omitempty"`
	CurrentPage *int        `json:"currentPage,omitempty"`
	Format      *BookFormat `json:"format,omitempty"`
}

type movieWire struct {
	baseWire
	Duration float64 `json:"duration"`
}

// movieReadWire keeps an absent duration distinguishable from zero.
type movieReadWire struct {
	baseWire
	Duration *float64 `json:"duration"`
}

type gameWire struct {
	baseWire
	Platform   string  `json:"platform"`
	TimePlayed float64 `json:"timePlayed"`
}

type showWire struct {
	baseWire
	Seasons  []Season  `json:"seasons"`
	Episodes []Episode `json:"episodes"`
}

// # Write Path

// MarshalJSON writes the item as a flat object whose first property is itemType.
//
// External ids are stamped with the item id, episodes get their seasonId from
// the enclosing season, and shows additionally carry every episode flattened
// into a top-level `episodes` array.
func (item Item) MarshalJSON() ([]byte, error) {
	if item.Details == nil {
		return nil, ErrNoVariant
	}

	base := baseWire{
		ItemType:      item.Details.Kind(),
		ID:            item.ID,
		Title:         item.Title,
		Description:   item.Description,
		ReleaseDate:   item.ReleaseDate,
		Language:      item.Language,
		CoverImageURL: item.CoverImageURL,
		AverageRating: item.AverageRating,
		RatingsCount:  item.RatingsCount,
		Genres:        nonNil(item.Genres),
		Tags:          nonNil(item.Tags),
		UpdatedAt:     item.UpdatedAt,
		ExternalIDs:   make([]ExternalID, len(item.ExternalIDs)),
	}
	for i, externalID := range item.ExternalIDs {
		externalID.CollectibleItemID = item.ID
		base.ExternalIDs[i] = externalID
	}

	switch details := item.Details.(type) {
	case *Book:
		return json.Marshal(bookWire{
			baseWire:    base,
			Authors:     nonNil(details.Authors),
			Publisher:   details.Publisher,
			PageCount:   details.PageCount,
			CurrentPage: details.CurrentPage,
			Format:      details.Format,
		})

	case *Movie:
		return json.Marshal(movieWire{baseWire: base, Duration: pointer.Val(details.Duration)})

	case *Game:
		return json.Marshal(gameWire{baseWire: base, Platform: details.Platform, TimePlayed: details.TimePlayed})

	case *Show:
		seasons := make([]Season, len(details.Seasons))
		episodes := make([]Episode, 0, details.EpisodeCount())
		for i, season := range details.Seasons {
			season.Episodes = make([]Episode, len(details.Seasons[i].Episodes))
			for j, episode := range details.Seasons[i].Episodes {
				episode.SeasonID = season.ID
				season.Episodes[j] = episode
			}
			seasons[i] = season
			episodes = append(episodes, season.Episodes...)
		}
		return json.Marshal(showWire{baseWire: base, Seasons: seasons, Episodes: episodes})

	default:
		return nil, fmt.Errorf("collectible: unsupported variant %T", details)
	}
}

// # Read Path

// UnmarshalJSON reads a flat item object. The itemType property is required and
// must match a kind exactly; properties belonging to other kinds are ignored.
func (item *Item) UnmarshalJSON(data []byte) error {
	decoded, err := decode(data, ParseKind)
	if err != nil {
		return err
	}
	*item = *decoded
	return nil
}

// Decode parses an item using the exact, case-sensitive itemType match.
func Decode(data []byte) (*Item, error) {
	return decode(data, ParseKind)
}

// DecodeFold parses an item matching itemType without regard to case.
// It is used when converting creation payloads.
func DecodeFold(data []byte) (*Item, error) {
	return decode(data, ParseKindFold)
}

func decode(data []byte, parse func(string) (Kind, error)) (*Item, error) {
	kind, err := readKind(data, parse)
	if err != nil {
		return nil, err
	}

	item := &Item{}
	var base *baseWire

	switch kind {
	case KindBook:
		var wire bookWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("collectible: decode book: %w", err)
		}
		base = &wire.baseWire
		item.Details = &Book{
			Authors:     wire.Authors,
			Publisher:   wire.Publisher,
			PageCount:   wire.PageCount,
			CurrentPage: wire.CurrentPage,
			Format:      wire.Format,
		}

	case KindMovie:
		var wire movieReadWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("collectible: decode movie: %w", err)
		}
		base = &wire.baseWire
		item.Details = &Movie{Duration: wire.Duration}

	case KindGame:
		var wire gameWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("collectible: decode game: %w", err)
		}
		base = &wire.baseWire
		item.Details = &Game{Platform: wire.Platform, TimePlayed: wire.TimePlayed}

	case KindShow:
		var wire showWire
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("collectible: decode show: %w", err)
		}
		base = &wire.baseWire
		item.Details = &Show{Seasons: wire.Seasons}
	}

	item.ID = base.ID
	item.Title = base.Title
	item.Description = base.Description
	item.ReleaseDate = base.ReleaseDate
	item.Language = base.Language
	item.CoverImageURL = base.CoverImageURL
	item.AverageRating = base.AverageRating
	item.RatingsCount = base.RatingsCount
	item.Genres = base.Genres
	item.Tags = base.Tags
	item.UpdatedAt = base.UpdatedAt
	item.ExternalIDs = base.ExternalIDs

	return item, nil
}

// readKind extracts and resolves the itemType discriminator.
func readKind(data []byte, parse func(string) (Kind, error)) (Kind, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", fmt.Errorf("collectible: item must be a JSON object: %w", err)
	}

	raw, found := fields["itemType"]
	if !found {
		return "", ErrMissingItemType
	}

	var name *string
	if err := json.Unmarshal(raw, &name); err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownItemType, raw)
	}
	if name == nil || strings.TrimSpace(*name) == "" {
		return "", ErrEmptyItemType
	}

	return parse(*name)
}

// UnmarshalJSON accepts a format name in any letter case.
func (format *BookFormat) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("collectible: book format must be a string: %w", err)
	}
	for _, known := range []BookFormat{FormatPhysical, FormatEbook, FormatAudiobook} {
		if strings.EqualFold(string(known), name) {
			*format = known
			return nil
		}
	}
	return fmt.Errorf("collectible: unknown book format %q", name)
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
