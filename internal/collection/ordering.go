// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"cmp"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/taibuivan/drecktrack/internal/collectible"
	"github.com/taibuivan/drecktrack/internal/platform/database/schema"
	"github.com/taibuivan/drecktrack/pkg/slice"
)

// # Ordering Registry

// Ordering is one selectable sort key of a collection listing.
type Ordering struct {
	// Key is matched against the requested orderBy value.
	Key string
	// DisplayName is listed to clients in the page envelope.
	DisplayName string
	// Expr is the SQL sort expression over the aliases i (item) and u (user item).
	Expr string
	// Compare orders two entries ascending.
	Compare func(a, b *Entry) int
}

// DefaultOrderKey is used whenever the requested key is empty or unknown.
const DefaultOrderKey = "DateAdded"

// Registry resolves sort keys per item kind. It is immutable after construction.
type Registry struct {
	base   []Ordering
	byKind map[collectible.Kind][]Ordering
}

// NewRegistry builds the registry from the static ordering table.
func NewRegistry() *Registry {
	item := schema.CollectionItem
	season := schema.CollectionSeason
	episode := schema.CollectionEpisode

	base := []Ordering{
		{
			Key:         "Title",
			DisplayName: "Title",
			Expr:        fmt.Sprintf(`i.%s COLLATE "C"`, item.Title),
			Compare: func(a, b *Entry) int {
				return strings.Compare(a.Item.Title, b.Item.Title)
			},
		},
		{
			Key:         DefaultOrderKey,
			DisplayName: "Date Added",
			Expr:        fmt.Sprintf(`u.%s`, schema.CollectionUserItem.DateAdded),
			Compare: func(a, b *Entry) int {
				return a.DateAdded.Compare(b.DateAdded)
			},
		},
		{
			Key:         "ReleaseDate",
			DisplayName: "Release Date",
			Expr:        fmt.Sprintf(`COALESCE(i.%s, '-infinity'::timestamptz)`, item.ReleaseDate),
			Compare: func(a, b *Entry) int {
				return compareReleaseDate(a.Item.ReleaseDate, b.Item.ReleaseDate)
			},
		},
	}

	game := Ordering{
		Key:         "TimePlayed",
		DisplayName: "Time Played",
		Expr:        fmt.Sprintf(`CASE WHEN i.%s = 'Game' THEN i.%s ELSE 0 END`, item.ItemType, item.TimePlayed),
		Compare: func(a, b *Entry) int {
			return cmp.Compare(timePlayed(a), timePlayed(b))
		},
	}

	seasons := Ordering{
		Key:         "Seasons",
		DisplayName: "Seasons",
		Expr: fmt.Sprintf(`(SELECT COUNT(*) FROM %s s WHERE s.%s = i.%s)`,
			season.Table, season.ShowID, item.ID),
		Compare: func(a, b *Entry) int {
			return cmp.Compare(seasonCount(a), seasonCount(b))
		},
	}

	episodes := Ordering{
		Key:         "Episodes",
		DisplayName: "Episodes",
		Expr: fmt.Sprintf(`(SELECT COUNT(*) FROM %s e JOIN %s s ON e.%s = s.%s WHERE s.%s = i.%s)`,
			episode.Table, season.Table, episode.SeasonID, season.ID, season.ShowID, item.ID),
		Compare: func(a, b *Entry) int {
			return cmp.Compare(episodeCount(a), episodeCount(b))
		},
	}

	return &Registry{
		base: base,
		byKind: map[collectible.Kind][]Ordering{
			collectible.KindGame: append(append([]Ordering{}, base...), game),
			collectible.KindShow: append(append([]Ordering{}, base...), seasons, episodes),
		},
	}
}

// Orderings returns the orderings available for kind. An empty kind gets the base set.
func (registry *Registry) Orderings(kind collectible.Kind) []Ordering {
	if orderings, ok := registry.byKind[kind]; ok {
		return orderings
	}
	return registry.base
}

// Options returns the display names of the orderings available for kind.
func (registry *Registry) Options(kind collectible.Kind) []string {
	return slice.Map(registry.Orderings(kind), func(ordering Ordering) string {
		return ordering.DisplayName
	})
}

// Resolve finds the ordering for requested within kind. Case and whitespace are
// ignored. Unknown or empty keys resolve to the DateAdded ordering with ok false.
func (registry *Registry) Resolve(kind collectible.Kind, requested string) (Ordering, bool) {
	orderings := registry.Orderings(kind)

	wanted := normalizeKey(requested)
	if wanted != "" {
		for _, ordering := range orderings {
			if normalizeKey(ordering.Key) == wanted {
				return ordering, true
			}
		}
	}

	for _, ordering := range orderings {
		if ordering.Key == DefaultOrderKey {
			return ordering, false
		}
	}

	// The static table always carries DateAdded.
	panic("collection: ordering table has no " + DefaultOrderKey)
}

// normalizeKey drops all whitespace and folds case. A fresh Caser is used per
// call since cases.Caser is not safe for concurrent use.
func normalizeKey(key string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, key)
	return cases.Fold().String(stripped)
}

// # Comparators

func compareReleaseDate(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

func timePlayed(entry *Entry) float64 {
	if game, ok := entry.Item.Game(); ok {
		return game.TimePlayed
	}
	return 0
}

func seasonCount(entry *Entry) int {
	if show, ok := entry.Item.Show(); ok {
		return show.SeasonCount()
	}
	return 0
}

func episodeCount(entry *Entry) int {
	if show, ok := entry.Item.Show(); ok {
		return show.EpisodeCount()
	}
	return 0
}
