// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package collectible models the catalog of trackable media items.

An [Item] carries the fields shared by every kind plus exactly one variant
payload in [Item.Details]. The kind discriminator is always derived from that
payload, so an item can never claim to be a Book while holding a Show.

Items travel over the wire as flat JSON objects tagged with `itemType`; see
[Item.MarshalJSON], [Decode] and [DecodeFold].
*/
package collectible

import (
	"cmp"
	"slices"
	"time"
)

// # Shared Model

// Item is a single collectible media item.
type Item struct {
	ID            string
	Title         string
	Description   string
	ReleaseDate   *time.Time
	Language      string
	Genres        []string
	Tags          []string
	CoverImageURL string
	AverageRating *float64
	RatingsCount  *int
	ExternalIDs   []ExternalID
	UpdatedAt     time.Time

	// Details is the kind-specific payload; one of *Book, *Movie, *Show, *Game.
	Details Details
}

// ExternalID links an item to an identifier in a third-party catalog.
type ExternalID struct {
	Source            string `json:"source"`
	Identifier        string `json:"identifier"`
	CollectibleItemID string `json:"collectibleItemId"`
}

// Details is implemented only by the variant payloads of this package.
type Details interface {
	Kind() Kind
	clone() Details
}

// Kind returns the discriminator of the item's variant, or "" when it has none.
func (item *Item) Kind() Kind {
	if item == nil || item.Details == nil {
		return ""
	}
	return item.Details.Kind()
}

// Book returns the book payload, if the item is a book.
func (item *Item) Book() (*Book, bool) {
	book, ok := item.Details.(*Book)
	return book, ok
}

// Show returns the show payload, if the item is a show.
func (item *Item) Show() (*Show, bool) {
	show, ok := item.Details.(*Show)
	return show, ok
}

// Game returns the game payload, if the item is a game.
func (item *Item) Game() (*Game, bool) {
	game, ok := item.Details.(*Game)
	return game, ok
}

// Movie returns the movie payload, if the item is a movie.
func (item *Item) Movie() (*Movie, bool) {
	movie, ok := item.Details.(*Movie)
	return movie, ok
}

// Clone returns a deep copy of the item.
func (item *Item) Clone() *Item {
	if item == nil {
		return nil
	}
	copied := *item
	copied.ReleaseDate = cloneValue(item.ReleaseDate)
	copied.AverageRating = cloneValue(item.AverageRating)
	copied.RatingsCount = cloneValue(item.RatingsCount)
	copied.Genres = slices.Clone(item.Genres)
	copied.Tags = slices.Clone(item.Tags)
	copied.ExternalIDs = slices.Clone(item.ExternalIDs)
	if item.Details != nil {
		copied.Details = item.Details.clone()
	}
	return &copied
}

// Normalize fills missing identifiers and stamps owner references: external ids
// point at the item, seasons at the show and episodes at their season.
func (item *Item) Normalize(newID func() string) {
	if item.ID == "" {
		item.ID = newID()
	}
	for i := range item.ExternalIDs {
		item.ExternalIDs[i].CollectibleItemID = item.ID
	}

	show, ok := item.Show()
	if !ok {
		return
	}
	for i := range show.Seasons {
		season := &show.Seasons[i]
		if season.ID == "" {
			season.ID = newID()
		}
		season.ShowID = item.ID
		for j := range season.Episodes {
			episode := &season.Episodes[j]
			if episode.ID == "" {
				episode.ID = newID()
			}
			episode.SeasonID = season.ID
		}
	}
}

// # Variants

// BookFormat is the physical or digital form of a book.
type BookFormat string

const (
	FormatPhysical  BookFormat = "Physical"
	FormatEbook     BookFormat = "Ebook"
	FormatAudiobook BookFormat = "Audiobook"
)

// Book is the variant payload for books.
type Book struct {
	Authors     []string
	Publisher   string
	PageCount   *int
	CurrentPage *int
	Format      *BookFormat
}

func (*Book) Kind() Kind { return KindBook }

func (book *Book) clone() Details {
	copied := *book
	copied.Authors = slices.Clone(book.Authors)
	copied.PageCount = cloneValue(book.PageCount)
	copied.CurrentPage = cloneValue(book.CurrentPage)
	copied.Format = cloneValue(book.Format)
	return &copied
}

// Movie is the variant payload for movies. Duration is in minutes.
type Movie struct {
	Duration *float64
}

func (*Movie) Kind() Kind { return KindMovie }

func (movie *Movie) clone() Details {
	return &Movie{Duration: cloneValue(movie.Duration)}
}

// Game is the variant payload for games. TimePlayed is in hours.
type Game struct {
	Platform   string
	TimePlayed float64
}

func (*Game) Kind() Kind { return KindGame }

func (game *Game) clone() Details {
	copied := *game
	return &copied
}

// Show is the variant payload for series. Seasons are ordered.
type Show struct {
	Seasons []Season
}

func (*Show) Kind() Kind { return KindShow }

func (show *Show) clone() Details {
	copied := &Show{}
	if show.Seasons != nil {
		copied.Seasons = make([]Season, len(show.Seasons))
		for i, season := range show.Seasons {
			copied.Seasons[i] = season.clone()
		}
	}
	return copied
}

// SeasonCount returns the number of seasons.
func (show *Show) SeasonCount() int {
	return len(show.Seasons)
}

// EpisodeCount returns the total number of episodes across all seasons.
func (show *Show) EpisodeCount() int {
	total := 0
	for _, season := range show.Seasons {
		total += len(season.Episodes)
	}
	return total
}

// Episodes returns every episode across all seasons, in season order.
func (show *Show) Episodes() []Episode {
	episodes := make([]Episode, 0, show.EpisodeCount())
	for _, season := range show.Seasons {
		episodes = append(episodes, season.Episodes...)
	}
	return episodes
}

// SortSeasons orders seasons by season number and episodes by episode number.
// Unnumbered entries sort first; the sort is stable.
func (show *Show) SortSeasons() {
	slices.SortStableFunc(show.Seasons, func(a, b Season) int {
		return compareOptional(a.SeasonNumber, b.SeasonNumber)
	})
	for i := range show.Seasons {
		slices.SortStableFunc(show.Seasons[i].Episodes, func(a, b Episode) int {
			return compareOptional(a.EpisodeNumber, b.EpisodeNumber)
		})
	}
}

// Season is one season of a [Show].
type Season struct {
	ID           string     `json:"id"`
	ShowID       string     `json:"showId"`
	Name         string     `json:"name"`
	ExternalID   string     `json:"externalId"`
	SeasonNumber *int       `json:"seasonNumber"`
	ReleaseDate  *time.Time `json:"releaseDate"`
	Description  string     `json:"description"`
	Episodes     []Episode  `json:"episodes"`
}

func (season Season) clone() Season {
	season.SeasonNumber = cloneValue(season.SeasonNumber)
	season.ReleaseDate = cloneValue(season.ReleaseDate)
	if season.Episodes != nil {
		episodes := make([]Episode, len(season.Episodes))
		for i, episode := range season.Episodes {
			episode.EpisodeNumber = cloneValue(episode.EpisodeNumber)
			episode.Duration = cloneValue(episode.Duration)
			episode.ReleaseDate = cloneValue(episode.ReleaseDate)
			episodes[i] = episode
		}
		season.Episodes = episodes
	}
	return season
}

// Episode is one episode of a [Season]. Duration is in minutes.
type Episode struct {
	ID            string     `json:"id"`
	SeasonID      string     `json:"seasonId"`
	Name          string     `json:"name"`
	ExternalID    string     `json:"externalId"`
	Watched       bool       `json:"watched"`
	EpisodeNumber *int       `json:"episodeNumber"`
	Duration      *float64   `json:"duration"`
	ReleaseDate   *time.Time `json:"releaseDate"`
	Description   string     `json:"description"`
}

// # Helpers

func cloneValue[T any](value *T) *T {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func compareOptional(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}
