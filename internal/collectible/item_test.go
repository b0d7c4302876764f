// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collectible_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/drecktrack/internal/collectible"
	"github.com/taibuivan/drecktrack/pkg/pointer"
)

func TestParseKind(t *testing.T) {
	for _, kind := range collectible.Kinds() {
		parsed, err := collectible.ParseKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := collectible.ParseKind("movie")
	assert.ErrorIs(t, err, collectible.ErrUnknownItemType)

	parsed, err := collectible.ParseKindFold("movie")
	require.NoError(t, err)
	assert.Equal(t, collectible.KindMovie, parsed)
}

func TestNew(t *testing.T) {
	for _, kind := range collectible.Kinds() {
		item, err := collectible.New(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, item.Kind())
	}

	_, err := collectible.New("Vinyl")
	assert.ErrorIs(t, err, collectible.ErrUnknownItemType)

	assert.Equal(t, collectible.Kind(""), (&collectible.Item{}).Kind())
}

func TestItem_Normalize(t *testing.T) {
	counter := 0
	newID := func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}

	item := &collectible.Item{
		ExternalIDs: []collectible.ExternalID{{Source: "tmdb", Identifier: "1"}},
		Details: &collectible.Show{Seasons: []collectible.Season{
			{Episodes: []collectible.Episode{{}, {ID: "keep"}}},
		}},
	}

	item.Normalize(newID)

	assert.Equal(t, "id-1", item.ID)
	assert.Equal(t, "id-1", item.ExternalIDs[0].CollectibleItemID)

	show, _ := item.Show()
	season := show.Seasons[0]
	assert.Equal(t, "id-2", season.ID)
	assert.Equal(t, "id-1", season.ShowID)
	assert.Equal(t, "id-3", season.Episodes[0].ID)
	assert.Equal(t, "keep", season.Episodes[1].ID)
	assert.Equal(t, "id-2", season.Episodes[1].SeasonID)
}

func TestItem_Clone(t *testing.T) {
	original := newShow()
	original.Genres = []string{"Sci-Fi"}

	copied := original.Clone()
	copied.Genres[0] = "Drama"
	copiedShow, _ := copied.Show()
	copiedShow.Seasons[0].Episodes[0].Name = "changed"
	*copiedShow.Seasons[0].SeasonNumber = 9

	originalShow, _ := original.Show()
	assert.Equal(t, "Sci-Fi", original.Genres[0])
	assert.Empty(t, originalShow.Seasons[0].Episodes[0].Name)
	assert.Equal(t, 1, *originalShow.Seasons[0].SeasonNumber)
}

func TestShow_SortSeasons(t *testing.T) {
	show := &collectible.Show{Seasons: []collectible.Season{
		{ID: "s2", SeasonNumber: pointer.To(2), Episodes: []collectible.Episode{
			{ID: "b", EpisodeNumber: pointer.To(2)},
			{ID: "a", EpisodeNumber: pointer.To(1)},
		}},
		{ID: "special"},
		{ID: "s1", SeasonNumber: pointer.To(1)},
	}}

	show.SortSeasons()

	assert.Equal(t, "special", show.Seasons[0].ID)
	assert.Equal(t, "s1", show.Seasons[1].ID)
	assert.Equal(t, "s2", show.Seasons[2].ID)
	assert.Equal(t, "a", show.Seasons[2].Episodes[0].ID)
	assert.Equal(t, 3, show.SeasonCount())
	assert.Equal(t, 2, show.EpisodeCount())
	assert.Len(t, show.Episodes(), 2)
}
