// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collectible_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/drecktrack/internal/collectible"
	"github.com/taibuivan/drecktrack/pkg/pointer"
)

var updatedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newShow() *collectible.Item {
	return &collectible.Item{
		ID:          "show-1",
		Title:       "The Expanse",
		ExternalIDs: []collectible.ExternalID{{Source: "tmdb", Identifier: "63639"}},
		UpdatedAt:   updatedAt,
		Details: &collectible.Show{Seasons: []collectible.Season{
			{ID: "s1", SeasonNumber: pointer.To(1), Episodes: []collectible.Episode{
				{ID: "e1", EpisodeNumber: pointer.To(1)},
				{ID: "e2", EpisodeNumber: pointer.To(2)},
			}},
			{ID: "s2", SeasonNumber: pointer.To(2), Episodes: []collectible.Episode{
				{ID: "e3", EpisodeNumber: pointer.To(1)},
			}},
		}},
	}
}

/*
TestMarshal_PropertyOrder verifies that itemType is always the first property
and the shared fields precede the variant fields.
*/
func TestMarshal_PropertyOrder(t *testing.T) {
	item := &collectible.Item{
		ID:        "book-1",
		Title:     "Dune",
		UpdatedAt: updatedAt,
		Details:   &collectible.Book{Authors: []string{"Frank Herbert"}, Format: pointer.To(collectible.FormatEbook)},
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, `{"itemType":"Book","id":"book-1"`), text)
	assert.Less(t, strings.Index(text, `"externalIds"`), strings.Index(text, `"authors"`))
	assert.Contains(t, text, `"format":"Ebook"`)
	assert.Contains(t, text, `"genres":[]`)
	assert.Contains(t, text, `"tags":[]`)
	assert.NotContains(t, text, `"releaseDate"`)
	assert.NotContains(t, text, `"pageCount"`)
}

/*
TestMarshal_Variants checks the variant-specific output of each kind.
*/
func TestMarshal_Variants(t *testing.T) {
	tests := []struct {
		name     string
		details  collectible.Details
		contains []string
		absent   []string
	}{
		{
			name:     "movie_without_duration",
			details:  &collectible.Movie{},
			contains: []string{`"itemType":"Movie"`, `"duration":0`},
			absent:   []string{`"seasons"`, `"platform"`},
		},
		{
			name:     "movie_with_duration",
			details:  &collectible.Movie{Duration: pointer.To(142.5)},
			contains: []string{`"duration":142.5`},
		},
		{
			name:     "game",
			details:  &collectible.Game{Platform: "PC", TimePlayed: 12.5},
			contains: []string{`"itemType":"Game"`, `"platform":"PC"`, `"timePlayed":12.5`},
			absent:   []string{`"authors"`},
		},
		{
			name:     "empty_show",
			details:  &collectible.Show{},
			contains: []string{`"seasons":[]`, `"episodes":[]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(&collectible.Item{ID: "x", Details: tt.details})
			require.NoError(t, err)

			for _, fragment := range tt.contains {
				assert.Contains(t, string(data), fragment)
			}
			for _, fragment := range tt.absent {
				assert.NotContains(t, string(data), fragment)
			}
		})
	}
}

/*
TestMarshal_Show verifies the flattened episode list and the seasonId backfill.
*/
func TestMarshal_Show(t *testing.T) {
	data, err := json.Marshal(newShow())
	require.NoError(t, err)

	var wire struct {
		ExternalIDs []collectible.ExternalID `json:"externalIds"`
		Seasons     []collectible.Season     `json:"seasons"`
		Episodes    []collectible.Episode    `json:"episodes"`
	}
	require.NoError(t, json.Unmarshal(data, &wire))

	require.Len(t, wire.Seasons, 2)
	require.Len(t, wire.Episodes, 3)
	assert.Equal(t, []string{"e1", "e2", "e3"}, []string{wire.Episodes[0].ID, wire.Episodes[1].ID, wire.Episodes[2].ID})

	for _, episode := range wire.Seasons[0].Episodes {
		assert.Equal(t, "s1", episode.SeasonID)
	}
	assert.Equal(t, "s2", wire.Episodes[2].SeasonID)

	require.Len(t, wire.ExternalIDs, 1)
	assert.Equal(t, "show-1", wire.ExternalIDs[0].CollectibleItemID)
}

/*
TestDecode_Discriminator covers every failure of the itemType property.
*/
func TestDecode_Discriminator(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"missing", `{"title":"x"}`, collectible.ErrMissingItemType},
		{"null", `{"itemType":null}`, collectible.ErrEmptyItemType},
		{"blank", `{"itemType":"  "}`, collectible.ErrEmptyItemType},
		{"unknown", `{"itemType":"Podcast"}`, collectible.ErrUnknownItemType},
		{"wrong_case", `{"itemType":"book"}`, collectible.ErrUnknownItemType},
		{"not_a_string", `{"itemType":3}`, collectible.ErrUnknownItemType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := collectible.Decode([]byte(tt.payload))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, item)
		})
	}

	t.Run("not_an_object", func(t *testing.T) {
		_, err := collectible.Decode([]byte(`[1,2]`))
		assert.Error(t, err)
	})
}

/*
TestDecode_IgnoresForeignFields makes sure fields of other kinds never leak
into the resolved variant.
*/
func TestDecode_IgnoresForeignFields(t *testing.T) {
	payload := `{"itemType":"Game","id":"g1","title":"Hades","platform":"Switch","timePlayed":40,
		"authors":["nobody"],"seasons":[{"id":"s"}],"duration":99}`

	item, err := collectible.Decode([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, collectible.KindGame, item.Kind())
	game, ok := item.Game()
	require.True(t, ok)
	assert.Equal(t, "Switch", game.Platform)
	assert.Equal(t, 40.0, game.TimePlayed)
}

/*
TestDecodeFold verifies the case-insensitive creation path.
*/
func TestDecodeFold(t *testing.T) {
	item, err := collectible.DecodeFold([]byte(`{"itemType":"sHoW","title":"Dark","seasons":[{"id":"s1","episodes":[{"id":"e1"}]}]}`))
	require.NoError(t, err)

	show, ok := item.Show()
	require.True(t, ok)
	assert.Equal(t, 1, show.EpisodeCount())

	_, err = collectible.DecodeFold([]byte(`{"itemType":"vinyl"}`))
	assert.ErrorIs(t, err, collectible.ErrUnknownItemType)
}

/*
TestItem_UnmarshalJSON checks decoding through encoding/json directly.
*/
func TestItem_UnmarshalJSON(t *testing.T) {
	var item collectible.Item
	require.NoError(t, json.Unmarshal([]byte(`{"itemType":"Book","id":"b1","format":"audiobook","pageCount":300}`), &item))

	book, ok := item.Book()
	require.True(t, ok)
	assert.Equal(t, collectible.FormatAudiobook, *book.Format)
	assert.Equal(t, 300, *book.PageCount)

	err := json.Unmarshal([]byte(`{"itemType":"Book","format":"scroll"}`), &item)
	assert.Error(t, err)
}

func TestMarshal_NoVariant(t *testing.T) {
	_, err := json.Marshal(&collectible.Item{ID: "x"})
	assert.ErrorIs(t, err, collectible.ErrNoVariant)
}
