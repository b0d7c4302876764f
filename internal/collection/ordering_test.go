// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/drecktrack/internal/collectible"
	"github.com/taibuivan/drecktrack/internal/collection"
)

func TestRegistry_Options(t *testing.T) {
	registry := collection.NewRegistry()

	tests := []struct {
		kind collectible.Kind
		want []string
	}{
		{"", []string{"Title", "Date Added", "Release Date"}},
		{collectible.KindBook, []string{"Title", "Date Added", "Release Date"}},
		{collectible.KindMovie, []string{"Title", "Date Added", "Release Date"}},
		{collectible.KindGame, []string{"Title", "Date Added", "Release Date", "Time Played"}},
		{collectible.KindShow, []string{"Title", "Date Added", "Release Date", "Seasons", "Episodes"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, registry.Options(tt.kind))
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	registry := collection.NewRegistry()

	tests := []struct {
		name      string
		kind      collectible.Kind
		requested string
		wantKey   string
		wantOK    bool
	}{
		{"exact", "", "Title", "Title", true},
		{"case_folded", "", "tItLe", "Title", true},
		{"display_name_spacing", "", " release\tdate ", "ReleaseDate", true},
		{"empty", "", "", collection.DefaultOrderKey, false},
		{"unknown", "", "Rating", collection.DefaultOrderKey, false},
		{"game_only_key", collectible.KindGame, "timeplayed", "TimePlayed", true},
		{"game_key_on_books", collectible.KindBook, "TimePlayed", collection.DefaultOrderKey, false},
		{"show_seasons", collectible.KindShow, "SEASONS", "Seasons", true},
		{"show_episodes", collectible.KindShow, "episodes", "Episodes", true},
		{"show_key_unfiltered", "", "Episodes", collection.DefaultOrderKey, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ordering, ok := registry.Resolve(tt.kind, tt.requested)
			assert.Equal(t, tt.wantKey, ordering.Key)
			assert.Equal(t, tt.wantOK, ok)
			assert.NotEmpty(t, ordering.Expr)
			assert.NotNil(t, ordering.Compare)
		})
	}
}

func TestRegistry_ReleaseDateComparesMissingFirst(t *testing.T) {
	ordering, ok := collection.NewRegistry().Resolve("", "ReleaseDate")
	assert.True(t, ok)

	dated := mustItem(t, `{"itemType":"Movie","title":"a","releaseDate":"1995-12-15T00:00:00Z"}`)
	undated := mustItem(t, `{"itemType":"Movie","title":"b"}`)

	assert.Negative(t, ordering.Compare(&collection.Entry{Item: undated}, &collection.Entry{Item: dated}))
	assert.Positive(t, ordering.Compare(&collection.Entry{Item: dated}, &collection.Entry{Item: undated}))
	assert.Zero(t, ordering.Compare(&collection.Entry{Item: undated}, &collection.Entry{Item: undated}))
}

func mustItem(t *testing.T, raw string) *collectible.Item {
	t.Helper()
	item, err := collectible.Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return item
}
