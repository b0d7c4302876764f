// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/drecktrack/internal/collectible"
)

func TestWhereClause(t *testing.T) {
	const userID = "0190a5b2-7c4e-7d2a-9f31-4b8c2e6d1a00"

	tests := []struct {
		name     string
		filter   Filter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "user_only",
			wantSQL:  " WHERE u.userid = $1",
			wantArgs: []any{userID},
		},
		{
			name:     "kind_and_status",
			filter:   Filter{Kind: collectible.KindShow, Status: StatusOnHold},
			wantSQL:  " WHERE u.userid = $1 AND i.itemtype = $2 AND u.status = $3",
			wantArgs: []any{userID, "Show", "OnHold"},
		},
		{
			name:     "term_reuses_one_placeholder_and_escapes_wildcards",
			filter:   Filter{Term: `50%_off\`},
			wantSQL:  " WHERE u.userid = $1 AND (i.title ILIKE $2 OR i.description ILIKE $2)",
			wantArgs: []any{userID, `%50\%\_off\\%`},
		},
		{
			name:   "excluded_external_ids",
			filter: Filter{Status: StatusCompleted, ExcludedExternalIDs: []string{"620", "1145360"}},
			wantSQL: " WHERE u.userid = $1 AND u.status = $2 AND NOT EXISTS (SELECT 1 FROM collection.externalid x" +
				" WHERE x.itemid = i.id AND x.identifier = ANY($3::text[]))",
			wantArgs: []any{userID, "Completed", []string{"620", "1145360"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := whereClause(userID, tt.filter)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOrderingExpressions(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		kind     collectible.Kind
		key      string
		wantExpr string
	}{
		{"", "Title", `i.title COLLATE "C"`},
		{"", "DateAdded", "u.dateadded"},
		{"", "ReleaseDate", "COALESCE(i.releasedate, '-infinity'::timestamptz)"},
		{collectible.KindGame, "TimePlayed", "CASE WHEN i.itemtype = 'Game' THEN i.timeplayed ELSE 0 END"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ordering, ok := registry.Resolve(tt.kind, tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.wantExpr, ordering.Expr)
		})
	}
}
