// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/drecktrack/pkg/query"
)

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"repeated", []string{"a", "b"}, []string{"a", "b"}},
		{"comma_separated", []string{"a, b,,c"}, []string{"a", "b", "c"}},
		{"repeated_values_keep_commas", []string{"isbn:0-441,1", " c "}, []string{"isbn:0-441,1", "c"}},
		{"single_blank", []string{" , "}, nil},
		{"blank", []string{"", " "}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Strings(tt.in))
		})
	}
}
