package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short stays intact", "Miso Soup", 30, "Miso Soup"},
		{"exact length stays intact", "abcde", 5, "abcde"},
		{"long is cut with ellipsis", "abcdefgh", 5, "abcd…"},
		{"multibyte title cut on rune boundary", "カレーライスのつくりかた", 6, "カレーライ…"},
		{"short multibyte stays intact", "麻婆豆腐", 10, "麻婆豆腐"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
