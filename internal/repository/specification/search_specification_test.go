package specification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	cases := map[string]string{
		"milk":       "%milk%",
		"50%":        `%50\%%`,
		"snake_case": `%snake\_case%`,
		`C:\temp`:    `%C:\\temp%`,
		"":           "%%",
	}
	for query, want := range cases {
		assert.Equal(t, want, ContainsPattern(query), query)
	}
}

func TestSearchTerms(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"milk", []string{"milk"}},
		{"  buy   milk ", []string{"buy", "milk"}},
		{`"buy milk" eggs`, []string{"buy milk", "eggs"}},
		{`50% off`, []string{"50%", "off"}},
		{"   ", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SearchTerms(tc.query), tc.query)
	}
}
