package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHandle(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Ana Mi!a", "anamia"},
		{"Ana María", "anamaria"},
		{"JOSÉ_99", "jose99"},
		{"çédille", "cedille"},
		{"  spaces  ", "spaces"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeHandle(tc.input), "input %q", tc.input)
	}
}

func TestSuggestUsernameFallsBackToEmail(t *testing.T) {
	got := SuggestUsername("", "ana.maria@example.com")

	assert.True(t, strings.HasPrefix(got, "anamaria"), "got %q", got)
	assert.Greater(t, len(got), len("anamaria"))
}

func TestSuggestUsernameLastResort(t *testing.T) {
	got := SuggestUsername("!!!", "@example.com")

	assert.True(t, strings.HasPrefix(got, "user"), "got %q", got)
}
