package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "collapses runs", input: "Total:   $12.50\n\nDue", expected: "Total: $12.50 Due"},
		{name: "trims ends", input: "  padded  ", expected: "padded"},
		{name: "tabs and newlines", input: "a\tb\r\nc", expected: "a b c"},
		{name: "empty", input: "", expected: ""},
		{name: "only whitespace", input: " \t\n ", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Invoice   #42\n from  ACME",
		"",
		"already normal",
		" odd unicode spaces",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", input)
	}
}

func TestStripMarkup(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "removes tags",
			input:    "<p>Total: <b>$99.00</b></p>",
			expected: "Total: $99.00",
		},
		{
			name:     "decodes entities",
			input:    "Johnson&nbsp;&amp;&nbsp;Sons &lt;billing&gt;",
			expected: "Johnson & Sons <billing>",
		},
		{
			name:     "unclosed tag left as-is",
			input:    "before <unclosed after",
			expected: "before <unclosed after",
		},
		{
			name:     "plain text untouched",
			input:    "no markup here",
			expected: "no markup here",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripMarkup(tc.input))
		})
	}
}
