package sanitize

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{
			name:      "plain text untouched",
			input:     "tomato prices",
			maxLength: 100,
			want:      "tomato prices",
		},
		{
			name:      "strips html tags",
			input:     "<b>hi</b> there",
			maxLength: 100,
			want:      "hi there",
		},
		{
			name:      "empty input",
			input:     "",
			maxLength: 100,
			want:      "",
		},
		{
			name:      "whitespace only",
			input:     "   \t  ",
			maxLength: 100,
			want:      "",
		},
		{
			name:      "script tag content survives without tags",
			input:     "<script>alert(1)</script>",
			maxLength: 100,
			want:      "alert(1)",
		},
		{
			name:      "unclosed angle bracket is kept",
			input:     "5 < 6 and 7 > 3",
			maxLength: 100,
			want:      "5 < 6 and 7 > 3",
		},
		{
			name:      "truncates before stripping",
			input:     strings.Repeat("x", 1000),
			maxLength: 50,
			want:      strings.Repeat("x", 50),
		},
		{
			name:      "multibyte runes truncate on rune boundary",
			input:     strings.Repeat("న", 10),
			maxLength: 4,
			want:      strings.Repeat("న", 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.input, tt.maxLength)
			if got != tt.want {
				t.Errorf("Clean(%q, %d) = %q, want %q", tt.input, tt.maxLength, got, tt.want)
			}
		})
	}
}

func TestCleanTruncatedResultNeverExceedsLimit(t *testing.T) {
	got := Clean(strings.Repeat("a", 5000), 50)
	if len([]rune(got)) > 50 {
		t.Errorf("result has %d runes, want at most 50", len([]rune(got)))
	}
}
