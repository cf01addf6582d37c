package bot

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"fits", "1. Alice\n2. Bob\n", 50, []string{"1. Alice\n2. Bob\n"}},
		{"on line boundaries", "aaaa\nbbbb\ncccc\n", 10, []string{"aaaa\nbbbb\n", "cccc\n"}},
		{"long line", "abcdefghij\nxy", 4, []string{"abcd", "efgh", "ij\n", "xy"}},
		{"counts runes", "🏆🏆🏆\n🏆🏆", 4, []string{"🏆🏆🏆\n", "🏆🏆"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitMessage(tt.text, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitMessage_RankingsTable(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		sb.WriteString("12. *Some Long Team Name Here* - 0.500\n")
	}
	text := sb.String()

	parts := splitMessage(text, maxMessageLength)
	if len(parts) < 2 {
		t.Fatalf("got %d parts, want the text split", len(parts))
	}
	for i, p := range parts {
		if utf8.RuneCountInString(p) > maxMessageLength {
			t.Errorf("part %d has %d runes", i, utf8.RuneCountInString(p))
		}
		if !strings.HasSuffix(p, "\n") {
			t.Errorf("part %d does not end on a line boundary", i)
		}
	}
	if strings.Join(parts, "") != text {
		t.Error("parts do not reassemble into the original text")
	}
}
