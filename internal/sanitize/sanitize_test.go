package sanitize

import "testing"

func TestText_StripsAllMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "A great movie.", "A great movie."},
		{"script stripped", `Nice <script>alert(1)</script> film`, "Nice  film"},
		{"tags stripped", "<b>bold</b> take", "bold take"},
		{"anchor stripped", `see <a href="javascript:x()">this</a>`, "see this"},
		{"whitespace trimmed", "  spaced out  ", "spaced out"},
		{"empty passthrough", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextPtr(t *testing.T) {
	if TextPtr(nil) != nil {
		t.Error("expected nil passthrough")
	}

	input := "<i>subtle</i>"
	got := TextPtr(&input)
	if got == nil || *got != "subtle" {
		t.Errorf("expected sanitized pointer, got %v", got)
	}
}
