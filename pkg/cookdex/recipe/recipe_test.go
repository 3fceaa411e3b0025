package recipe

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Goulash", "goulash"},
		{"  Goulash  ", "goulash"},
		{"Onion   Soup", "onion soup"},
		{"KÄSESPÄTZLE", "käsespätzle"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnrichmentEmpty(t *testing.T) {
	if !(Enrichment{}).Empty() {
		t.Error("zero enrichment must be empty")
	}
	if (Enrichment{Ingredients: []string{"beef"}}).Empty() {
		t.Error("enrichment with ingredients is not empty")
	}
	if (Enrichment{Steps: []string{"fry"}}).Empty() {
		t.Error("enrichment with steps is not empty")
	}
}
