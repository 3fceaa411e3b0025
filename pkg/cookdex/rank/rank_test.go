package rank

import (
	"testing"
)

func TestScoreIngredientHitsWeighted(t *testing.T) {
	c := Candidate{
		Ingredients: []string{"2 carrots", "200 g tofu"},
		Body:        "something else",
	}
	got := Score(c, []string{"carrots"})
	if got != 3 {
		t.Errorf("Score = %d, want 3 for one ingredient hit", got)
	}
}

func TestScoreBonusForTwoIngredientHits(t *testing.T) {
	c := Candidate{
		Ingredients: []string{"2 carrots", "200 g tofu"},
	}
	got := Score(c, []string{"carrots", "tofu"})
	if got != 8 {
		t.Errorf("Score = %d, want 3+3+2 = 8", got)
	}
}

func TestScoreBodyHitsCount(t *testing.T) {
	c := Candidate{Body: "fry the tofu"}
	if got := Score(c, []string{"tofu"}); got != 1 {
		t.Errorf("Score = %d, want 1 for a body-only hit", got)
	}
}

func TestScoreTokenInBothFields(t *testing.T) {
	c := Candidate{
		Ingredients: []string{"200 g tofu"},
		Body:        "fry the tofu",
	}
	if got := Score(c, []string{"tofu"}); got != 4 {
		t.Errorf("Score = %d, want 3+1 = 4", got)
	}
}

func TestScoreMonotoneInHits(t *testing.T) {
	less := Candidate{Ingredients: []string{"2 carrots"}}
	more := Candidate{Ingredients: []string{"2 carrots", "200 g tofu"}}
	pantry := []string{"carrots", "tofu"}
	if Score(less, pantry) >= Score(more, pantry) {
		t.Error("more ingredient hits must score strictly higher")
	}
}

func TestSortStableOnTies(t *testing.T) {
	items := []Candidate{
		{Title: "A", Score: 5},
		{Title: "B", Score: 9},
		{Title: "C", Score: 5},
	}
	Sort(items)
	if items[0].Title != "B" || items[1].Title != "A" || items[2].Title != "C" {
		t.Errorf("order = %q, %q, %q", items[0].Title, items[1].Title, items[2].Title)
	}
}

func TestExcludeByTitleAndIngredients(t *testing.T) {
	items := []Candidate{
		{Title: "Greek Salad", Ingredients: []string{"100 g feta"}},
		{Title: "Feta Pasta"},
		{Title: "Plain Rice", Ingredients: []string{"1 cup rice"}},
	}
	got := Exclude(items, []string{"Feta"})
	if len(got) != 1 || got[0].Title != "Plain Rice" {
		t.Errorf("Exclude() = %v, want only Plain Rice", got)
	}
}

func TestExcludeIgnoresBlankTerms(t *testing.T) {
	items := []Candidate{{Title: "Greek Salad"}}
	got := Exclude(items, []string{"", "  "})
	if len(got) != 1 {
		t.Errorf("blank terms must not exclude anything, got %v", got)
	}
}

func TestExcludeDoesNotReorderSurvivors(t *testing.T) {
	items := []Candidate{
		{Title: "A", Score: 9},
		{Title: "Feta Thing", Score: 7},
		{Title: "B", Score: 5},
	}
	got := Exclude(items, []string{"feta"})
	if len(got) != 2 || got[0].Title != "A" || got[1].Title != "B" {
		t.Errorf("Exclude() = %v, want [A B] in order", got)
	}
}
