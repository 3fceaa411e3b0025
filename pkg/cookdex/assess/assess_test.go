package assess

import (
	"testing"

	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

func TestAssessNoTitle(t *testing.T) {
	a := New(nil)
	verdict := a.Assess(recipe.Recipe{Body: "some body"})
	if verdict.Complete {
		t.Error("record without title must be incomplete")
	}
	if verdict.Reason != "no title" {
		t.Errorf("Reason = %q, want no title", verdict.Reason)
	}
}

func TestAssessEnoughLines(t *testing.T) {
	a := New([]string{}) // no cues, line count only
	r := recipe.Recipe{
		Title: "Mystery Dish",
		Body:  "aaa\n\nbbb\nccc",
	}
	verdict := a.Assess(r)
	if !verdict.Complete {
		t.Errorf("three non-blank lines should be complete, got %+v", verdict)
	}
}

func TestAssessTooFewLinesWithoutCue(t *testing.T) {
	a := New([]string{})
	r := recipe.Recipe{Title: "Mystery Dish", Body: "aaa\nbbb"}
	verdict := a.Assess(r)
	if verdict.Complete {
		t.Error("two cue-free lines must be incomplete")
	}
	if verdict.Reason != "too little structure" {
		t.Errorf("Reason = %q, want too little structure", verdict.Reason)
	}
}

func TestAssessCueBeatsLineCount(t *testing.T) {
	a := New(nil)
	r := recipe.Recipe{Title: "Goulash", Body: "Simmer everything for two hours."}
	if verdict := a.Assess(r); !verdict.Complete {
		t.Errorf("cooking cue should mark a one-line body complete, got %+v", verdict)
	}
}

func TestAssessCueIsCaseInsensitive(t *testing.T) {
	a := New(nil)
	r := recipe.Recipe{Title: "Goulash", Body: "SIMMER it."}
	if verdict := a.Assess(r); !verdict.Complete {
		t.Errorf("cue matching is on the lowercased body, got %+v", verdict)
	}
}

func TestAssessEmptyBody(t *testing.T) {
	a := New(nil)
	if verdict := a.Assess(recipe.Recipe{Title: "Goulash"}); verdict.Complete {
		t.Error("title-only record must be incomplete")
	}
}
