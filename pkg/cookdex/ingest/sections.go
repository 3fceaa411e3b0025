package ingest

import (
	"strings"

	"github.com/cookdex/cookdex/pkg/cookdex/recipe"
)

// SplitSections cuts the line stream at divider sentinels. Consecutive
// dividers produce no empty sections; a trailing run without a closing
// divider still becomes a final section.
func SplitSections(lines []string) [][]string {
	var sections [][]string
	var current []string
	for _, ln := range lines {
		if ln == Divider {
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
			continue
		}
		current = append(current, ln)
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}
	return sections
}

// SectionRecipe derives one recipe from a section.
//
// The title is the first line that is not a list item, with trailing colon
// and spaces stripped. When every line is a list item, the first line with
// its marker removed serves as title. Body lines start after the point
// where the title line re-occurs (a trailing colon is ignored when
// matching); everything from there on is joined with newlines.
//
// Returns false when the section yields neither a title nor a body.
func SectionRecipe(section []string) (recipe.Recipe, bool) {
	if len(section) == 0 {
		return recipe.Recipe{}, false
	}

	var title string
	for _, ln := range section {
		if ln != "" && !strings.HasPrefix(ln, "-") {
			title = strings.Trim(ln, ": ")
			break
		}
	}
	if title == "" {
		first := section[0]
		if strings.HasPrefix(first, listMarker) {
			title = strings.TrimSpace(first[len(listMarker):])
		} else {
			title = first
		}
	}

	var body []string
	started := false
	for _, ln := range section {
		if !started {
			if ln == title || strings.TrimRight(ln, ":") == title {
				started = true
			}
			continue
		}
		body = append(body, ln)
	}

	r := recipe.Recipe{
		Title:            title,
		Body:             strings.TrimSpace(strings.Join(body, "\n")),
		EnrichmentSource: recipe.SourceOriginal,
	}
	if r.Title == "" && r.Body == "" {
		return recipe.Recipe{}, false
	}
	return r, true
}
