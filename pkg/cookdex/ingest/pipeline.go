// Package ingest reconstructs discrete recipe records from the flat,
// divider-delimited block stream of a source document.
package ingest

import "github.com/cookdex/cookdex/pkg/cookdex/recipe"

// ParseBlocks runs the full parse: blocks to lines, lines to sections,
// sections to recipes. Sections yielding neither title nor body are
// dropped.
func ParseBlocks(blocks []Block) []recipe.Recipe {
	var recipes []recipe.Recipe
	for _, sec := range SplitSections(Lines(blocks)) {
		if r, ok := SectionRecipe(sec); ok {
			recipes = append(recipes, r)
		}
	}
	return recipes
}
