package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/cookdex/cookdex/internal/notion"
	"github.com/cookdex/cookdex/pkg/cookdex/assess"
)

// catalog-dump fetches the recipe page and prints what the parser made
// of it. Useful for checking how a page edit changed record boundaries.
func main() {
	var (
		full = flag.Bool("full", false, "Print full record bodies instead of a summary line")
	)
	flag.Parse()

	client := &notion.Client{
		Token:  os.Getenv("NOTION_TOKEN"),
		PageID: os.Getenv("NOTION_RECIPES_ID"),
	}

	recipes, err := client.Recipes(context.Background())
	if err != nil {
		log.Fatal("Failed to fetch catalog:", err)
	}

	assessor := assess.New(nil)

	if *full {
		for _, r := range recipes {
			fmt.Printf("=== %s\n%s\n\n", r.Title, r.Body)
		}
		return
	}

	titleWidth := len("Recipe")
	for _, r := range recipes {
		if w := runewidth.StringWidth(r.Title); w > titleWidth {
			titleWidth = w
		}
	}

	fmt.Printf("%s  %5s  %-10s  %s\n", runewidth.FillRight("Recipe", titleWidth), "Lines", "Complete", "Preview")
	for _, r := range recipes {
		verdict := assessor.Assess(r)
		fmt.Printf("%s  %5d  %-10v  %s\n",
			runewidth.FillRight(r.Title, titleWidth),
			len(nonBlankLines(r.Body)),
			verdict.Complete,
			preview(r.Body, 60))
	}
	fmt.Printf("\n%d records\n", len(recipes))
}

func nonBlankLines(body string) []string {
	var out []string
	for _, ln := range strings.Split(body, "\n") {
		if strings.TrimSpace(ln) != "" {
			out = append(out, ln)
		}
	}
	return out
}

func preview(body string, max int) string {
	flat := strings.Join(strings.Fields(body), " ")
	if runewidth.StringWidth(flat) <= max {
		return flat
	}
	return runewidth.Truncate(flat, max, "...")
}
