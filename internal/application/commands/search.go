package commands

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"syncednotes/internal/application"
	"syncednotes/internal/domain"
)

// SearchResult is a node matching a search query
type SearchResult struct {
	NodeID  domain.NodeID
	Label   string
	Path    string
	Kind    domain.Kind
	Snippet string
	Score   int
}

// SearchCommand searches labels, paths and note text with fuzzy matching
type SearchCommand struct {
	store *application.NoteStore
	Query string
	// Limit caps the number of results; zero means no cap
	Limit int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(store *application.NoteStore, query string) *SearchCommand {
	return &SearchCommand{
		store: store,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results.
// Queries shorter than two characters return nothing.
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if len([]rune(query)) < 2 {
		return nil, nil
	}

	tree := c.store.Snapshot()
	var results []SearchResult
	tree.Walk(func(n *domain.Node, _ int) bool {
		if err := ctx.Err(); err != nil {
			return false
		}
		path := application.PathString(tree, n.ID())
		best := max(domain.FuzzyScore(n.Label(), query), domain.FuzzyScore(path, query))

		var snippet string
		if n.IsNote() {
			if text, err := domain.Decode(n.EncodedContent()); err == nil {
				line, score := bestLine(text, query)
				// Text matches rank below label matches of the same quality
				if score/2 > best {
					best = score / 2
				}
				snippet = domain.Truncate(line, 80)
			}
		}

		if best > 0 {
			results = append(results, SearchResult{
				NodeID:  n.ID(),
				Label:   n.Label(),
				Path:    path,
				Kind:    n.Kind(),
				Snippet: snippet,
				Score:   best,
			})
		}
		return true
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}
	return results, nil
}

// bestLine returns the line of text that scores highest against query
func bestLine(text, query string) (string, int) {
	var line string
	best := 0
	for l := range strings.Lines(text) {
		l = strings.TrimSpace(l)
		if score := domain.FuzzyScore(l, query); score > best {
			line, best = l, score
		}
	}
	return line, best
}
