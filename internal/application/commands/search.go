package commands

import (
	"context"
	"sort"
	"strings"

	"folio/internal/domain"
)

// SearchResult is a node matching a query, with its breadcrumb and a
// relevance score
type SearchResult struct {
	Node       *domain.Node
	Breadcrumb string
	Score      int
}

// SearchCommand searches node names with fuzzy matching
type SearchCommand struct {
	env   Env
	Query string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(env Env, query string) *SearchCommand {
	return &SearchCommand{
		env:   env,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(strings.TrimSpace(c.Query)) < 2 {
		return nil, nil
	}

	root, err := c.env.LoadTree()
	if err != nil {
		return nil, err
	}
	return Rank(root, c.Query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(strings.TrimSpace(query))

	if len(query) == 0 {
		return 0
	}

	// Substring matches rank first
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] != query[queryIdx] {
			continue
		}
		if prevMatchIdx == i-1 {
			score += 10 // consecutive chars
		}
		if i == 0 {
			score += 15
		}
		if i > 0 && isSeparator(target[i-1]) {
			score += 10
		}
		score++
		prevMatchIdx = i
		queryIdx++
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '.', '-', '_', '/':
		return true
	}
	return false
}

// Rank scores every node of root against query, best first. Ties keep
// tree order.
func Rank(root *domain.Node, query string) []SearchResult {
	var scored []SearchResult
	var stack []*domain.Node

	domain.Walk(root, func(n *domain.Node, depth int) bool {
		stack = append(stack[:depth], n)
		if s := FuzzyScore(n.Name, query); s > 0 {
			state := domain.NavigationState{Active: n, Path: stack[:depth]}
			scored = append(scored, SearchResult{
				Node:       n,
				Breadcrumb: state.Breadcrumb(),
				Score:      s,
			})
		}
		return true
	})

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
