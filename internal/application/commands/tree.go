package commands

import (
	"context"

	"folio/internal/application"
	"folio/internal/domain"
)

// TreeLine is one row of a rendered tree listing
type TreeLine struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Depth     int    `json:"depth"`
	Collapsed bool   `json:"collapsed,omitempty"`
}

// TreeCommand lists the tree the way the tree pane shows it
type TreeCommand struct {
	env Env
	All bool // ignore collapse state
}

// NewTreeCommand creates a new TreeCommand
func NewTreeCommand(env Env, all bool) *TreeCommand {
	return &TreeCommand{env: env, All: all}
}

// Execute runs the tree command
func (c *TreeCommand) Execute(ctx context.Context) ([]TreeLine, error) {
	root, err := c.env.LoadTree()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store := c.env.Restore(root)

	var lines []TreeLine
	if c.All {
		domain.Walk(root, func(n *domain.Node, depth int) bool {
			lines = append(lines, lineFor(n, depth, n.IsFolder() && store.IsCollapsed(n.ID)))
			return true
		})
		return lines, nil
	}

	for _, row := range application.BuildDisplay(root, store, nil) {
		lines = append(lines, lineFor(row.Node, row.Depth, row.Collapsed))
	}
	return lines, nil
}

func lineFor(n *domain.Node, depth int, collapsed bool) TreeLine {
	return TreeLine{
		ID:        n.ID,
		Type:      n.Type.String(),
		Name:      n.Name,
		Depth:     depth,
		Collapsed: collapsed,
	}
}
