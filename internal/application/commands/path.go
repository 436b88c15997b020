package commands

import (
	"context"

	"folio/internal/application"
	"folio/internal/domain"
)

// PathResult is a node together with its ancestors, root first
type PathResult struct {
	Node      *domain.Node
	Ancestors []*domain.Node
}

// Breadcrumb joins the ancestor names and the node name with "/"
func (r PathResult) Breadcrumb() string {
	state := domain.NavigationState{Active: r.Node, Path: r.Ancestors}
	return state.Breadcrumb()
}

// PathCommand resolves a node id to its ancestor chain
type PathCommand struct {
	env Env
	ID  int
}

// NewPathCommand creates a new PathCommand
func NewPathCommand(env Env, id int) *PathCommand {
	return &PathCommand{env: env, ID: id}
}

// Execute runs the path command
func (c *PathCommand) Execute(ctx context.Context) (PathResult, error) {
	root, err := c.env.LoadTree()
	if err != nil {
		return PathResult{}, err
	}

	node, path, err := application.RequireNode(root, c.ID)
	if err != nil {
		return PathResult{}, err
	}
	return PathResult{Node: node, Ancestors: path}, nil
}

// FirstLeafCommand finds the first file under a folder
type FirstLeafCommand struct {
	env      Env
	FolderID int
}

// NewFirstLeafCommand creates a new FirstLeafCommand
func NewFirstLeafCommand(env Env, folderID int) *FirstLeafCommand {
	return &FirstLeafCommand{env: env, FolderID: folderID}
}

// Execute returns the first leaf and its ancestors. A folder without
// files is reported as ErrNotFound.
func (c *FirstLeafCommand) Execute(ctx context.Context) (PathResult, error) {
	root, err := c.env.LoadTree()
	if err != nil {
		return PathResult{}, err
	}

	if _, err := application.RequireFolder(root, c.FolderID); err != nil {
		return PathResult{}, err
	}

	leaf := domain.FindFirstLeaf(root, c.FolderID)
	if leaf == nil {
		return PathResult{}, &application.NodeError{
			ID:     c.FolderID,
			Reason: "folder holds no files",
			Err:    application.ErrNotFound,
		}
	}

	_, path := domain.FindWithPath(root, leaf.ID)
	return PathResult{Node: leaf, Ancestors: path}, nil
}
