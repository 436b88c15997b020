package commands

import (
	"context"

	"folio/internal/application"
)

// CollapsedCommand lists the collapsed folder ids
type CollapsedCommand struct {
	env Env
}

// NewCollapsedCommand creates a new CollapsedCommand
func NewCollapsedCommand(env Env) *CollapsedCommand {
	return &CollapsedCommand{env: env}
}

// Execute returns the collapsed ids in ascending order
func (c *CollapsedCommand) Execute(ctx context.Context) ([]int, error) {
	root, err := c.env.LoadTree()
	if err != nil {
		return nil, err
	}
	return c.env.Restore(root).IDs(), nil
}

// SetCollapsedCommand collapses or expands one folder
type SetCollapsedCommand struct {
	env       Env
	FolderID  int
	Collapsed bool
}

// NewSetCollapsedCommand creates a new SetCollapsedCommand
func NewSetCollapsedCommand(env Env, folderID int, collapsed bool) *SetCollapsedCommand {
	return &SetCollapsedCommand{
		env:       env,
		FolderID:  folderID,
		Collapsed: collapsed,
	}
}

// Execute applies the change and persists it. Unlike the TUI, storage
// errors are returned to the caller.
func (c *SetCollapsedCommand) Execute(ctx context.Context) ([]int, error) {
	root, err := c.env.LoadTree()
	if err != nil {
		return nil, err
	}

	if _, err := application.RequireFolder(root, c.FolderID); err != nil {
		return nil, err
	}

	store := c.env.Restore(root)
	if c.Collapsed {
		store.Collapse(c.FolderID)
	} else {
		store.Expand(c.FolderID)
	}

	if err := store.Flush(); err != nil {
		return nil, err
	}
	return store.IDs(), nil
}

// ResetCollapsedCommand puts the collapse state back to the default rule
type ResetCollapsedCommand struct {
	env Env
}

// NewResetCollapsedCommand creates a new ResetCollapsedCommand
func NewResetCollapsedCommand(env Env) *ResetCollapsedCommand {
	return &ResetCollapsedCommand{env: env}
}

// Execute runs the reset and returns the new collapsed ids
func (c *ResetCollapsedCommand) Execute(ctx context.Context) ([]int, error) {
	root, err := c.env.LoadTree()
	if err != nil {
		return nil, err
	}

	store := application.NewCollapseStore(c.env.Blob, c.env.logger())
	store.Reset(root)
	if err := store.Flush(); err != nil {
		return nil, err
	}
	return store.IDs(), nil
}
