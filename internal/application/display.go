package application

import "folio/internal/domain"

// DisplayRow is one visible line of the tree pane
type DisplayRow struct {
	Node      *domain.Node
	Depth     int
	Collapsed bool // matches the CollapseStore at build time
	Animating bool
}

// BuildDisplay flattens the tree into the rows the tree pane shows.
// A folder's child block is cut to its pinned animation height when it
// is animating, to zero when collapsed, and shown whole otherwise.
// anim may be nil when nothing animates.
func BuildDisplay(root *domain.Node, store *CollapseStore, anim *Animator) []DisplayRow {
	if root == nil {
		return nil
	}
	return displayBlock(root, 0, store, anim)
}

// NaturalHeight returns the number of rows folder's child block takes
// when fully open, honouring the state of nested folders.
func NaturalHeight(folder *domain.Node, store *CollapseStore, anim *Animator) int {
	if !folder.HasChildren() {
		return 0
	}
	return len(childRows(folder, 0, store, anim))
}

func displayBlock(node *domain.Node, depth int, store *CollapseStore, anim *Animator) []DisplayRow {
	row := DisplayRow{Node: node, Depth: depth}
	if node.IsFolder() {
		row.Collapsed = store.IsCollapsed(node.ID)
		row.Animating = anim != nil && anim.IsAnimating(node.ID)
	}

	rows := []DisplayRow{row}
	if !node.HasChildren() {
		return rows
	}

	kids := childRows(node, depth, store, anim)
	visible := len(kids)
	if h, pinned := heightOf(anim, node.ID); pinned {
		visible = min(max(h, 0), len(kids))
	} else if row.Collapsed {
		visible = 0
	}
	return append(rows, kids[:visible]...)
}

func childRows(folder *domain.Node, depth int, store *CollapseStore, anim *Animator) []DisplayRow {
	var rows []DisplayRow
	for _, child := range folder.Children {
		if child == nil {
			continue
		}
		rows = append(rows, displayBlock(child, depth+1, store, anim)...)
	}
	return rows
}

func heightOf(anim *Animator, id int) (int, bool) {
	if anim == nil {
		return 0, false
	}
	return anim.Height(id)
}
