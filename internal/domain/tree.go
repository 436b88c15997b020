package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTree is wrapped by every Validate failure
var ErrInvalidTree = errors.New("invalid tree")

// FindWithPath searches the tree depth-first in pre-order for targetID.
// It returns the node and its ancestors (root first, node excluded).
// When the id is absent it returns (nil, nil).
func FindWithPath(root *Node, targetID int) (*Node, []*Node) {
	if root == nil {
		return nil, nil
	}

	var stack []*Node
	node := findWithPath(root, targetID, &stack)
	if node == nil {
		return nil, nil
	}

	path := make([]*Node, len(stack))
	copy(path, stack)
	return node, path
}

func findWithPath(node *Node, targetID int, stack *[]*Node) *Node {
	if node.ID == targetID {
		return node
	}
	if !node.IsFolder() {
		return nil
	}

	*stack = append(*stack, node)
	for _, child := range node.Children {
		if child == nil {
			continue
		}
		if hit := findWithPath(child, targetID, stack); hit != nil {
			return hit
		}
	}
	*stack = (*stack)[:len(*stack)-1]
	return nil
}

// FindFirstLeaf returns the first file under folderID in pre-order.
// It returns nil if folderID is absent, is a file, or holds no files.
func FindFirstLeaf(root *Node, folderID int) *Node {
	folder, _ := FindWithPath(root, folderID)
	if !folder.IsFolder() {
		return nil
	}
	return firstLeaf(folder)
}

func firstLeaf(folder *Node) *Node {
	for _, child := range folder.Children {
		if child.IsFile() {
			return child
		}
		if child.IsFolder() {
			if leaf := firstLeaf(child); leaf != nil {
				return leaf
			}
		}
	}
	return nil
}

// Walk visits every node in pre-order with its depth (root = 0).
// Returning false from fn stops the walk.
func Walk(root *Node, fn func(node *Node, depth int) bool) {
	if root == nil {
		return
	}
	walk(root, 0, fn)
}

func walk(node *Node, depth int, fn func(*Node, int) bool) bool {
	if !fn(node, depth) {
		return false
	}
	for _, child := range node.Children {
		if child == nil {
			continue
		}
		if !walk(child, depth+1, fn) {
			return false
		}
	}
	return true
}

// Count returns the number of nodes in the tree
func Count(root *Node) int {
	n := 0
	Walk(root, func(*Node, int) bool {
		n++
		return true
	})
	return n
}

// Validate checks the structural invariants of a tree: ids are positive
// and unique, files carry no children, and no node appears twice.
func Validate(root *Node) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrInvalidTree)
	}

	seen := make(map[int]bool)
	visited := make(map[*Node]bool)
	var err error

	Walk(root, func(node *Node, _ int) bool {
		switch {
		case visited[node]:
			err = fmt.Errorf("%w: node %d is reachable twice", ErrInvalidTree, node.ID)
		case node.ID <= 0:
			err = fmt.Errorf("%w: node %q has non-positive id %d", ErrInvalidTree, node.Name, node.ID)
		case seen[node.ID]:
			err = fmt.Errorf("%w: duplicate id %d", ErrInvalidTree, node.ID)
		case node.IsFile() && len(node.Children) > 0:
			err = fmt.Errorf("%w: file %d has children", ErrInvalidTree, node.ID)
		}
		if err != nil {
			return false
		}
		visited[node] = true
		seen[node.ID] = true
		return true
	})

	return err
}

// Search returns nodes whose name contains query (case-insensitive), in pre-order
func Search(root *Node, query string) []*Node {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []*Node
	Walk(root, func(node *Node, _ int) bool {
		if strings.Contains(strings.ToLower(node.Name), query) {
			results = append(results, node)
		}
		return true
	})
	return results
}
