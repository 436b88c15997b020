package application

import (
	"fmt"
	"strconv"
	"strings"

	"folio/internal/domain"
)

// ParseNodeID parses a user-supplied node id.
// Returns a ValidationError if the value is empty or not a positive integer.
func ParseNodeID(fieldName, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}

	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected a positive integer, got: %s", value),
		}
	}
	return id, nil
}

// RequireNode looks up id in root and returns a NodeError wrapping
// ErrNotFound when it is absent.
func RequireNode(root *domain.Node, id int) (*domain.Node, []*domain.Node, error) {
	node, path := domain.FindWithPath(root, id)
	if node == nil {
		return nil, nil, &NodeError{ID: id, Reason: "no such node", Err: ErrNotFound}
	}
	return node, path, nil
}

// RequireFolder is RequireNode restricted to folders
func RequireFolder(root *domain.Node, id int) (*domain.Node, error) {
	node, _, err := RequireNode(root, id)
	if err != nil {
		return nil, err
	}
	if !node.IsFolder() {
		return nil, &NodeError{ID: id, Reason: "not a folder", Err: ErrInvalidOperation}
	}
	return node, nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "folderID" -> "folder ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"nodeID":   "node ID",
		"folderID": "folder ID",
		"targetID": "target ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}
