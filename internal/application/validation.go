package application

import (
	"fmt"
	"strings"

	"syncednotes/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "noteID" -> "note ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"noteID":   "note ID",
		"folderID": "folder ID",
		"parentID": "parent ID",
		"targetID": "target ID",
		"label":    "label",
		"query":    "query",
		"path":     "path",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateKind checks that id names a node of the expected kind in tree.
// Returns a ValidationError when the node is missing or of the other kind.
func ValidateKind(tree *domain.Tree, fieldName string, id domain.NodeID, want domain.Kind) error {
	n, ok := tree.Node(id)
	if !ok {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s not found: %s", formatFieldName(fieldName), id),
		}
	}
	if n.Kind() != want {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected %s, got %s %q", want, n.Kind(), n.Label()),
		}
	}
	return nil
}

// SplitPath splits a slash separated label path like "Work/Meetings/standup".
// Empty segments are dropped.
func SplitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
