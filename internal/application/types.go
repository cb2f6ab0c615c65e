package application

import "syncednotes/internal/domain"

// Re-export domain types for use by adapters
type (
	Node        = domain.Node
	NodeID      = domain.NodeID
	Tree        = domain.Tree
	Kind        = domain.Kind
	ChildFilter = domain.ChildFilter
	Entry       = domain.Entry
)

const (
	KindFolder = domain.KindFolder
	KindNote   = domain.KindNote
	RootLevel  = domain.RootLevel
)

// Preview decodes an encoded payload and truncates it for display
func Preview(encoded string, n int) (string, error) {
	return domain.Preview(encoded, n)
}
