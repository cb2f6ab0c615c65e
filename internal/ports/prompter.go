package ports

import "context"

// Choice is one row of a quick-pick list
type Choice struct {
	Label       string
	Description string
	// Sentinel marks a synthetic action row rather than a tree node
	Sentinel bool
}

// Prompter collects input from the user. A false ok means the user backed
// out, which is not an error.
type Prompter interface {
	// Choose shows choices and returns the index picked
	Choose(ctx context.Context, title string, choices []Choice) (index int, ok bool, err error)

	// Input asks for a single line of text, prefilled with initial
	Input(ctx context.Context, title, initial string) (value string, ok bool, err error)

	// Confirm asks a yes/no question
	Confirm(ctx context.Context, question string) (bool, error)
}
