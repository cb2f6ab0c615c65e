package ports

import "context"

// SettingsStore is the persisted configuration holding the notes value.
// Load returns the raw JSON value of the notes key ("[]" when absent),
// Save replaces it in a single atomic update.
type SettingsStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, notes []byte) error
}

// SettingsWatcher reports external changes to the settings store
type SettingsWatcher interface {
	// Watch blocks until ctx is done, calling onChange after each external
	// modification settles.
	Watch(ctx context.Context, onChange func()) error
}
