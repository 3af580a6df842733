package domain

// Outcome is the combined result of the persist and notify steps of one submission.
type Outcome struct {
	// ID is the identifier assigned by the store, nil when persistence failed.
	ID *int64
	// Persisted reports whether the row was written.
	Persisted bool
	// EmailSent reports whether the notification was accepted by the provider.
	EmailSent bool
	// PersistErr holds the persistence failure, if any.
	PersistErr error
	// NotifyErr holds the notification failure, if any.
	NotifyErr error
}

// Succeeded reports whether at least one side effect went through.
func (o Outcome) Succeeded() bool {
	return o.Persisted || o.EmailSent
}
