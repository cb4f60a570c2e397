package syncer

import "fmt"

// FetchScope distinguishes single-date fetches from batch fetches in error
// reporting.
type FetchScope string

const (
	ScopeSingleDate FetchScope = "single-date"
	ScopeBatch      FetchScope = "batch"
)

// FetchError reports a failed foreground fetch. The affected dates stay
// absent from the cache; recovery is user-initiated.
type FetchError struct {
	Scope FetchScope
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed (%s): %v", e.Scope, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SaveError reports a failed persist of one date's record. There is no
// automatic retry; the optimistic cache state is kept.
type SaveError struct {
	DateString string
	Err        error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save failed for %s: %v", e.DateString, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// AuthError reports an identity-provider failure.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth failed: %s", e.Reason)
}

// ValidationError reports a rejected field. Note that slots-per-day is
// clamped, not rejected, and never produces this error.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation rejected: %s", e.Field)
}
