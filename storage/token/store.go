// Package token persists the session token: a single named slot shared
// process-wide, created on login/register and cleared on logout or on an
// authentication failure. Concurrent writers are last-write-wins; external
// changes can be observed through Watch.
package token

type Store interface {
	// Get returns the persisted token, or "" when the slot is empty.
	Get() (string, error)
	Set(token string) error
	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear() error
}
