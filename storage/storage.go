// Package storage defines the session-scoped key-value store the guard uses
// to carry state across a login redirect. In the browser this is backed by
// sessionStorage; memstore provides the in-process equivalent.
package storage

import "github.com/linemeet/go-events-client/internal/apperrors"

// Store is a session-scoped key-value store. Entries live for the browser
// session and survive navigation within it.
type Store interface {
	// Get returns the value for key, or apperrors.ErrNotFound.
	Get(key string) (string, error)

	// Set creates or replaces the value for key.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// Take reads and deletes key in one step. Everything the guard stores except
// the relogin flag is one-time-consumed, and Take is that contract.
func Take(s Store, key string) (string, error) {
	value, err := s.Get(key)
	if err != nil {
		return "", err
	}
	if err := s.Delete(key); err != nil {
		return "", err
	}
	return value, nil
}

// ErrNotFound re-exports the sentinel so callers can test absence without
// importing apperrors.
var ErrNotFound = apperrors.ErrNotFound
