// Package onboarding tracks the "has completed onboarding" fact, globally and
// per user, on top of an asynchronous key-value store.
//
// The flag is only ever stored as "true" or removed; absence means "not
// completed". The global key predates per-user tracking and is kept as a
// fallback so devices upgraded from the single-flag era keep their state.
package onboarding

import id "cardspace/pkg/domain"

// Keys is the storage key layout for onboarding flags. It is a value passed
// into the service at construction rather than ambient package state, so
// tests can run against isolated namespaces.
type Keys struct {
	// Global is the legacy device-wide flag key.
	Global string
	// UserPrefix is prepended to a user ID to form that user's flag key.
	UserPrefix string
}

// DefaultKeys matches the layout shipped in the mobile clients. Changing
// these values orphans every flag already persisted under the old names.
func DefaultKeys() Keys {
	return Keys{
		Global:     "hasCompletedOnboarding",
		UserPrefix: "userOnboarding_",
	}
}

// ForUser derives the per-user flag key. Distinct user IDs can never collide:
// the key is prefix plus the raw ID, and IDs are non-empty.
func (k Keys) ForUser(userID id.UserID) string {
	return k.UserPrefix + userID.String()
}

// FlagValue is the only value ever written for a set flag.
const FlagValue = "true"
