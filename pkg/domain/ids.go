// Package domain holds typed identifiers shared across services.
//
// IDs are validated at trust boundaries via the Parse* constructors; direct
// casting bypasses validation and should only appear in tests.
package domain

import (
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "cardspace/pkg/domain-errors"
)

// UserID is the identity provider's opaque subject identifier. Unlike the
// catalog IDs it is not a UUID: the provider mints its own format, so the
// only invariants enforced here are non-empty, valid UTF-8, and a sane upper
// bound for key derivation.
type UserID string

// maxUserIDLen bounds derived storage keys; provider subjects are far shorter.
const maxUserIDLen = 190

// ParseUserID constructs a UserID from external input.
func ParseUserID(s string) (UserID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "user ID cannot be empty")
	}
	if len(s) > maxUserIDLen {
		return "", dErrors.New(dErrors.CodeInvalidInput, "user ID too long")
	}
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "user ID must be valid UTF-8")
	}
	return UserID(s), nil
}

// IsNil returns true when no user ID is present.
func (u UserID) IsNil() bool { return u == "" }

func (u UserID) String() string { return string(u) }

// BrandID identifies a merchant brand in the catalog.
type BrandID uuid.UUID

// CategoryID identifies a brand category.
type CategoryID uuid.UUID

// CardID identifies a loyalty card in a user's wallet.
type CardID uuid.UUID

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "ID cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "ID must be a valid UUID")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "ID cannot be the nil UUID")
	}
	return id, nil
}

// ParseBrandID validates and returns a BrandID.
func ParseBrandID(s string) (BrandID, error) {
	id, err := parseUUID(s)
	return BrandID(id), err
}

// ParseCategoryID validates and returns a CategoryID.
func ParseCategoryID(s string) (CategoryID, error) {
	id, err := parseUUID(s)
	return CategoryID(id), err
}

// ParseCardID validates and returns a CardID.
func ParseCardID(s string) (CardID, error) {
	id, err := parseUUID(s)
	return CardID(id), err
}

func (id BrandID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id CategoryID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id CardID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

func (id BrandID) String() string    { return uuid.UUID(id).String() }
func (id CategoryID) String() string { return uuid.UUID(id).String() }
func (id CardID) String() string     { return uuid.UUID(id).String() }

// The UUID-backed IDs marshal as canonical UUID strings. Defined types do
// not inherit uuid.UUID's methods, so these are spelled out.

func (id BrandID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id CategoryID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id CardID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }

func (id *BrandID) UnmarshalText(text []byte) error {
	parsed, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*id = BrandID(parsed)
	return nil
}

func (id *CategoryID) UnmarshalText(text []byte) error {
	parsed, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*id = CategoryID(parsed)
	return nil
}

func (id *CardID) UnmarshalText(text []byte) error {
	parsed, err := uuid.ParseBytes(text)
	if err != nil {
		return err
	}
	*id = CardID(parsed)
	return nil
}

// NewBrandID mints a fresh brand ID.
func NewBrandID() BrandID { return BrandID(uuid.New()) }

// NewCategoryID mints a fresh category ID.
func NewCategoryID() CategoryID { return CategoryID(uuid.New()) }

// NewCardID mints a fresh card ID.
func NewCardID() CardID { return CardID(uuid.New()) }
