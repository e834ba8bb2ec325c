package kernel

import (
	"fmt"
	"net/mail"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// IdentityKind tags the two ways a caller can own orders and saved addresses.
type IdentityKind string

const (
	IdentityKindUser  IdentityKind = "user"
	IdentityKindGuest IdentityKind = "guest"
)

var ErrIdentityIsNotConstructed = errs.NewValueIsRequiredError(
	"identity must be created via NewUserIdentity or NewGuestIdentity")

// Identity is either an authenticated user id or a guest email, never both.
// Queries that filter by owner must branch on Kind rather than on zero values.
type Identity struct {
	kind   IdentityKind
	userID int64
	email  string
	guard  guard.ConstructorGuard
}

// NewUserIdentity builds the authenticated variant. email is informational
// (it is copied onto orders) and may be empty.
func NewUserIdentity(userID int64, email string) (Identity, error) {
	if userID <= 0 {
		return Identity{}, errs.NewValueIsInvalidError("userID")
	}
	normalized := NormalizeEmail(email)
	if normalized != "" {
		if err := validateEmail(normalized); err != nil {
			return Identity{}, err
		}
	}
	return Identity{
		kind:   IdentityKindUser,
		userID: userID,
		email:  normalized,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func NewGuestIdentity(email string) (Identity, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return Identity{}, errs.NewValueIsRequiredError("email")
	}
	if err := validateEmail(normalized); err != nil {
		return Identity{}, err
	}
	return Identity{
		kind:  IdentityKindGuest,
		email: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (i Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}

func (i Identity) Kind() IdentityKind { return i.kind }
func (i Identity) IsUser() bool       { return i.kind == IdentityKindUser }
func (i Identity) IsGuest() bool      { return i.kind == IdentityKindGuest }
func (i Identity) Email() string      { return i.email }

// UserID returns the user id and whether this is the user variant.
func (i Identity) UserID() (int64, bool) {
	return i.userID, i.kind == IdentityKindUser
}

// OwnerKey is a stable string used for uniqueness constraints across both variants.
func (i Identity) OwnerKey() string {
	if i.kind == IdentityKindUser {
		return fmt.Sprintf("user:%d", i.userID)
	}
	return "email:" + i.email
}

// Actor converts the identity into the actor recorded on events and audit rows.
func (i Identity) Actor() Actor {
	if i.kind == IdentityKindUser {
		id := i.userID
		return Actor{userID: &id, email: i.email}
	}
	return Actor{email: i.email}
}

func (i Identity) String() string {
	return i.OwnerKey()
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return nil
}
