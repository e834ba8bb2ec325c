package address

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const (
	// DefaultLabel is used when a checkout stores the address it was given.
	DefaultLabel = "Checkout"

	maxAddressLength = 300
	maxLabelLength   = 64
)

var (
	// ErrAddressIsRequired is returned when the address text is blank.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrSavedAddressIsNotConstructed is returned when using a zero SavedAddress.
	ErrSavedAddressIsNotConstructed = errors.New("saved address must be created via NewSavedAddress or RestoreSavedAddress")
)

// Details are the free-form parts of an address a courier needs at the door.
type Details struct {
	Label     string
	Address   string
	Entrance  string
	Floor     string
	Apartment string
	Intercom  string
	Comment   string
}

// SavedAddress is an address a customer keeps for future checkouts.
//
// Business rules:
//   - the owner is either a user or a guest email, never both
//   - address text is required and at most 300 characters
//   - at most one address per owner is the default; the repository clears the
//     others in the same transaction when a new default is stored
type SavedAddress struct {
	id        int64
	owner     kernel.Identity
	details   Details
	point     *kernel.GeoPoint
	meta      map[string]any
	isDefault bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewSavedAddress validates the details and returns an unsaved address.
// point may be nil when the customer did not drop a pin.
func NewSavedAddress(owner kernel.Identity, details Details, point *kernel.GeoPoint,
	isDefault bool, now time.Time,
) (*SavedAddress, error) {
	details = trim(details)
	if details.Label == "" {
		details.Label = DefaultLabel
	}

	var problems []error
	if err := owner.Validate(); err != nil {
		problems = append(problems, err)
	}
	if details.Address == "" {
		problems = append(problems, ErrAddressIsRequired)
	}
	if n := utf8.RuneCountInString(details.Address); n > maxAddressLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("address length", n, 1, maxAddressLength))
	}
	if n := utf8.RuneCountInString(details.Label); n > maxLabelLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("label length", n, 1, maxLabelLength))
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &SavedAddress{
		owner:     owner,
		details:   details,
		point:     point,
		meta:      map[string]any{},
		isDefault: isDefault,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreSavedAddress rebuilds a stored address.
func RestoreSavedAddress(id int64, owner kernel.Identity, details Details, point *kernel.GeoPoint,
	meta map[string]any, isDefault bool, createdAt time.Time,
) (*SavedAddress, error) {
	a, err := NewSavedAddress(owner, details, point, isDefault, createdAt)
	if err != nil {
		return nil, err
	}
	a.id = id
	if meta != nil {
		a.meta = meta
	}
	return a, nil
}

func (a *SavedAddress) Validate() error {
	if a == nil {
		return ErrSavedAddressIsNotConstructed
	}
	return a.guard.Validate(ErrSavedAddressIsNotConstructed)
}

func (a *SavedAddress) ID() int64               { return a.id }
func (a *SavedAddress) Owner() kernel.Identity  { return a.owner }
func (a *SavedAddress) Details() Details        { return a.details }
func (a *SavedAddress) Address() string         { return a.details.Address }
func (a *SavedAddress) Point() *kernel.GeoPoint { return a.point }
func (a *SavedAddress) Meta() map[string]any    { return a.meta }
func (a *SavedAddress) IsDefault() bool         { return a.isDefault }
func (a *SavedAddress) CreatedAt() time.Time    { return a.createdAt }

// AssignID is called by the repository after insert.
func (a *SavedAddress) AssignID(id int64) {
	a.id = id
}

// IsOwnedBy reports whether the identity owns this address.
func (a *SavedAddress) IsOwnedBy(owner kernel.Identity) bool {
	return a.owner.OwnerKey() == owner.OwnerKey()
}

func trim(d Details) Details {
	return Details{
		Label:     strings.TrimSpace(d.Label),
		Address:   strings.TrimSpace(d.Address),
		Entrance:  strings.TrimSpace(d.Entrance),
		Floor:     strings.TrimSpace(d.Floor),
		Apartment: strings.TrimSpace(d.Apartment),
		Intercom:  strings.TrimSpace(d.Intercom),
		Comment:   strings.TrimSpace(d.Comment),
	}
}
