package ports

import (
	"storefront/internal/core/domain/model/link"
)

// LinkSigner issues and resolves capability tokens for customer links.
type LinkSigner interface {
	Issue(action link.Action, orderID int64) (string, error)

	// Resolve returns the order id a token was issued for. Every failure
	// (forged, expired, malformed, wrong action) is errs.ErrInvalidLink.
	Resolve(action link.Action, token string) (int64, error)
}

// LinkBuilder turns tokens into absolute URLs of the link pages.
type LinkBuilder interface {
	URL(action link.Action, orderID int64) (string, error)
}
