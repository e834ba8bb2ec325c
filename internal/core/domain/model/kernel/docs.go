// Package kernel contains value objects shared by every aggregate of the
// storefront domain.
//
// Money is an integer amount in minor currency units. Identity is the
// two-variant owner of orders and saved addresses (authenticated user or guest
// email), Actor is the party recorded on events and audit rows, GeoPoint is an
// optional coordinate pair on saved addresses and UUID is used for identifiers
// that are not assigned by the database.
//
// Types with a ConstructorGuard reject their zero value in Validate.
package kernel
