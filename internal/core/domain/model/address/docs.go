// Package address holds customer saved addresses.
package address
