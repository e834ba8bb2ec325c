// Package capability signs and verifies the tokens embedded in customer links.
//
// A token has the form
//
//	<order id>.<issued-at unix seconds, base36>.<base64url HMAC-SHA256>
//
// The MAC covers the action name, the order id and the timestamp, and is
// keyed with a per-action key derived from the master secret with HKDF. A
// token issued for one action therefore never verifies for another.
package capability

import (
	"crypto/sha256"
	"io"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/pkg/errs"

	"golang.org/x/crypto/hkdf"
)

const (
	minSecretLength = 16
	keyLength       = 32
	keyInfoPrefix   = "storefront/link/"
)

// Keys holds one signing key per link action. It is built once at start-up
// and never changes.
type Keys struct {
	byAction map[link.Action][]byte
}

func NewKeys(secret []byte) (Keys, error) {
	if len(secret) < minSecretLength {
		return Keys{}, errs.NewValueIsOutOfRangeError("link secret length", len(secret), minSecretLength, "unbounded")
	}

	byAction := make(map[link.Action][]byte, len(link.Actions()))
	for _, action := range link.Actions() {
		key := make([]byte, keyLength)
		r := hkdf.New(sha256.New, secret, nil, []byte(keyInfoPrefix+action.String()))
		if _, err := io.ReadFull(r, key); err != nil {
			return Keys{}, err
		}
		byAction[action] = key
	}
	return Keys{byAction: byAction}, nil
}

func (k Keys) key(action link.Action) ([]byte, bool) {
	key, ok := k.byAction[action]
	return key, ok
}
