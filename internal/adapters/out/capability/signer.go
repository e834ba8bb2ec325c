package capability

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/pkg/errs"
)

var ErrKeysAreNotInitialized = errors.New("link keys must be created via NewKeys")

// maxClockSkew tolerates tokens stamped slightly in the future by another instance.
const maxClockSkew = 5 * time.Minute

// Signer implements ports.LinkSigner.
type Signer struct {
	keys Keys
	now  func() time.Time
}

// NewSigner uses time.Now when now is nil.
func NewSigner(keys Keys, now func() time.Time) *Signer {
	if now == nil {
		now = time.Now
	}
	return &Signer{keys: keys, now: now}
}

func (s *Signer) Issue(action link.Action, orderID int64) (string, error) {
	if _, err := link.ParseAction(action.String()); err != nil {
		return "", err
	}
	if orderID <= 0 {
		return "", errs.NewValueIsInvalidError("order id")
	}
	key, ok := s.keys.key(action)
	if !ok {
		return "", ErrKeysAreNotInitialized
	}

	id := strconv.FormatInt(orderID, 10)
	ts := strconv.FormatInt(s.now().Unix(), 36)
	return id + "." + ts + "." + sign(key, action, id, ts), nil
}

// Resolve never says why a token was rejected.
func (s *Signer) Resolve(action link.Action, token string) (int64, error) {
	key, ok := s.keys.key(action)
	if !ok {
		return 0, errs.ErrInvalidLink
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0, errs.ErrInvalidLink
	}
	id, ts, mac := parts[0], parts[1], parts[2]

	orderID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || orderID <= 0 || strconv.FormatInt(orderID, 10) != id {
		return 0, errs.ErrInvalidLink
	}
	issuedAt, err := strconv.ParseInt(ts, 36, 64)
	if err != nil {
		return 0, errs.ErrInvalidLink
	}

	want := sign(key, action, id, ts)
	if !hmac.Equal([]byte(mac), []byte(want)) {
		return 0, errs.ErrInvalidLink
	}

	age := s.now().Sub(time.Unix(issuedAt, 0))
	if age > action.MaxAge() || age < -maxClockSkew {
		return 0, errs.ErrInvalidLink
	}
	return orderID, nil
}

func sign(key []byte, action link.Action, id, ts string) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(action.String() + ":" + id + ":" + ts))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
