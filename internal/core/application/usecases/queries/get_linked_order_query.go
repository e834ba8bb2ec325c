package queries

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/link"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrGetLinkedOrderQueryIsNotConstructed = errors.New(
	"GetLinkedOrderQuery must be created via NewGetLinkedOrderQuery",
)

// GetLinkedOrderQuery loads the order behind a capability link without acting
// on it; link pages use it to render their forms.
type GetLinkedOrderQuery struct {
	action link.Action
	token  string
	guard  guard.ConstructorGuard
}

// NewGetLinkedOrderQuery reports a blank token as errs.ErrInvalidLink, like any other bad token.
func NewGetLinkedOrderQuery(action link.Action, token string) (GetLinkedOrderQuery, error) {
	if _, err := link.ParseAction(string(action)); err != nil {
		return GetLinkedOrderQuery{}, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return GetLinkedOrderQuery{}, errs.ErrInvalidLink
	}
	return GetLinkedOrderQuery{action: action, token: token, guard: guard.NewConstructorGuard()}, nil
}

func (q GetLinkedOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetLinkedOrderQueryIsNotConstructed)
}

func (q GetLinkedOrderQuery) Action() link.Action { return q.action }
func (q GetLinkedOrderQuery) Token() string       { return q.token }
