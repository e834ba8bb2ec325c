package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrConfirmReceiptCommandIsNotConstructed = errors.New(
		"ConfirmReceiptCommand must be created via NewConfirmReceiptCommand constructor",
	)
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrRateOrderCommandIsNotConstructed = errors.New(
		"RateOrderCommand must be created via NewRateOrderCommand constructor",
	)
	ErrRepeatOrderCommandIsNotConstructed = errors.New(
		"RepeatOrderCommand must be created via NewRepeatOrderCommand constructor",
	)
	ErrRequestCallbackCommandIsNotConstructed = errors.New(
		"RequestCallbackCommand must be created via NewRequestCallbackCommand constructor",
	)
	ErrRequestAddressChangeCommandIsNotConstructed = errors.New(
		"RequestAddressChangeCommand must be created via NewRequestAddressChangeCommand constructor",
	)
)

// An empty or blank token can never verify, so it is rejected up front with
// the same error a forged one gets.
func validateToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errs.ErrInvalidLink
	}
	return token, nil
}

type ConfirmReceiptCommand struct { //nolint:recvcheck //using for validation
	token string
	guard guard.ConstructorGuard
}

func NewConfirmReceiptCommand(token string) (ConfirmReceiptCommand, error) {
	token, err := validateToken(token)
	if err != nil {
		return ConfirmReceiptCommand{}, err
	}
	return ConfirmReceiptCommand{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmReceiptCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceiptCommandIsNotConstructed)
}

func (c ConfirmReceiptCommand) Token() string { return c.token }

// CancelOrderCommand without confirmation only loads the order so the page
// can ask the customer to confirm.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	token     string
	confirmed bool
	guard     guard.ConstructorGuard
}

func NewCancelOrderCommand(token string, confirmed bool) (CancelOrderCommand, error) {
	token, err := validateToken(token)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{token: token, confirmed: confirmed, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Token() string   { return c.token }
func (c CancelOrderCommand) Confirmed() bool { return c.confirmed }

// RateOrderCommand accepts any score; the order clamps it to 1..5.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	token   string
	score   int
	comment string
	guard   guard.ConstructorGuard
}

// DefaultRatingScore is used when the rating form is sent without a score.
const DefaultRatingScore = order.MaxRating

func NewRateOrderCommand(token string, score int, comment string) (RateOrderCommand, error) {
	token, err := validateToken(token)
	if err != nil {
		return RateOrderCommand{}, err
	}
	return RateOrderCommand{token: token, score: score, comment: comment, guard: guard.NewConstructorGuard()}, nil
}

func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

func (c RateOrderCommand) Token() string   { return c.token }
func (c RateOrderCommand) Score() int      { return c.score }
func (c RateOrderCommand) Comment() string { return c.comment }

type RepeatOrderCommand struct { //nolint:recvcheck //using for validation
	token string
	guard guard.ConstructorGuard
}

func NewRepeatOrderCommand(token string) (RepeatOrderCommand, error) {
	token, err := validateToken(token)
	if err != nil {
		return RepeatOrderCommand{}, err
	}
	return RepeatOrderCommand{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (c RepeatOrderCommand) Validate() error {
	return c.guard.Validate(ErrRepeatOrderCommandIsNotConstructed)
}

func (c RepeatOrderCommand) Token() string { return c.token }

type RequestCallbackCommand struct { //nolint:recvcheck //using for validation
	token string
	guard guard.ConstructorGuard
}

func NewRequestCallbackCommand(token string) (RequestCallbackCommand, error) {
	token, err := validateToken(token)
	if err != nil {
		return RequestCallbackCommand{}, err
	}
	return RequestCallbackCommand{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (c RequestCallbackCommand) Validate() error {
	return c.guard.Validate(ErrRequestCallbackCommandIsNotConstructed)
}

func (c RequestCallbackCommand) Token() string { return c.token }

type RequestAddressChangeCommand struct { //nolint:recvcheck //using for validation
	token   string
	address string
	comment string
	guard   guard.ConstructorGuard
}

func NewRequestAddressChangeCommand(token, address, comment string) (RequestAddressChangeCommand, error) {
	token, err := validateToken(token)
	if err != nil {
		return RequestAddressChangeCommand{}, err
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return RequestAddressChangeCommand{}, errs.NewValueIsRequiredError("address")
	}
	return RequestAddressChangeCommand{
		token:   token,
		address: address,
		comment: strings.TrimSpace(comment),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RequestAddressChangeCommand) Validate() error {
	return c.guard.Validate(ErrRequestAddressChangeCommandIsNotConstructed)
}

func (c RequestAddressChangeCommand) Token() string   { return c.token }
func (c RequestAddressChangeCommand) Address() string { return c.address }
func (c RequestAddressChangeCommand) Comment() string { return c.comment }
