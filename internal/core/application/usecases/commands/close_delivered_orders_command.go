package commands

import (
	"errors"
	"time"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCloseDeliveredOrdersCommandIsNotConstructed = errors.New(
	"CloseDeliveredOrdersCommand must be created via NewCloseDeliveredOrdersCommand constructor",
)

// CloseDeliveredOrdersCommand completes orders that were delivered but never
// confirmed by the customer.
type CloseDeliveredOrdersCommand struct { //nolint:recvcheck //using for validation
	idleFor   time.Duration
	batchSize int
	guard     guard.ConstructorGuard
}

func NewCloseDeliveredOrdersCommand(idleFor time.Duration, batchSize int) (CloseDeliveredOrdersCommand, error) {
	var problems []error
	if idleFor <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("idle for", idleFor, "1ns", "unbounded"))
	}
	if batchSize <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded"))
	}
	if err := errors.Join(problems...); err != nil {
		return CloseDeliveredOrdersCommand{}, err
	}
	return CloseDeliveredOrdersCommand{idleFor: idleFor, batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCloseDeliveredOrdersCommandIsNotConstructed)
}

func (c CloseDeliveredOrdersCommand) IdleFor() time.Duration { return c.idleFor }
func (c CloseDeliveredOrdersCommand) BatchSize() int         { return c.batchSize }
