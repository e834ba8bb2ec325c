package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrQuickOrderCommandIsNotConstructed = errors.New(
	"QuickOrderCommand must be created via NewQuickOrderCommand constructor",
)

// QuickOrderCommand captures the one-product phone form. Only the product and
// the phone are required; staff call the customer to confirm the rest.
type QuickOrderCommand struct { //nolint:recvcheck //using for validation
	productID int64
	name      string
	phone     string
	email     string
	user      *kernel.Identity

	guard guard.ConstructorGuard
}

// NewQuickOrderCommand validates the form. user is nil for anonymous callers.
func NewQuickOrderCommand(productID int64, name, phone, email string, user *kernel.Identity) (QuickOrderCommand, error) {
	cmd := QuickOrderCommand{
		name:  strings.TrimSpace(name),
		email: kernel.NormalizeEmail(email),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setPhone(phone),
		cmd.setUser(user),
	); err != nil {
		return QuickOrderCommand{}, err
	}

	return cmd, nil
}

func (c QuickOrderCommand) Validate() error {
	return c.guard.Validate(ErrQuickOrderCommandIsNotConstructed)
}

func (c QuickOrderCommand) ProductID() int64       { return c.productID }
func (c QuickOrderCommand) Name() string           { return c.name }
func (c QuickOrderCommand) Phone() string          { return c.phone }
func (c QuickOrderCommand) Email() string          { return c.email }
func (c QuickOrderCommand) User() *kernel.Identity { return c.user }

func (c *QuickOrderCommand) setProductID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("product_id")
	}
	c.productID = id
	return nil
}

func (c *QuickOrderCommand) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *QuickOrderCommand) setUser(user *kernel.Identity) error {
	if user == nil {
		return nil
	}
	if err := user.Validate(); err != nil {
		return err
	}
	if !user.IsUser() {
		return nil
	}
	c.user = user
	return nil
}
