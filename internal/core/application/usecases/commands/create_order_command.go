package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one requested product and quantity.
type OrderLine struct {
	ProductID int64
	Qty       int
}

// CreateOrderParams is the raw checkout input.
type CreateOrderParams struct {
	Owner           kernel.Identity
	Customer        order.Customer
	DeliveryAddress string
	Lines           []OrderLine
	SavedAddressID  *int64
	UseSavedAddress bool
	CouponCode      string
	Gift            order.Gift
	PaymentMethod   string
}

// CreateOrderCommand is a validated checkout request.
//
// Example:
//
//	owner, _ := kernel.NewGuestIdentity("aru@example.com")
//	cmd, err := NewCreateOrderCommand(CreateOrderParams{
//	    Owner:      owner,
//	    Customer:   order.Customer{Name: "Aru", Phone: "+77010000000", Address: "Abay 10"},
//	    Lines:      []OrderLine{{ProductID: 1, Qty: 2}},
//	    CouponCode: "love10",
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	owner           kernel.Identity
	customer        order.Customer
	deliveryAddress string
	lines           []OrderLine
	savedAddressID  *int64
	useSavedAddress bool
	couponCode      string
	gift            order.Gift
	paymentMethod   order.PaymentMethod

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(p CreateOrderParams) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customer:        p.Customer,
		deliveryAddress: strings.TrimSpace(p.DeliveryAddress),
		savedAddressID:  p.SavedAddressID,
		useSavedAddress: p.UseSavedAddress,
		couponCode:      strings.TrimSpace(p.CouponCode),
		gift:            p.Gift,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(p.Owner),
		cmd.setLines(p.Lines),
		cmd.setAddress(p.Customer.Address, p.SavedAddressID),
		cmd.setPaymentMethod(p.PaymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if strings.TrimSpace(p.Customer.Name) == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("customer name")
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Owner() kernel.Identity             { return c.owner }
func (c CreateOrderCommand) Customer() order.Customer           { return c.customer }
func (c CreateOrderCommand) DeliveryAddress() string            { return c.deliveryAddress }
func (c CreateOrderCommand) Lines() []OrderLine                 { return append([]OrderLine(nil), c.lines...) }
func (c CreateOrderCommand) SavedAddressID() *int64             { return c.savedAddressID }
func (c CreateOrderCommand) UseSavedAddress() bool              { return c.useSavedAddress }
func (c CreateOrderCommand) CouponCode() string                 { return c.couponCode }
func (c CreateOrderCommand) Gift() order.Gift                   { return c.gift }
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }

func (c *CreateOrderCommand) setOwner(owner kernel.Identity) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	c.owner = owner
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	var problems []error
	for _, l := range lines {
		if l.ProductID <= 0 {
			problems = append(problems, errs.NewValueIsInvalidError("product_id"))
		}
		if l.Qty < 1 {
			problems = append(problems, errs.NewValueIsOutOfRangeError("qty", l.Qty, 1, "unbounded"))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	c.lines = append([]OrderLine(nil), lines...)
	return nil
}

func (c *CreateOrderCommand) setAddress(address string, savedAddressID *int64) error {
	if strings.TrimSpace(address) == "" && savedAddressID == nil {
		return errs.NewValueIsRequiredError("address")
	}
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(raw string) error {
	method, err := order.ParsePaymentMethod(raw)
	if err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}
