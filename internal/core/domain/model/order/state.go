package order

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// State is the flat, persistable form of an Order. It carries no pending records.
type State struct {
	ID                          int64
	Owner                       kernel.Identity
	Customer                    Customer
	SavedAddressID              *int64
	Items                       []Item
	Totals                      Totals
	Coupon                      *AppliedCoupon
	Status                      Status
	DeliveryStatus              DeliveryStatus
	DeliveryRequested           bool
	Delivery                    Delivery
	Photo                       *Photo
	Gift                        Gift
	Payment                     Payment
	Rating                      *Rating
	QuickOrder                  bool
	QuickOrderPayload           map[string]any
	AddressChange               *AddressChange
	CallMeRequestedAt           *time.Time
	LastStatusChangedAt         *time.Time
	LastDeliveryStatusChangedAt *time.Time
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(s State) (*Order, error) {
	if err := errors.Join(
		s.Owner.Validate(),
		s.Status.Validate(),
		s.DeliveryStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if _, err := ParsePaymentStatus(string(s.Payment.Status)); err != nil {
		return nil, err
	}

	payload := s.QuickOrderPayload
	if s.QuickOrder && payload == nil {
		payload = map[string]any{}
	}
	if !s.QuickOrder {
		payload = nil
	}

	return &Order{
		id:                          s.ID,
		owner:                       s.Owner,
		customer:                    s.Customer,
		savedAddressID:              s.SavedAddressID,
		items:                       append([]Item(nil), s.Items...),
		totals:                      s.Totals,
		coupon:                      s.Coupon,
		status:                      s.Status,
		deliveryStatus:              s.DeliveryStatus,
		deliveryRequested:           s.DeliveryRequested,
		delivery:                    s.Delivery,
		photo:                       s.Photo,
		gift:                        s.Gift,
		payment:                     s.Payment,
		rating:                      s.Rating,
		quickOrderPayload:           payload,
		addressChange:               s.AddressChange,
		callMeRequestedAt:           s.CallMeRequestedAt,
		lastStatusChangedAt:         s.LastStatusChangedAt,
		lastDeliveryStatusChangedAt: s.LastDeliveryStatusChangedAt,
		createdAt:                   s.CreatedAt,
		updatedAt:                   s.UpdatedAt,
		isConstructed:               true,
	}, nil
}

// State snapshots the order for persistence.
func (o *Order) State() State {
	return State{
		ID:                          o.id,
		Owner:                       o.owner,
		Customer:                    o.customer,
		SavedAddressID:              o.savedAddressID,
		Items:                       append([]Item(nil), o.items...),
		Totals:                      o.totals,
		Coupon:                      o.coupon,
		Status:                      o.status,
		DeliveryStatus:              o.deliveryStatus,
		DeliveryRequested:           o.deliveryRequested,
		Delivery:                    o.delivery,
		Photo:                       o.photo,
		Gift:                        o.gift,
		Payment:                     o.payment,
		Rating:                      o.rating,
		QuickOrder:                  o.quickOrderPayload != nil,
		QuickOrderPayload:           o.quickOrderPayload,
		AddressChange:               o.addressChange,
		CallMeRequestedAt:           o.callMeRequestedAt,
		LastStatusChangedAt:         o.lastStatusChangedAt,
		LastDeliveryStatusChangedAt: o.lastDeliveryStatusChangedAt,
		CreatedAt:                   o.createdAt,
		UpdatedAt:                   o.updatedAt,
	}
}
