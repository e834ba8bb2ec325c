package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned for orders built without NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

	ErrOrderIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Order is the aggregate root of the storefront. It owns its items and buffers
// the events and audit entries produced by every mutation until the repository
// persists them in the same transaction as the order row.
//
// Invariants:
//   - status and delivery status only move along their transition tables
//   - a rejected mutation leaves the order untouched
//   - every successful transition buffers exactly one event and one audit entry
//   - totals satisfy total == max(subtotal - discount + deliveryFee, 0)
type Order struct {
	id                int64
	owner             kernel.Identity
	customer          Customer
	savedAddressID    *int64
	items             []Item
	totals            Totals
	coupon            *AppliedCoupon
	status            Status
	deliveryStatus    DeliveryStatus
	deliveryRequested bool
	delivery          Delivery
	photo             *Photo
	gift              Gift
	payment           Payment
	rating            *Rating
	quickOrderPayload map[string]any
	addressChange     *AddressChange

	callMeRequestedAt           *time.Time
	lastStatusChangedAt         *time.Time
	lastDeliveryStatusChangedAt *time.Time
	createdAt                   time.Time
	updatedAt                   time.Time

	pendingEvents []Event
	pendingAudit  []AuditEntry
	isConstructed bool
}

// Draft carries everything needed to create an order.
type Draft struct {
	Owner           kernel.Identity
	Customer        Customer
	SavedAddressID  *int64
	DeliveryAddress string
	Items           []Item
	Totals          Totals
	Coupon          *AppliedCoupon
	Gift            Gift
	Payment         Payment
	// Status is created or processing; empty means created.
	Status Status
	// QuickOrderPayload marks the order as captured by the quick form.
	QuickOrderPayload map[string]any
}

// NewOrder validates a draft and returns an unsaved order with delivery status
// none and payment status pending. The id is assigned by the repository.
func NewOrder(d Draft, now time.Time) (*Order, error) {
	if d.Status == "" {
		d.Status = StatusCreated
	}

	customer := Customer{
		Name:    strings.TrimSpace(d.Customer.Name),
		Email:   kernel.NormalizeEmail(d.Customer.Email),
		Phone:   strings.TrimSpace(d.Customer.Phone),
		Address: strings.TrimSpace(d.Customer.Address),
	}

	var problems []error
	if err := d.Owner.Validate(); err != nil {
		problems = append(problems, err)
	}
	if d.Owner.IsGuest() || customer.Email == "" {
		customer.Email = d.Owner.Email()
	}
	if customer.Name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("customer name"))
	}
	if customer.Email == "" {
		problems = append(problems, errs.NewValueIsRequiredError("email"))
	}
	if customer.Address == "" {
		problems = append(problems, errs.NewValueIsRequiredError("address"))
	}
	if len(d.Items) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("items"))
	}
	if d.Status != StatusCreated && d.Status != StatusProcessing {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not an initial status", d.Status)))
	}
	method, err := ParsePaymentMethod(string(d.Payment.Method))
	if err != nil {
		problems = append(problems, err)
	}
	var subtotal kernel.Money
	for _, it := range d.Items {
		subtotal += it.LineTotal()
	}
	if len(d.Items) > 0 && subtotal != d.Totals.Subtotal() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("items sum to %d, totals say %d", subtotal, d.Totals.Subtotal())))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	deliveryAddress := strings.TrimSpace(d.DeliveryAddress)
	if deliveryAddress == "" {
		deliveryAddress = customer.Address
	}

	return &Order{
		owner:             d.Owner,
		customer:          customer,
		savedAddressID:    d.SavedAddressID,
		items:             append([]Item(nil), d.Items...),
		totals:            d.Totals,
		coupon:            d.Coupon,
		status:            d.Status,
		deliveryStatus:    DeliveryNone,
		delivery:          Delivery{Address: deliveryAddress},
		gift:              d.Gift,
		quickOrderPayload: d.QuickOrderPayload,
		payment: Payment{
			Method:    method,
			Status:    PaymentPending,
			Reference: d.Payment.Reference,
			Metadata:  d.Payment.Metadata,
		},
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignID is called once by the repository after the row is inserted.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrOrderIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) ID() int64                         { return o.id }
func (o *Order) Owner() kernel.Identity            { return o.owner }
func (o *Order) Customer() Customer                { return o.customer }
func (o *Order) SavedAddressID() *int64            { return o.savedAddressID }
func (o *Order) Items() []Item                     { return append([]Item(nil), o.items...) }
func (o *Order) Totals() Totals                    { return o.totals }
func (o *Order) Coupon() *AppliedCoupon            { return o.coupon }
func (o *Order) Status() Status                    { return o.status }
func (o *Order) DeliveryStatus() DeliveryStatus    { return o.deliveryStatus }
func (o *Order) DeliveryRequested() bool           { return o.deliveryRequested }
func (o *Order) Delivery() Delivery                { return o.delivery }
func (o *Order) Photo() *Photo                     { return o.photo }
func (o *Order) Gift() Gift                        { return o.gift }
func (o *Order) Payment() Payment                  { return o.payment }
func (o *Order) Rating() *Rating                   { return o.rating }
func (o *Order) IsQuickOrder() bool                { return o.quickOrderPayload != nil }
func (o *Order) AddressChange() *AddressChange     { return o.addressChange }
func (o *Order) CallMeRequestedAt() *time.Time     { return o.callMeRequestedAt }
func (o *Order) LastStatusChangedAt() *time.Time   { return o.lastStatusChangedAt }
func (o *Order) LastDeliveryChangedAt() *time.Time { return o.lastDeliveryStatusChangedAt }
func (o *Order) CreatedAt() time.Time              { return o.createdAt }
func (o *Order) UpdatedAt() time.Time              { return o.updatedAt }
func (o *Order) PendingEvents() []Event            { return append([]Event(nil), o.pendingEvents...) }
func (o *Order) PendingAudit() []AuditEntry        { return append([]AuditEntry(nil), o.pendingAudit...) }
func (o *Order) QuickOrderPayload() map[string]any { return o.quickOrderPayload }

// ClearPending drops buffered records once they are persisted.
func (o *Order) ClearPending() {
	o.pendingEvents = nil
	o.pendingAudit = nil
}

// RecordEvent buffers an action-level event that is not tied to a field change,
// such as the creation of the order.
func (o *Order) RecordEvent(kind EventKind, payload map[string]any, by Origin) {
	if payload == nil {
		payload = map[string]any{}
	}
	o.pendingEvents = append(o.pendingEvents, Event{
		Kind:      kind,
		Payload:   payload,
		Actor:     by.Actor,
		Source:    by.Source,
		CreatedAt: by.At,
	})
	o.touch(by.At)
}

// ChangeStatus performs a single transition. A no-op returns false and writes nothing.
func (o *Order) ChangeStatus(target Status, by Origin) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if !o.status.CanTransitionTo(target) {
		return false, errs.NewTransitionNotAllowedError("status", o.status.String(), target.String())
	}
	if target == o.status {
		return false, nil
	}
	o.applyStatus(target, by)
	return true, nil
}

// ChangeDeliveryStatus performs a single delivery transition.
func (o *Order) ChangeDeliveryStatus(target DeliveryStatus, by Origin) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if !o.deliveryStatus.CanTransitionTo(target) {
		return false, errs.NewTransitionNotAllowedError("delivery_status",
			o.deliveryStatus.String(), target.String())
	}
	if target == o.deliveryStatus {
		return false, nil
	}
	o.applyDeliveryStatus(target, by)
	return true, nil
}

// AdvanceStatus walks the shortest legal path to target, one transition per step.
func (o *Order) AdvanceStatus(target Status, by Origin) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	path, ok := o.status.Path(target)
	if !ok {
		return false, errs.NewTransitionNotAllowedError("status", o.status.String(), target.String())
	}
	for _, step := range path {
		o.applyStatus(step, by)
	}
	return len(path) > 0, nil
}

// AdvanceDeliveryStatus walks the shortest legal delivery path to target.
func (o *Order) AdvanceDeliveryStatus(target DeliveryStatus, by Origin) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	path, ok := o.deliveryStatus.Path(target)
	if !ok {
		return false, errs.NewTransitionNotAllowedError("delivery_status",
			o.deliveryStatus.String(), target.String())
	}
	for _, step := range path {
		o.applyDeliveryStatus(step, by)
	}
	return len(path) > 0, nil
}

// RequestDelivery schedules the delivery and moves the order to delivering.
// Both lifecycles must be able to reach their targets or nothing changes.
func (o *Order) RequestDelivery(req DeliveryRequest, by Origin) error {
	statusPath, ok := o.status.Path(StatusDelivering)
	if !ok {
		return errs.NewTransitionNotAllowedError("status", o.status.String(), StatusDelivering.String())
	}
	deliveryPath, ok := o.deliveryStatus.Path(DeliveryScheduled)
	if !ok {
		return errs.NewTransitionNotAllowedError("delivery_status",
			o.deliveryStatus.String(), DeliveryScheduled.String())
	}

	slot := strings.TrimSpace(req.Slot)
	when := req.DateTime
	if when == nil && req.Day != nil && slot != "" {
		resolved, err := SlotStart(*req.Day, slot)
		if err != nil {
			return err
		}
		when = &resolved
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		address = o.delivery.Address
	}
	if address == "" {
		address = o.customer.Address
	}

	for _, step := range statusPath {
		o.applyStatus(step, by)
	}
	for _, step := range deliveryPath {
		o.applyDeliveryStatus(step, by)
	}

	next := Delivery{
		Address:  address,
		DateTime: when,
		Day:      req.Day,
		Slot:     slot,
		Comment:  strings.TrimSpace(req.Comment),
	}
	o.auditIfChanged("delivery_address", o.delivery.Address, next.Address, by)
	o.auditIfChanged("delivery_datetime", auditValue(o.delivery.DateTime), auditValue(next.DateTime), by)
	o.auditIfChanged("delivery_slot", o.delivery.Slot, next.Slot, by)
	o.auditIfChanged("delivery_comment", o.delivery.Comment, next.Comment, by)
	o.delivery = next
	o.deliveryRequested = true

	o.RecordEvent(EventDeliveryRequested, map[string]any{
		"address": next.Address,
		"slot":    next.Slot,
	}, by)
	return nil
}

// ConfirmReceipt completes the order and marks it delivered. Fields already in
// a terminal state are left as they are, so repeating the call is a no-op.
// A canceled order is not touched.
func (o *Order) ConfirmReceipt(by Origin) bool {
	if o.status == StatusCanceled {
		return false
	}

	changed := false
	if path, ok := o.status.Path(StatusCompleted); ok {
		for _, step := range path {
			o.applyStatus(step, by)
			changed = true
		}
	}
	if !o.deliveryStatus.IsTerminal() {
		if path, ok := o.deliveryStatus.Path(DeliveryDelivered); ok {
			for _, step := range path {
				o.applyDeliveryStatus(step, by)
				changed = true
			}
		}
	}
	return changed
}

// Cancel moves a non-terminal order to canceled. The delivery moves to failed
// only when that is a direct legal step. Canceling a terminal order is a no-op.
func (o *Order) Cancel(by Origin) bool {
	if o.status.IsTerminal() {
		return false
	}
	o.applyStatus(StatusCanceled, by)
	if o.deliveryStatus != DeliveryFailed && o.deliveryStatus.CanTransitionTo(DeliveryFailed) {
		o.applyDeliveryStatus(DeliveryFailed, by)
	}
	return true
}

// Rate records the latest score and comment. Score is clamped to 1..5 and the
// comment is trimmed to 300 characters. Every call records an event.
func (o *Order) Rate(score int, comment string, by Origin) Rating {
	score = max(MinRating, min(MaxRating, score))
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > MaxRatingCommentRune {
		comment = string([]rune(comment)[:MaxRatingCommentRune])
	}

	var oldScore, oldComment string
	if o.rating != nil {
		oldScore, oldComment = fmt.Sprint(o.rating.Score), o.rating.Comment
	}
	o.auditIfChanged("rating", oldScore, fmt.Sprint(score), by)
	o.auditIfChanged("rating_comment", oldComment, comment, by)

	o.rating = &Rating{Score: score, Comment: comment}
	o.RecordEvent(EventRated, map[string]any{"score": score, "comment": comment}, by)
	return *o.rating
}

func (o *Order) RequestCallback(by Origin) {
	at := by.At
	o.audit("call_me_requested_at", auditValue(o.callMeRequestedAt), auditValue(at), by)
	o.callMeRequestedAt = &at
	o.RecordEvent(EventCallMe, map[string]any{"source": string(by.Source)}, by)
}

// RequestAddressChange stores a customer's request; staff apply it manually.
func (o *Order) RequestAddressChange(address, comment string, by Origin) error {
	address = strings.TrimSpace(address)
	comment = strings.TrimSpace(comment)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	old := ""
	if o.addressChange != nil {
		old = o.addressChange.Address
	}
	o.audit("address_change_payload", old, address, by)
	o.addressChange = &AddressChange{Address: address, Comment: comment, RequestedAt: by.At}
	o.RecordEvent(EventAddressChangeRequested, map[string]any{
		"address": address,
		"comment": comment,
	}, by)
	return nil
}

// AttachDeliveryPhoto stores the courier's photo reference and moves a
// non-terminal delivery toward delivered.
func (o *Order) AttachDeliveryPhoto(path string, by Origin) error {
	if strings.TrimSpace(path) == "" {
		return errs.NewValueIsRequiredError("photo")
	}

	if !o.deliveryStatus.IsTerminal() {
		steps, _ := o.deliveryStatus.Path(DeliveryDelivered)
		for _, step := range steps {
			o.applyDeliveryStatus(step, by)
		}
	}

	old := ""
	if o.photo != nil {
		old = o.photo.Path
	}
	o.audit("delivery_photo", old, path, by)
	o.photo = &Photo{Path: path, UploadedAt: by.At}
	o.RecordEvent(EventDeliveryPhotoUploaded, map[string]any{"from": "courier"}, by)
	return nil
}

// SetPaymentStatus applies a status reported by the payment collaborator.
// Re-applying the current status is a no-op.
func (o *Order) SetPaymentStatus(target PaymentStatus, by Origin) (bool, error) {
	if _, err := ParsePaymentStatus(string(target)); err != nil {
		return false, err
	}
	if !o.payment.Status.CanTransitionTo(target) {
		return false, errs.NewTransitionNotAllowedError("payment_status",
			o.payment.Status.String(), target.String())
	}
	if target == o.payment.Status {
		return false, nil
	}

	from := o.payment.Status
	o.payment.Status = target
	o.audit("payment_status", from.String(), target.String(), by)
	o.RecordEvent(EventPaymentStatusChanged, map[string]any{"from": string(from), "to": string(target)}, by)
	return true, nil
}

// RepeatDraft clones the customer, address, gift, payment method, money and
// item snapshots into a draft for a new order. Prices are not re-fetched.
func (o *Order) RepeatDraft() Draft {
	return Draft{
		Owner:           o.owner,
		Customer:        o.customer,
		DeliveryAddress: o.delivery.Address,
		Items:           append([]Item(nil), o.items...),
		Totals:          o.totals,
		Gift:            o.gift,
		Payment:         Payment{Method: o.payment.Method},
		Status:          StatusCreated,
	}
}

func (o *Order) applyStatus(target Status, by Origin) {
	from := o.status
	at := by.At
	o.status = target
	o.lastStatusChangedAt = &at
	o.audit("status", from.String(), target.String(), by)
	o.RecordEvent(EventStatusChanged, map[string]any{"from": string(from), "to": string(target)}, by)
}

func (o *Order) applyDeliveryStatus(target DeliveryStatus, by Origin) {
	from := o.deliveryStatus
	at := by.At
	o.deliveryStatus = target
	o.lastDeliveryStatusChangedAt = &at
	o.audit("delivery_status", from.String(), target.String(), by)
	o.RecordEvent(EventDeliveryStatusChanged, map[string]any{"from": string(from), "to": string(target)}, by)
}

func (o *Order) audit(field, oldValue, newValue string, by Origin) {
	o.pendingAudit = append(o.pendingAudit, AuditEntry{
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		Actor:     by.Actor,
		Notes:     by.Notes,
		CreatedAt: by.At,
	})
	o.touch(by.At)
}

func (o *Order) auditIfChanged(field, oldValue, newValue string, by Origin) {
	if oldValue != newValue {
		o.audit(field, oldValue, newValue, by)
	}
}

func (o *Order) touch(at time.Time) {
	if at.After(o.updatedAt) {
		o.updatedAt = at
	}
}
