// Package order provides the Order aggregate root of the storefront: customer
// and delivery data, item snapshots, money totals and the two lifecycles an
// order moves through.
//
// The package includes:
//   - Order: the aggregate root with its mutators and pending event/audit buffers
//   - Status and DeliveryStatus: fixed transition tables with shortest-path search
//   - PaymentMethod and PaymentStatus: values set at checkout and by the payment collaborator
//   - Item and Totals: immutable snapshots taken at checkout
//   - Event and AuditEntry: action-granular and field-granular trail records
//
// Key business rules:
//   - a transition to the current value is a no-op and records nothing
//   - an illegal transition returns a TransitionNotAllowedError and changes nothing
//   - each transition step records one status_changed or delivery_status_changed
//     event and one audit entry
//   - confirm and cancel leave terminal orders unchanged
//   - totals satisfy total == max(subtotal - discount + deliveryFee, 0)
package order
