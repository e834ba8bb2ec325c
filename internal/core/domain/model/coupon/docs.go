// Package coupon evaluates discount coupons.
//
// A coupon is valid at time T when it is active, T lies inside its optional
// [ValidFrom, ValidUntil] window and, when a usage limit is set, the usage
// counter is below it. CalculateDiscount is a pure function of the coupon,
// the subtotal and the clock; it always returns 0 <= discount <= subtotal.
package coupon
