package order

import (
	"time"
)

type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type Gift struct {
	IsGift         bool
	RecipientName  string
	RecipientPhone string
	Message        string
	CardSignature  string
}

// Delivery holds the scheduling data set by a delivery request.
type Delivery struct {
	Address  string
	DateTime *time.Time
	Day      *time.Time
	Slot     string
	Comment  string
}

// DeliveryRequest is the input of RequestDelivery. Either DateTime or the
// Day+Slot pair may be given; the slot start time is used when DateTime is nil.
type DeliveryRequest struct {
	Address  string
	DateTime *time.Time
	Day      *time.Time
	Slot     string
	Comment  string
}

type Photo struct {
	Path       string
	UploadedAt time.Time
}

// CouponSnapshot freezes the coupon terms applied at creation time.
type CouponSnapshot struct {
	Type  string `json:"type"`
	Value int64  `json:"value"`
}

type AppliedCoupon struct {
	ID       *int64
	Code     string
	Snapshot CouponSnapshot
}

type Rating struct {
	Score   int
	Comment string
}

type AddressChange struct {
	Address     string
	Comment     string
	RequestedAt time.Time
}

// QuickOrderAddress is stored on orders captured by the phone form.
const QuickOrderAddress = "Quick order (call to confirm)"

const (
	MinRating            = 1
	MaxRating            = 5
	MaxRatingCommentRune = 300
)
