package order

import (
	"fmt"
	"strings"
	"time"

	"storefront/internal/pkg/errs"
)

// Window is a delivery time range within a day, in "HH:MM" local time.
type Window struct {
	Start string
	End   string
}

func (w Window) String() string {
	return w.Start + "-" + w.End
}

// DeliveryWindows are the slots offered to customers every day.
var DeliveryWindows = []Window{
	{"10:00", "12:00"},
	{"12:00", "14:00"},
	{"14:00", "16:00"},
	{"16:00", "18:00"},
	{"18:00", "20:00"},
}

// SlotStart resolves a day and a "HH:MM-HH:MM" slot to the slot's start time
// in the day's location.
func SlotStart(day time.Time, slot string) (time.Time, error) {
	start, _, _ := strings.Cut(slot, "-")
	clock, err := time.Parse("15:04", strings.TrimSpace(start))
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("delivery_slot",
			fmt.Errorf("%q has no HH:MM start: %w", slot, err))
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, day.Location()), nil
}
