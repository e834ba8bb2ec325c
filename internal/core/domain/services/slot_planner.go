package services

import (
	"time"

	"storefront/internal/core/domain/model/order"
)

// Slot is one bookable delivery window on a given day.
type Slot struct {
	Day      time.Time
	DayLabel string
	Window   order.Window
	Start    time.Time
}

// Value is the "YYYY-MM-DD|HH:MM-HH:MM" form the storefront posts back.
func (s Slot) Value() string {
	return s.Day.Format(time.DateOnly) + "|" + s.Window.String()
}

// SlotPlanner lists delivery windows for today and tomorrow, skipping windows
// that have already started.
type SlotPlanner struct {
	windows  []order.Window
	days     int
	location *time.Location
}

func NewSlotPlanner(location *time.Location) SlotPlanner {
	if location == nil {
		location = time.UTC
	}
	return SlotPlanner{windows: order.DeliveryWindows, days: 2, location: location}
}

func (p SlotPlanner) Slots(now time.Time) []Slot {
	now = now.In(p.location)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, p.location)

	var slots []Slot
	for offset := range p.days {
		day := today.AddDate(0, 0, offset)
		label := "Tomorrow"
		if offset == 0 {
			label = "Today"
		}
		for _, w := range p.windows {
			start, err := order.SlotStart(day, w.String())
			if err != nil || start.Before(now) {
				continue
			}
			slots = append(slots, Slot{Day: day, DayLabel: label, Window: w, Start: start})
		}
	}
	return slots
}
