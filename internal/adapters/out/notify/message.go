package notify

import (
	"fmt"
	"html"
	"strings"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// keyboardStatuses are the targets after which staff still need the action links.
var keyboardStatuses = map[string]bool{
	order.StatusProcessing.String():       true,
	order.StatusDelivering.String():       true,
	order.DeliveryScheduled.String():      true,
	order.DeliveryOutForDelivery.String(): true,
}

// Render builds the HTML text of a staff message and reports whether the
// order action keyboard goes with it.
func Render(n ports.Notification) (string, bool) {
	o := n.Order
	var b strings.Builder

	switch n.Kind {
	case ports.NotificationOrderCreated:
		title := "New order"
		if o.QuickOrder {
			title = "Quick order"
		}
		fmt.Fprintf(&b, "🌸 <b>%s #%d</b>\n", title, o.ID)
		fmt.Fprintf(&b, "Customer: %s\n", esc(o.Customer.Name))
		if o.Customer.Phone != "" {
			fmt.Fprintf(&b, "Phone: %s\n", esc(o.Customer.Phone))
		}
		fmt.Fprintf(&b, "Email: %s\n", esc(o.Customer.Email))
		fmt.Fprintf(&b, "Address: %s\n", esc(o.Customer.Address))
		if o.Coupon != nil {
			fmt.Fprintf(&b, "Coupon: %s (−%s)\n", esc(o.Coupon.Code), o.Totals.Discount())
		}
		if o.Gift.IsGift {
			fmt.Fprintf(&b, "🎁 Gift for %s\n", esc(o.Gift.RecipientName))
		}
		fmt.Fprintf(&b, "Total: <b>%s</b>", o.Totals.Total())
		if lines := itemLines(o.Items); lines != "" {
			b.WriteString("\n\n" + lines)
		}
		return b.String(), true

	case ports.NotificationDeliveryRequested:
		fmt.Fprintf(&b, "🚚 <b>Delivery scheduled #%d</b>\n", o.ID)
		fmt.Fprintf(&b, "Address: %s\n", esc(deliveryAddress(o)))
		fmt.Fprintf(&b, "When: %s\n", esc(deliveryWhen(o.Delivery)))
		fmt.Fprintf(&b, "Comment: %s\n", esc(orDefault(o.Delivery.Comment, "none")))
		fmt.Fprintf(&b, "Delivery status: <b>%s</b>", o.DeliveryStatus)
		return b.String(), true

	case ports.NotificationStatusChanged:
		fmt.Fprintf(&b, "🔔 <b>Order #%d status updated</b>\n", o.ID)
		fmt.Fprintf(&b, "%s → <b>%s</b>\n", esc(n.From), esc(n.To))
		fmt.Fprintf(&b, "Total: %s", o.Totals.Total())
		return b.String(), keyboardStatuses[n.To]

	case ports.NotificationDeliveryStatusChanged:
		fmt.Fprintf(&b, "📦 <b>Delivery of order #%d</b>\n", o.ID)
		fmt.Fprintf(&b, "%s → <b>%s</b>", esc(n.From), esc(n.To))
		return b.String(), keyboardStatuses[n.To]

	case ports.NotificationOrderRated:
		score := 0
		comment := ""
		if o.Rating != nil {
			score, comment = o.Rating.Score, o.Rating.Comment
		}
		fmt.Fprintf(&b, "📝 <b>Order #%d rated</b>\n", o.ID)
		fmt.Fprintf(&b, "Rating: %s\n", Stars(score))
		fmt.Fprintf(&b, "Comment: %s", esc(orDefault(comment, "no comment")))
		return b.String(), false
	}

	fmt.Fprintf(&b, "Order #%d: %s", o.ID, n.Kind)
	return b.String(), false
}

// Stars renders a 1..5 score as filled and empty stars.
func Stars(score int) string {
	score = max(0, min(score, order.MaxRating))
	return strings.Repeat("⭐", score) + strings.Repeat("☆", order.MaxRating-score)
}

func itemLines(items []order.Item) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("• <b>%s</b> × %d — %s", esc(it.Name()), it.Qty(), it.LineTotal()))
	}
	return strings.Join(lines, "\n")
}

func deliveryAddress(o order.State) string {
	if o.Delivery.Address != "" {
		return o.Delivery.Address
	}
	return o.Customer.Address
}

func deliveryWhen(d order.Delivery) string {
	switch {
	case d.DateTime != nil:
		return d.DateTime.Format("02.01.2006 15:04")
	case d.Slot != "":
		return d.Slot
	default:
		return "to be agreed"
	}
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func esc(s string) string {
	return html.EscapeString(s)
}
