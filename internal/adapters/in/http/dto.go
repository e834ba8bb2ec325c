package http

import (
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/order"
)

const dayLayout = "2006-01-02"

type OrderLineRequest struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

type GiftRequest struct {
	IsGift         bool   `json:"is_gift"`
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`
	Message        string `json:"message"`
	CardSignature  string `json:"card_signature"`
}

type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone"`
	Address         string             `json:"address"`
	DeliveryAddress string             `json:"delivery_address"`
	Items           []OrderLineRequest `json:"items"`
	SavedAddressID  *int64             `json:"saved_address_id"`
	UseSavedAddress bool               `json:"use_saved_address"`
	CouponCode      string             `json:"coupon_code"`
	Gift            GiftRequest        `json:"gift"`
	PaymentMethod   string             `json:"payment_method"`
}

type QuickOrderRequest struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type StatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type BulkStatusRequest struct {
	IDs            []int64 `json:"ids"`
	Status         string  `json:"status"`
	DeliveryStatus string  `json:"delivery_status"`
}

type BulkStatusResponse struct {
	Changed   []int64          `json:"changed"`
	Unchanged []int64          `json:"unchanged"`
	Failed    map[int64]string `json:"failed"`
}

type RequestDeliveryRequest struct {
	DeliveryAddress  string     `json:"delivery_address"`
	DeliveryDateTime *time.Time `json:"delivery_datetime"`
	DeliveryDay      string     `json:"delivery_day"`
	DeliverySlot     string     `json:"delivery_slot"`
	DeliveryComment  string     `json:"delivery_comment"`
}

type PaymentStatusRequest struct {
	OrderID   int64  `json:"order_id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type CouponQuoteRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

type CouponQuoteResponse struct {
	Code     string                `json:"code"`
	Found    bool                  `json:"found"`
	Valid    bool                  `json:"valid"`
	Expired  bool                  `json:"expired"`
	Reason   string                `json:"reason,omitempty"`
	Discount int64                 `json:"discount"`
	Snapshot *order.CouponSnapshot `json:"snapshot,omitempty"`
}

type SavedAddressRequest struct {
	Label     string   `json:"label"`
	Address   string   `json:"address"`
	Entrance  string   `json:"entrance"`
	Floor     string   `json:"floor"`
	Apartment string   `json:"apartment"`
	Intercom  string   `json:"intercom"`
	Comment   string   `json:"comment"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsDefault bool     `json:"is_default"`
}

type SavedAddressResponse struct {
	ID        int64    `json:"id"`
	Label     string   `json:"label"`
	Address   string   `json:"address"`
	Entrance  string   `json:"entrance"`
	Floor     string   `json:"floor"`
	Apartment string   `json:"apartment"`
	Intercom  string   `json:"intercom"`
	Comment   string   `json:"comment"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsDefault bool     `json:"is_default"`
}

type DeliverySlotResponse struct {
	Value    string    `json:"value"`
	Day      string    `json:"day"`
	DayLabel string    `json:"day_label"`
	Window   string    `json:"window"`
	StartsAt time.Time `json:"starts_at"`
}

type OrderSummaryResponse struct {
	ID             int64     `json:"id"`
	Status         string    `json:"status"`
	DeliveryStatus string    `json:"delivery_status"`
	PaymentStatus  string    `json:"payment_status"`
	Total          int64     `json:"total"`
	TotalDisplay   string    `json:"total_display"`
	ItemCount      int       `json:"item_count"`
	CouponCode     string    `json:"coupon_code,omitempty"`
	IsGift         bool      `json:"is_gift"`
	CreatedAt      time.Time `json:"created_at"`
}

type OrderItemResponse struct {
	ProductID       int64  `json:"product_id"`
	ProductName     string `json:"product_name"`
	ProductCategory string `json:"product_category"`
	ProductImageURL string `json:"product_image_url"`
	PriceAtPurchase int64  `json:"price_at_purchase"`
	Qty             int    `json:"qty"`
	LineTotal       int64  `json:"line_total"`
}

type DeliveryResponse struct {
	Requested       bool       `json:"requested"`
	Address         string     `json:"address"`
	DateTime        *time.Time `json:"datetime"`
	Day             string     `json:"day,omitempty"`
	Slot            string     `json:"slot,omitempty"`
	Comment         string     `json:"comment,omitempty"`
	PhotoURL        string     `json:"photo_url,omitempty"`
	PhotoUploadedAt *time.Time `json:"photo_uploaded_at,omitempty"`
}

type OrderResponse struct {
	ID                int64                 `json:"id"`
	Status            string                `json:"status"`
	DeliveryStatus    string                `json:"delivery_status"`
	PaymentMethod     string                `json:"payment_method"`
	PaymentStatus     string                `json:"payment_status"`
	CustomerName      string                `json:"customer_name"`
	Email             string                `json:"email"`
	Phone             string                `json:"phone"`
	Address           string                `json:"address"`
	Items             []OrderItemResponse   `json:"items"`
	Subtotal          int64                 `json:"subtotal"`
	DiscountAmount    int64                 `json:"discount_amount"`
	DeliveryFee       int64                 `json:"delivery_fee"`
	Total             int64                 `json:"total"`
	TotalDisplay      string                `json:"total_display"`
	CouponCode        string                `json:"coupon_code,omitempty"`
	CouponSnapshot    *order.CouponSnapshot `json:"coupon_snapshot,omitempty"`
	Gift              *GiftRequest          `json:"gift,omitempty"`
	Delivery          DeliveryResponse      `json:"delivery"`
	Rating            *int                  `json:"rating"`
	RatingComment     string                `json:"rating_comment,omitempty"`
	QuickOrder        bool                  `json:"quick_order"`
	CallMeRequestedAt *time.Time            `json:"call_me_requested_at,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

func (r CreateOrderRequest) params() commands.CreateOrderParams {
	lines := make([]commands.OrderLine, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, commands.OrderLine{ProductID: it.ProductID, Qty: it.Qty})
	}
	return commands.CreateOrderParams{
		Customer: order.Customer{
			Name:    r.CustomerName,
			Email:   r.Email,
			Phone:   r.Phone,
			Address: r.Address,
		},
		DeliveryAddress: r.DeliveryAddress,
		Lines:           lines,
		SavedAddressID:  r.SavedAddressID,
		UseSavedAddress: r.UseSavedAddress,
		CouponCode:      r.CouponCode,
		Gift:            order.Gift(r.Gift),
		PaymentMethod:   r.PaymentMethod,
	}
}

func (s *Server) toOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItemResponse{
			ProductID:       it.ProductID(),
			ProductName:     it.Name(),
			ProductCategory: it.Category(),
			ProductImageURL: it.ImageURL(),
			PriceAtPurchase: it.PriceAtPurchase().Int64(),
			Qty:             it.Qty(),
			LineTotal:       it.LineTotal().Int64(),
		})
	}

	customer := o.Customer()
	totals := o.Totals()
	resp := OrderResponse{
		ID:                o.ID(),
		Status:            o.Status().String(),
		DeliveryStatus:    o.DeliveryStatus().String(),
		PaymentMethod:     string(o.Payment().Method),
		PaymentStatus:     o.Payment().Status.String(),
		CustomerName:      customer.Name,
		Email:             customer.Email,
		Phone:             customer.Phone,
		Address:           customer.Address,
		Items:             items,
		Subtotal:          totals.Subtotal().Int64(),
		DiscountAmount:    totals.Discount().Int64(),
		DeliveryFee:       totals.DeliveryFee().Int64(),
		Total:             totals.Total().Int64(),
		TotalDisplay:      totals.Total().String(),
		QuickOrder:        o.IsQuickOrder(),
		CallMeRequestedAt: o.CallMeRequestedAt(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
	if c := o.Coupon(); c != nil {
		snapshot := c.Snapshot
		resp.CouponCode = c.Code
		resp.CouponSnapshot = &snapshot
	}
	if g := o.Gift(); g.IsGift {
		gift := GiftRequest(g)
		resp.Gift = &gift
	}
	if r := o.Rating(); r != nil {
		score := r.Score
		resp.Rating = &score
		resp.RatingComment = r.Comment
	}

	d := o.Delivery()
	resp.Delivery = DeliveryResponse{
		Requested: o.DeliveryRequested(),
		Address:   d.Address,
		DateTime:  d.DateTime,
		Slot:      d.Slot,
		Comment:   d.Comment,
	}
	if d.Day != nil {
		resp.Delivery.Day = d.Day.Format(dayLayout)
	}
	if p := o.Photo(); p != nil {
		uploadedAt := p.UploadedAt
		resp.Delivery.PhotoURL = s.mediaURL + p.Path
		resp.Delivery.PhotoUploadedAt = &uploadedAt
	}
	return resp
}

func toOrderSummaries(rows []queries.ListOrdersQueryResponse) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, OrderSummaryResponse{
			ID:             r.ID,
			Status:         r.Status,
			DeliveryStatus: r.DeliveryStatus,
			PaymentStatus:  r.PaymentStatus,
			Total:          r.Total.Int64(),
			TotalDisplay:   r.Total.String(),
			ItemCount:      r.ItemCount,
			CouponCode:     r.CouponCode,
			IsGift:         r.IsGift,
			CreatedAt:      r.CreatedAt,
		})
	}
	return out
}

func toSavedAddresses(rows []queries.ListSavedAddressesQueryResponse) []SavedAddressResponse {
	out := make([]SavedAddressResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, SavedAddressResponse(r))
	}
	return out
}
