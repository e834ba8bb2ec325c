package http

import (
	"net/http"
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ValidateCoupon handles POST /api/coupons/validate. An unknown or expired
// code is a normal answer, not an error.
func (s *Server) ValidateCoupon(c echo.Context) error {
	var req CouponQuoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	query, err := queries.NewQuoteCouponQuery(req.Code, kernel.Money(req.Subtotal))
	if err != nil {
		return s.writeError(c, err)
	}
	quote, err := s.h.QuoteCoupon.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, CouponQuoteResponse{
		Code:     quote.Code,
		Found:    quote.Found,
		Valid:    quote.Valid,
		Expired:  quote.Found && !quote.Valid,
		Reason:   quote.Reason,
		Discount: quote.Discount.Int64(),
		Snapshot: quote.Snapshot,
	})
}

// GetDeliverySlots handles GET /api/delivery/slots.
func (s *Server) GetDeliverySlots(c echo.Context) error {
	query, err := queries.NewGetDeliverySlotsQuery(time.Now())
	if err != nil {
		return s.writeError(c, err)
	}
	slots, err := s.h.GetDeliverySlots.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	resp := make([]DeliverySlotResponse, 0, len(slots))
	for _, slot := range slots {
		resp = append(resp, DeliverySlotResponse(slot))
	}
	return c.JSON(http.StatusOK, map[string]any{"slots": resp})
}

