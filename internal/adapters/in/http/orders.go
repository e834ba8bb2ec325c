package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/orders - checkout.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	owner, err := identity(c, req.Email)
	if err != nil {
		return s.writeError(c, err)
	}
	params := req.params()
	params.Owner = owner

	cmd, err := commands.NewCreateOrderCommand(params)
	if err != nil {
		return s.writeError(c, err)
	}
	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, s.toOrderResponse(o))
}

// CreateQuickOrder handles POST /api/orders/quick - one product, phone callback.
func (s *Server) CreateQuickOrder(c echo.Context) error {
	var req QuickOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := userIdentity(c)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewQuickOrderCommand(req.ProductID, req.Name, req.Phone, req.Email, user)
	if err != nil {
		return s.writeError(c, err)
	}
	o, err := s.h.QuickOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"ok": true, "order_id": o.ID()})
}

// GetOrder handles GET /api/orders/:id. Staff see every order, customers
// only their own.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var query queries.GetOrderQuery
	if s.isStaff(c) {
		query, err = queries.NewStaffGetOrderQuery(id)
	} else {
		var viewer kernel.Identity
		if viewer, err = identity(c, ""); err != nil {
			return s.writeError(c, err)
		}
		query, err = queries.NewGetOrderQuery(id, viewer)
	}
	if err != nil {
		return s.writeError(c, err)
	}

	o, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.toOrderResponse(o))
}

// ListOrders handles GET /api/orders - the caller's orders, newest first.
func (s *Server) ListOrders(c echo.Context) error {
	owner, err := identity(c, "")
	if err != nil {
		return s.writeError(c, err)
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
	}

	query, err := queries.NewListOrdersQuery(owner, limit)
	if err != nil {
		return s.writeError(c, err)
	}
	rows, err := s.h.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderSummaries(rows))
}

// RequestDelivery handles POST /api/orders/:id/request-delivery. The owner
// or staff may schedule delivery.
func (s *Server) RequestDelivery(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}
	var req RequestDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	actor := kernel.RestoreActor(nil, "staff")
	if !s.isStaff(c) {
		viewer, err := identity(c, "")
		if err != nil {
			return s.writeError(c, err)
		}
		query, err := queries.NewGetOrderQuery(id, viewer)
		if err != nil {
			return s.writeError(c, err)
		}
		if _, err := s.h.GetOrder.Handle(c.Request().Context(), query); err != nil {
			return s.writeError(c, err)
		}
		actor = viewer.Actor()
	}

	var day *time.Time
	if raw := strings.TrimSpace(req.DeliveryDay); raw != "" {
		d, err := time.ParseInLocation(dayLayout, raw, time.UTC)
		if err != nil {
			return s.writeError(c, errs.NewValueIsInvalidErrorWithCause("delivery_day", err))
		}
		day = &d
	}

	cmd, err := commands.NewRequestDeliveryCommand(id, req.DeliveryAddress, req.DeliveryDateTime, day,
		req.DeliverySlot, req.DeliveryComment, actor)
	if err != nil {
		return s.writeError(c, err)
	}
	o, err := s.h.RequestDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.toOrderResponse(o))
}

// ChangeStatus handles POST /api/orders/:id/status (staff).
func (s *Server) ChangeStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChangeStatusCommand(id, req.Status, s.actor(c), req.Notes)
	if err != nil {
		return s.writeError(c, err)
	}
	o, err := s.h.ChangeStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.toOrderResponse(o))
}

// ChangeDeliveryStatus handles POST /api/orders/:id/delivery-status (staff).
func (s *Server) ChangeDeliveryStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChangeDeliveryStatusCommand(id, req.Status, s.actor(c), req.Notes)
	if err != nil {
		return s.writeError(c, err)
	}
	o, err := s.h.ChangeDeliveryStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, s.toOrderResponse(o))
}

// BulkChangeStatus handles POST /api/orders/bulk-status (staff).
func (s *Server) BulkChangeStatus(c echo.Context) error {
	var req BulkStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewBulkChangeStatusCommand(req.IDs, req.Status, req.DeliveryStatus, s.actor(c))
	if err != nil {
		return s.writeError(c, err)
	}
	result, err := s.h.BulkChangeStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	resp := BulkStatusResponse{
		Changed:   append([]int64{}, result.Changed...),
		Unchanged: append([]int64{}, result.Unchanged...),
		Failed:    make(map[int64]string, len(result.Failed)),
	}
	for id, ferr := range result.Failed {
		resp.Failed[id] = ferr.Error()
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrderLinks handles GET /api/orders/:id/links (staff) - the signed
// customer links of an order.
func (s *Server) GetOrderLinks(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetOrderLinksQuery(id)
	if err != nil {
		return s.writeError(c, err)
	}
	links, err := s.h.GetOrderLinks.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	resp := make(map[string]string, len(links))
	for action, url := range links {
		resp[action.String()] = url
	}
	return c.JSON(http.StatusOK, resp)
}

// SetPaymentStatus handles POST /api/payments/status (staff). The payment
// provider's webhook is verified upstream.
func (s *Server) SetPaymentStatus(c echo.Context) error {
	var req PaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSetPaymentStatusCommand(req.OrderID, req.Reference, req.Status)
	if err != nil {
		return s.writeError(c, err)
	}
	o, err := s.h.SetPaymentStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"order_id": o.ID(), "payment_status": o.Payment().Status.String()})
}
