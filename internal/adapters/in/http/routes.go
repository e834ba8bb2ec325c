package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const staffKeyHeader = "X-Staff-Key"

// NewEcho builds the echo instance with every route registered. mediaRoot,
// when set, is served under the media URL.
func (s *Server) NewEcho(mediaRoot string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = newPageRenderer()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Warn("request failed", "method", v.Method, "path", v.URIPath,
					"status", v.Status, "latency", v.Latency, "error", v.Error)
				return nil
			}
			s.logger.Debug("request", "method", v.Method, "path", v.URIPath,
				"status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if mediaRoot != "" {
		e.Static(s.mediaURL, mediaRoot)
	}

	api := e.Group("/api")

	// Customer links. Registered before /orders/:id so the static segments win.
	api.GET("/orders/confirm/:token", s.ConfirmReceiptPage)
	api.GET("/orders/cancel/:token", s.CancelOrderPage)
	api.GET("/orders/rate/:token", s.RateOrderPage)
	api.POST("/orders/rate/:token", s.RateOrderPage)
	api.GET("/orders/repeat/:token", s.RepeatOrderPage)
	api.GET("/orders/call/:token", s.RequestCallbackPage)
	api.GET("/orders/change-address/:token", s.ChangeAddressPage)
	api.POST("/orders/change-address/:token", s.ChangeAddressPage)
	api.GET("/orders/photo/:token", s.DeliveryPhotoPage)
	api.POST("/orders/photo/:token", s.DeliveryPhotoPage)

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/quick", s.CreateQuickOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/request-delivery", s.RequestDelivery)
	api.POST("/coupons/validate", s.ValidateCoupon)
	api.GET("/delivery/slots", s.GetDeliverySlots)
	api.GET("/account/addresses", s.ListSavedAddresses)
	api.POST("/account/addresses", s.SaveAddress)
	api.DELETE("/account/addresses/:id", s.DeleteSavedAddress)

	staffOnly := s.requireStaff()
	api.POST("/orders/:id/status", s.ChangeStatus, staffOnly)
	api.POST("/orders/:id/delivery-status", s.ChangeDeliveryStatus, staffOnly)
	api.POST("/orders/bulk-status", s.BulkChangeStatus, staffOnly)
	api.GET("/orders/:id/links", s.GetOrderLinks, staffOnly)
	api.POST("/payments/status", s.SetPaymentStatus, staffOnly)

	return e
}

func (s *Server) requireStaff() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "header:" + staffKeyHeader,
		Validator: func(key string, _ echo.Context) (bool, error) {
			return s.isStaffKey(key), nil
		},
		ErrorHandler: func(_ error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "staff key required",
			})
		},
	})
}

func (s *Server) isStaffKey(key string) bool {
	return s.staffKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(s.staffKey)) == 1
}

func (s *Server) isStaff(c echo.Context) bool {
	return s.isStaffKey(c.Request().Header.Get(staffKeyHeader))
}
