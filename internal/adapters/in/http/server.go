// Package http exposes the storefront over HTTP: the JSON API used by the
// shop front end and staff tools, and the HTML pages behind customer links.
package http

import (
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	// Command handlers
	CreateOrder          commands.CreateOrderCommandHandler
	QuickOrder           commands.QuickOrderCommandHandler
	ChangeStatus         commands.ChangeStatusCommandHandler
	ChangeDeliveryStatus commands.ChangeDeliveryStatusCommandHandler
	BulkChangeStatus     commands.BulkChangeStatusCommandHandler
	RequestDelivery      commands.RequestDeliveryCommandHandler
	SetPaymentStatus     commands.SetPaymentStatusCommandHandler
	ConfirmReceipt       commands.ConfirmReceiptCommandHandler
	CancelOrder          commands.CancelOrderCommandHandler
	RateOrder            commands.RateOrderCommandHandler
	RepeatOrder          commands.RepeatOrderCommandHandler
	RequestCallback      commands.RequestCallbackCommandHandler
	RequestAddressChange commands.RequestAddressChangeCommandHandler
	UploadDeliveryPhoto  commands.UploadDeliveryPhotoCommandHandler
	SaveAddress          commands.SaveAddressCommandHandler
	DeleteSavedAddress   commands.DeleteSavedAddressCommandHandler

	// Query handlers
	GetOrder           queries.GetOrderQueryHandler
	ListOrders         queries.ListOrdersQueryHandler
	GetOrderLinks      queries.GetOrderLinksQueryHandler
	GetLinkedOrder     queries.GetLinkedOrderQueryHandler
	QuoteCoupon        queries.QuoteCouponQueryHandler
	GetDeliverySlots   queries.GetDeliverySlotsQueryHandler
	ListSavedAddresses queries.ListSavedAddressesQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h        Handlers
	logger   *slog.Logger
	staffKey string
	mediaURL string
}

// NewServer creates a server. Staff routes accept requests carrying staffKey
// in the X-Staff-Key header; an empty key disables them.
func NewServer(h Handlers, logger *slog.Logger, staffKey, mediaURL string) *Server {
	if mediaURL == "" {
		mediaURL = "/media/"
	}
	return &Server{
		h:        h,
		logger:   logger.With("component", "http"),
		staffKey: staffKey,
		mediaURL: mediaURL,
	}
}
