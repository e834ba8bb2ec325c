package orderrepo

import (
	"time"

	"storefront/internal/adapters/out/postgres/addressrepo"
	"storefront/internal/adapters/out/postgres/couponrepo"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"gorm.io/datatypes"
)

type OrderDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	OwnerUserID *int64 `gorm:"index"`
	OwnerEmail  string `gorm:"size:254;index"`

	CustomerName string `gorm:"size:200"`
	Email        string `gorm:"size:254"`
	Phone        string `gorm:"size:32"`
	Address      string `gorm:"size:300"`

	SavedAddressID *int64                       `gorm:"index"`
	SavedAddress   *addressrepo.SavedAddressDTO `gorm:"constraint:OnDelete:SET NULL"`

	Subtotal       int64
	DiscountAmount int64
	DeliveryFee    int64
	Total          int64

	CouponID       *int64                `gorm:"index"`
	Coupon         *couponrepo.CouponDTO `gorm:"constraint:OnDelete:SET NULL"`
	CouponCode     string                `gorm:"size:64"`
	CouponSnapshot datatypes.JSONMap

	Status            string `gorm:"size:32;index"`
	DeliveryStatus    string `gorm:"size:32;index"`
	DeliveryRequested bool
	Delivery          DeliveryDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	Gift GiftDTO `gorm:"embedded;embeddedPrefix:gift_"`

	PaymentMethod    string `gorm:"size:32"`
	PaymentStatus    string `gorm:"size:32"`
	PaymentReference string `gorm:"size:128;index"`
	PaymentMetadata  datatypes.JSONMap

	Rating        *int
	RatingComment string

	QuickOrder        bool
	QuickOrderPayload datatypes.JSONMap

	AddressChangeAddress     string
	AddressChangeComment     string
	AddressChangeRequestedAt *time.Time

	CallMeRequestedAt           *time.Time
	LastStatusChangedAt         *time.Time
	LastDeliveryStatusChangedAt *time.Time
	CreatedAt                   time.Time
	UpdatedAt                   time.Time `gorm:"index;autoUpdateTime:false"`

	Items     []OrderItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Events    []OrderEventDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	AuditLogs []OrderAuditLogDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type DeliveryDTO struct {
	Address         string `gorm:"size:300"`
	DateTime        *time.Time
	Day             *time.Time `gorm:"type:date"`
	Slot            string     `gorm:"size:32"`
	Comment         string
	PhotoPath       string
	PhotoUploadedAt *time.Time
}

type GiftDTO struct {
	IsGift         bool
	RecipientName  string `gorm:"size:200"`
	RecipientPhone string `gorm:"size:32"`
	Message        string
	CardSignature  string `gorm:"size:200"`
}

type OrderItemDTO struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	OrderID         int64 `gorm:"index;not null"`
	ProductID       int64 `gorm:"index"`
	ProductName     string
	ProductCategory string `gorm:"size:64"`
	ProductImageURL string
	PriceAtPurchase int64
	Qty             int
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type OrderEventDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	OrderID     int64  `gorm:"index;not null"`
	Kind        string `gorm:"size:64;index"`
	Payload     datatypes.JSONMap
	ActorUserID *int64
	ActorEmail  string `gorm:"size:254"`
	Source      string `gorm:"size:32"`
	CreatedAt   time.Time
}

func (OrderEventDTO) TableName() string {
	return "order_events"
}

type OrderAuditLogDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	OrderID     int64  `gorm:"index;not null"`
	Field       string `gorm:"size:64"`
	OldValue    string
	NewValue    string
	ActorUserID *int64
	ActorEmail  string `gorm:"size:254"`
	Notes       string
	CreatedAt   time.Time
}

func (OrderAuditLogDTO) TableName() string {
	return "order_audit_logs"
}

// Models lists every table of the order aggregate for migrations.
func Models() []any {
	return []any{
		&couponrepo.CouponDTO{},
		&addressrepo.SavedAddressDTO{},
		&OrderDTO{},
		&OrderItemDTO{},
		&OrderEventDTO{},
		&OrderAuditLogDTO{},
	}
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.State()
	dto := OrderDTO{
		ID:                s.ID,
		CustomerName:      s.Customer.Name,
		Email:             s.Customer.Email,
		Phone:             s.Customer.Phone,
		Address:           s.Customer.Address,
		SavedAddressID:    s.SavedAddressID,
		Subtotal:          s.Totals.Subtotal().Int64(),
		DiscountAmount:    s.Totals.Discount().Int64(),
		DeliveryFee:       s.Totals.DeliveryFee().Int64(),
		Total:             s.Totals.Total().Int64(),
		Status:            s.Status.String(),
		DeliveryStatus:    s.DeliveryStatus.String(),
		DeliveryRequested: s.DeliveryRequested,
		Delivery: DeliveryDTO{
			Address:  s.Delivery.Address,
			DateTime: s.Delivery.DateTime,
			Day:      s.Delivery.Day,
			Slot:     s.Delivery.Slot,
			Comment:  s.Delivery.Comment,
		},
		Gift: GiftDTO{
			IsGift:         s.Gift.IsGift,
			RecipientName:  s.Gift.RecipientName,
			RecipientPhone: s.Gift.RecipientPhone,
			Message:        s.Gift.Message,
			CardSignature:  s.Gift.CardSignature,
		},
		PaymentMethod:               string(s.Payment.Method),
		PaymentStatus:               s.Payment.Status.String(),
		PaymentReference:            s.Payment.Reference,
		PaymentMetadata:             s.Payment.Metadata,
		QuickOrder:                  s.QuickOrder,
		QuickOrderPayload:           s.QuickOrderPayload,
		CallMeRequestedAt:           s.CallMeRequestedAt,
		LastStatusChangedAt:         s.LastStatusChangedAt,
		LastDeliveryStatusChangedAt: s.LastDeliveryStatusChangedAt,
		CreatedAt:                   s.CreatedAt,
		UpdatedAt:                   s.UpdatedAt,
	}
	dto.OwnerUserID, dto.OwnerEmail = addressrepo.OwnerColumns(s.Owner)

	if c := s.Coupon; c != nil {
		dto.CouponID = c.ID
		dto.CouponCode = c.Code
		dto.CouponSnapshot = datatypes.JSONMap{"type": c.Snapshot.Type, "value": c.Snapshot.Value}
	}
	if p := s.Photo; p != nil {
		at := p.UploadedAt
		dto.Delivery.PhotoPath = p.Path
		dto.Delivery.PhotoUploadedAt = &at
	}
	if r := s.Rating; r != nil {
		score := r.Score
		dto.Rating = &score
		dto.RatingComment = r.Comment
	}
	if ac := s.AddressChange; ac != nil {
		at := ac.RequestedAt
		dto.AddressChangeAddress = ac.Address
		dto.AddressChangeComment = ac.Comment
		dto.AddressChangeRequestedAt = &at
	}

	for _, it := range s.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:         s.ID,
			ProductID:       it.ProductID(),
			ProductName:     it.Name(),
			ProductCategory: it.Category(),
			ProductImageURL: it.ImageURL(),
			PriceAtPurchase: it.PriceAtPurchase().Int64(),
			Qty:             it.Qty(),
		})
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	owner, err := addressrepo.RestoreOwner(dto.OwnerUserID, dto.OwnerEmail)
	if err != nil {
		return nil, err
	}
	totals, err := order.RestoreTotals(kernel.Money(dto.Subtotal), kernel.Money(dto.DiscountAmount),
		kernel.Money(dto.DeliveryFee), kernel.Money(dto.Total))
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		item, err := order.NewItem(it.ProductID, it.ProductName, it.ProductCategory, it.ProductImageURL,
			kernel.Money(it.PriceAtPurchase), it.Qty)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	s := order.State{
		ID:    dto.ID,
		Owner: owner,
		Customer: order.Customer{
			Name:    dto.CustomerName,
			Email:   dto.Email,
			Phone:   dto.Phone,
			Address: dto.Address,
		},
		SavedAddressID:    dto.SavedAddressID,
		Items:             items,
		Totals:            totals,
		Status:            order.Status(dto.Status),
		DeliveryStatus:    order.DeliveryStatus(dto.DeliveryStatus),
		DeliveryRequested: dto.DeliveryRequested,
		Delivery: order.Delivery{
			Address:  dto.Delivery.Address,
			DateTime: dto.Delivery.DateTime,
			Day:      dto.Delivery.Day,
			Slot:     dto.Delivery.Slot,
			Comment:  dto.Delivery.Comment,
		},
		Gift: order.Gift{
			IsGift:         dto.Gift.IsGift,
			RecipientName:  dto.Gift.RecipientName,
			RecipientPhone: dto.Gift.RecipientPhone,
			Message:        dto.Gift.Message,
			CardSignature:  dto.Gift.CardSignature,
		},
		Payment: order.Payment{
			Method:    order.PaymentMethod(dto.PaymentMethod),
			Status:    order.PaymentStatus(dto.PaymentStatus),
			Reference: dto.PaymentReference,
			Metadata:  dto.PaymentMetadata,
		},
		QuickOrder:                  dto.QuickOrder,
		QuickOrderPayload:           dto.QuickOrderPayload,
		CallMeRequestedAt:           dto.CallMeRequestedAt,
		LastStatusChangedAt:         dto.LastStatusChangedAt,
		LastDeliveryStatusChangedAt: dto.LastDeliveryStatusChangedAt,
		CreatedAt:                   dto.CreatedAt,
		UpdatedAt:                   dto.UpdatedAt,
	}

	if dto.CouponCode != "" {
		s.Coupon = &order.AppliedCoupon{
			ID:       dto.CouponID,
			Code:     dto.CouponCode,
			Snapshot: snapshotFromJSON(dto.CouponSnapshot),
		}
	}
	if dto.Delivery.PhotoPath != "" {
		p := &order.Photo{Path: dto.Delivery.PhotoPath}
		if dto.Delivery.PhotoUploadedAt != nil {
			p.UploadedAt = *dto.Delivery.PhotoUploadedAt
		}
		s.Photo = p
	}
	if dto.Rating != nil {
		s.Rating = &order.Rating{Score: *dto.Rating, Comment: dto.RatingComment}
	}
	if dto.AddressChangeRequestedAt != nil {
		s.AddressChange = &order.AddressChange{
			Address:     dto.AddressChangeAddress,
			Comment:     dto.AddressChangeComment,
			RequestedAt: *dto.AddressChangeRequestedAt,
		}
	}

	return order.RestoreOrder(s)
}

// snapshotFromJSON reads the coupon snapshot back; JSON numbers decode as float64.
func snapshotFromJSON(m datatypes.JSONMap) order.CouponSnapshot {
	var snap order.CouponSnapshot
	if t, ok := m["type"].(string); ok {
		snap.Type = t
	}
	switch v := m["value"].(type) {
	case float64:
		snap.Value = int64(v)
	case int64:
		snap.Value = v
	case int:
		snap.Value = int64(v)
	}
	return snap
}

func eventFromDomain(orderID int64, e order.Event) OrderEventDTO {
	return OrderEventDTO{
		OrderID:     orderID,
		Kind:        string(e.Kind),
		Payload:     e.Payload,
		ActorUserID: e.Actor.UserID(),
		ActorEmail:  e.Actor.Email(),
		Source:      string(e.Source),
		CreatedAt:   e.CreatedAt,
	}
}

func auditFromDomain(orderID int64, a order.AuditEntry) OrderAuditLogDTO {
	return OrderAuditLogDTO{
		OrderID:     orderID,
		Field:       a.Field,
		OldValue:    a.OldValue,
		NewValue:    a.NewValue,
		ActorUserID: a.Actor.UserID(),
		ActorEmail:  a.Actor.Email(),
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
	}
}

// EventToDomain converts a stored event row; used by read models.
func EventToDomain(dto OrderEventDTO) order.Event {
	return order.Event{
		Kind:      order.EventKind(dto.Kind),
		Payload:   dto.Payload,
		Actor:     kernel.RestoreActor(dto.ActorUserID, dto.ActorEmail),
		Source:    order.Source(dto.Source),
		CreatedAt: dto.CreatedAt,
	}
}
