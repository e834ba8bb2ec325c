// Package orderrepo persists order aggregates together with their items,
// events and audit entries.
package orderrepo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and its items, assigns the id and flushes buffered records.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	dto.ID = 0
	dto.Items = nil

	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}
	if len(items) > 0 {
		for i := range items {
			items[i].OrderID = dto.ID
		}
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}

	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}
	return r.flushPending(db, aggregate)
}

// Update saves the order row. Items are immutable after checkout and are not rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Items = nil

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Select("*").Omit("id", "created_at", clause.Associations).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	return r.flushPending(db, aggregate)
}

func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx), strconv.FormatInt(id, 10), "id = ?", id)
}

func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(db, strconv.FormatInt(id, 10), "id = ?", id)
}

func (r *GormOrderRepository) GetByPaymentReference(ctx context.Context, reference string) (*order.Order, error) {
	if reference == "" {
		return nil, errs.NewValueIsRequiredError("payment_reference")
	}
	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(db, reference, "payment_reference = ?", reference)
}

func (r *GormOrderRepository) FindStaleDelivered(ctx context.Context, before time.Time, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("status = ? AND delivery_status = ? AND updated_at < ?",
			order.StatusDelivering, order.DeliveryDelivered, before).
		Order("updated_at").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormOrderRepository) first(db *gorm.DB, key, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	if err := db.Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", key)
		}
		return nil, err
	}

	// Locking clauses are not allowed together with the outer join a
	// Preload would need, so items are read separately.
	if err := db.Session(&gorm.Session{NewDB: true}).
		Where("order_id = ?", dto.ID).Order("id").Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) flushPending(db *gorm.DB, aggregate *order.Order) error {
	if events := aggregate.PendingEvents(); len(events) > 0 {
		rows := make([]OrderEventDTO, 0, len(events))
		for _, e := range events {
			rows = append(rows, eventFromDomain(aggregate.ID(), e))
		}
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}

	if entries := aggregate.PendingAudit(); len(entries) > 0 {
		rows := make([]OrderAuditLogDTO, 0, len(entries))
		for _, a := range entries {
			rows = append(rows, auditFromDomain(aggregate.ID(), a))
		}
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}

	aggregate.ClearPending()
	return nil
}
