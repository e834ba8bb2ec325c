// Package catalogrepo reads product prices from the catalog table. The
// catalog itself is managed elsewhere; this package only looks products up.
package catalogrepo

import (
	"context"
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

type ProductDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:200;not null"`
	Category    string `gorm:"size:64;index"`
	ImageURL    string
	Price       int64 `gorm:"not null"`
	IsAvailable bool  `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

func (ProductDTO) TableName() string {
	return "products"
}

type GormProductCatalog struct {
	db *gorm.DB
}

func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// GetProduct reports unavailable products as not found, so they cannot be ordered.
func (c *GormProductCatalog) GetProduct(ctx context.Context, id int64) (ports.Product, error) {
	var dto ProductDTO
	err := c.db.WithContext(ctx).First(&dto, "id = ? AND is_available", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Product{}, errs.NewObjectNotFoundError("product", id)
	}
	if err != nil {
		return ports.Product{}, err
	}

	return ports.Product{
		ID:       dto.ID,
		Name:     dto.Name,
		Category: dto.Category,
		ImageURL: dto.ImageURL,
		Price:    kernel.Money(dto.Price),
	}, nil
}
