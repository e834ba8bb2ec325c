package catalogrepo_test

import (
	"context"
	"testing"

	"storefront/internal/adapters/out/postgres/catalogrepo"
	"storefront/internal/adapters/out/postgres/pgtest"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type ProductCatalogIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	catalog   *catalogrepo.GormProductCatalog
}

func (suite *ProductCatalogIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db
	suite.Require().NoError(db.AutoMigrate(&catalogrepo.ProductDTO{}))
	suite.catalog = catalogrepo.NewGormProductCatalog(db)
}

func (suite *ProductCatalogIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE products RESTART IDENTITY").Error)
}

func (suite *ProductCatalogIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProductCatalogIntegrationTestSuite) TestGetProduct_Available() {
	dto := catalogrepo.ProductDTO{Name: "Roses", Category: "bouquets", ImageURL: "/media/roses.jpg", Price: 12500}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	p, err := suite.catalog.GetProduct(suite.T().Context(), dto.ID)

	suite.Require().NoError(err)
	suite.Equal(dto.ID, p.ID)
	suite.Equal("Roses", p.Name)
	suite.Equal("bouquets", p.Category)
	suite.Equal("/media/roses.jpg", p.ImageURL)
	suite.Equal(kernel.Money(12500), p.Price)
}

func (suite *ProductCatalogIntegrationTestSuite) TestGetProduct_NotOrderable() {
	hidden := catalogrepo.ProductDTO{Name: "Tulips", Price: 900}
	suite.Require().NoError(suite.db.Create(&hidden).Error)
	suite.Require().NoError(suite.db.Model(&hidden).Update("is_available", false).Error)

	for name, id := range map[string]int64{"unavailable": hidden.ID, "unknown": 404} {
		suite.Run(name, func() {
			_, err := suite.catalog.GetProduct(suite.T().Context(), id)
			var notFound *errs.ObjectNotFoundError
			suite.Require().ErrorAs(err, &notFound)
		})
	}
}

func TestProductCatalogIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProductCatalogIntegrationTestSuite))
}
