package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Item is a line of an order. Product details are copied at purchase time and
// never follow later catalog edits.
type Item struct {
	productID int64
	name      string
	category  string
	imageURL  string
	price     kernel.Money
	qty       int
}

func NewItem(productID int64, name, category, imageURL string, price kernel.Money, qty int) (Item, error) {
	var problems []error
	if productID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("productID"))
	}
	if strings.TrimSpace(name) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("product name"))
	}
	if price < 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%d is negative", price)))
	}
	if qty < 1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty)))
	}
	if err := errors.Join(problems...); err != nil {
		return Item{}, err
	}

	return Item{
		productID: productID,
		name:      name,
		category:  category,
		imageURL:  imageURL,
		price:     price,
		qty:       qty,
	}, nil
}

func (i Item) ProductID() int64              { return i.productID }
func (i Item) Name() string                  { return i.name }
func (i Item) Category() string              { return i.category }
func (i Item) ImageURL() string              { return i.imageURL }
func (i Item) PriceAtPurchase() kernel.Money { return i.price }
func (i Item) Qty() int                      { return i.qty }

func (i Item) LineTotal() kernel.Money {
	return i.price.Times(i.qty)
}
