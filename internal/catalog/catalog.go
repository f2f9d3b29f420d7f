package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Proton-105/telegram-payments/pkg/config"
	"github.com/Proton-105/telegram-payments/pkg/payments"
)

var (
	ErrUnknownProduct   = errors.New("unknown product")
	ErrDuplicateSKU     = errors.New("duplicate product sku")
	ErrCurrencyMismatch = errors.New("currency does not match the catalog")
	ErrAmountMismatch   = errors.New("total amount does not match the catalog")
)

// Product is one item on sale.
type Product struct {
	SKU                 string
	Title               string
	Description         string
	Currency            string
	Prices              []payments.Price
	PhotoURL            string
	PhotoWidth          int
	PhotoHeight         int
	NeedName            bool
	NeedEmail           bool
	NeedPhoneNumber     bool
	NeedShippingAddress bool
	IsFlexible          bool
}

// Total sums the product price lines.
func (p Product) Total() int64 {
	var total int64
	for _, price := range p.Prices {
		total += price.Amount()
	}
	return total
}

// ProductsFromConfig converts configured catalog entries.
func ProductsFromConfig(items []config.ProductConfig) []Product {
	products := make([]Product, 0, len(items))
	for _, item := range items {
		prices := make([]payments.Price, 0, len(item.Prices))
		for _, price := range item.Prices {
			prices = append(prices, payments.NewPrice(price.Label, price.Amount))
		}

		products = append(products, Product{
			SKU:                 item.SKU,
			Title:               item.Title,
			Description:         item.Description,
			Currency:            item.Currency,
			Prices:              prices,
			PhotoURL:            item.PhotoURL,
			PhotoWidth:          item.PhotoWidth,
			PhotoHeight:         item.PhotoHeight,
			NeedName:            item.NeedName,
			NeedEmail:           item.NeedEmail,
			NeedPhoneNumber:     item.NeedPhoneNumber,
			NeedShippingAddress: item.NeedShippingAddress,
			IsFlexible:          item.IsFlexible,
		})
	}
	return products
}

// Catalog is a concurrency-safe product list that can be swapped at runtime.
type Catalog struct {
	mu       sync.RWMutex
	products map[string]Product
	order    []string
}

// New builds a catalog, keeping the given product order.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{}
	if err := c.Replace(products); err != nil {
		return nil, err
	}
	return c, nil
}

// Replace swaps the whole product list. On error the previous list is kept.
func (c *Catalog) Replace(products []Product) error {
	index := make(map[string]Product, len(products))
	order := make([]string, 0, len(products))
	for _, p := range products {
		if _, exists := index[p.SKU]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateSKU, p.SKU)
		}
		index[p.SKU] = p
		order = append(order, p.SKU)
	}

	c.mu.Lock()
	c.products = index
	c.order = order
	c.mu.Unlock()
	return nil
}

// Product looks a product up by sku.
func (c *Catalog) Product(sku string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[sku]
	return p, ok
}

// Products returns every product in catalog order.
func (c *Catalog) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]Product, 0, len(c.order))
	for _, sku := range c.order {
		products = append(products, c.products[sku])
	}
	return products
}

// Invoice builds the invoice for one order of sku addressed to chatID.
// extra options are applied after the product ones.
func (c *Catalog) Invoice(sku, chatID, providerToken, startParameter string, extra ...payments.InvoiceOption) (payments.Invoice, error) {
	p, ok := c.Product(sku)
	if !ok {
		return payments.Invoice{}, fmt.Errorf("%w: %s", ErrUnknownProduct, sku)
	}

	opts := make([]payments.InvoiceOption, 0, 8+len(extra))
	if p.PhotoURL != "" {
		opts = append(opts, payments.WithPhotoURL(p.PhotoURL))
		if p.PhotoWidth > 0 && p.PhotoHeight > 0 {
			opts = append(opts, payments.WithPhotoWidth(p.PhotoWidth), payments.WithPhotoHeight(p.PhotoHeight))
		}
	}
	if p.NeedName {
		opts = append(opts, payments.WithNeedName(true))
	}
	if p.NeedEmail {
		opts = append(opts, payments.WithNeedEmail(true))
	}
	if p.NeedPhoneNumber {
		opts = append(opts, payments.WithNeedPhoneNumber(true))
	}
	if p.NeedShippingAddress {
		opts = append(opts, payments.WithNeedShippingAddress(true))
	}
	if p.IsFlexible {
		opts = append(opts, payments.WithIsFlexible(true))
	}
	opts = append(opts, extra...)

	return payments.NewInvoice(
		chatID,
		p.Title,
		p.Description,
		NewPayload(p.SKU),
		providerToken,
		startParameter,
		p.Currency,
		p.Prices,
		opts...,
	), nil
}

// Verify checks a pre-checkout query against the current catalog: the payload
// must name a known product and the currency and total must still match.
// Flexible products skip the total check since shipping changes the amount.
func (c *Catalog) Verify(payment payments.CommonPaymentFields) (Product, error) {
	sku, _, err := ParsePayload(payment.InvoicePayload())
	if err != nil {
		return Product{}, err
	}

	p, ok := c.Product(sku)
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrUnknownProduct, sku)
	}

	if payment.Currency() != p.Currency {
		return p, fmt.Errorf("%w: got %s, want %s", ErrCurrencyMismatch, payment.Currency(), p.Currency)
	}
	if !p.IsFlexible && payment.TotalAmount() != p.Total() {
		return p, fmt.Errorf("%w: got %d, want %d", ErrAmountMismatch, payment.TotalAmount(), p.Total())
	}

	return p, nil
}
