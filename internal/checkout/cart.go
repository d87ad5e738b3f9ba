package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/maksvovk/store-management/internal/catalog"
	"github.com/maksvovk/store-management/internal/purchases"
	"github.com/maksvovk/store-management/internal/registry"
	"github.com/maksvovk/store-management/internal/users"
	"github.com/maksvovk/store-management/pkg/enums"
	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

// PurchaseSink persists receipts outside the in-memory registry, typically
// the SQL adapter. A sink failure fails the checkout before any in-memory
// mutation is applied.
type PurchaseSink interface {
	SavePurchase(ctx context.Context, p *purchases.Purchase) error
}

// Cart accumulates a basket and drives it through cashback application and
// payment to a terminal status. It is transient: nothing is persisted until
// MakePayment succeeds.
//
// Status machine: pending -> success | failed, both terminal. MakePayment
// never propagates a failure without first recording it in the status;
// callers branch on Status as much as on the returned error.
type Cart struct {
	status            enums.CartStatus
	basket            []*catalog.Product
	cashier           *users.Cashier
	customer          *users.Customer
	usedCashbackCents int64
	totalCents        int64
	reg               *registry.Registry
	sink              PurchaseSink
	now               func() time.Time
}

// Option configures optional cart collaborators.
type Option func(*Cart)

// WithSink attaches a persistence sink invoked during MakePayment.
func WithSink(sink PurchaseSink) Option {
	return func(c *Cart) {
		c.sink = sink
	}
}

// WithClock overrides the purchase timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) {
		c.now = now
	}
}

// New opens a cart against one product and a registry handle.
func New(product *catalog.Product, reg *registry.Registry, opts ...Option) (*Cart, error) {
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeType, "expected Product instance, got nil")
	}
	if reg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeType, "expected Registry instance, got nil")
	}
	cart := &Cart{
		status:     enums.CartStatusPending,
		basket:     []*catalog.Product{product},
		totalCents: product.PriceCents(),
		reg:        reg,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(cart)
	}
	return cart, nil
}

// Status reports the cart's lifecycle state.
func (c *Cart) Status() enums.CartStatus {
	return c.status
}

// TotalCents is the running total: basket prices minus used cashback.
func (c *Cart) TotalCents() int64 {
	return c.totalCents
}

// UsedCashbackCents is the amount already redeemed against this cart.
func (c *Cart) UsedCashbackCents() int64 {
	return c.usedCashbackCents
}

// Customer returns the bound customer, nil before AddCustomer succeeds.
func (c *Cart) Customer() *users.Customer {
	return c.customer
}

// Cashier returns the assigned cashier, nil when unassigned.
func (c *Cart) Cashier() *users.Cashier {
	return c.cashier
}

// Basket returns the ordered product list, duplicates included.
func (c *Cart) Basket() []*catalog.Product {
	out := make([]*catalog.Product, len(c.basket))
	copy(out, c.basket)
	return out
}

// SetCashier assigns the operating cashier.
func (c *Cart) SetCashier(cashier *users.Cashier) error {
	if cashier == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Cashier instance, got nil")
	}
	c.cashier = cashier
	return nil
}

// AddProduct appends one unit to the basket. The same product may appear
// several times; each occurrence is decremented independently at payment.
func (c *Cart) AddProduct(product *catalog.Product) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Product instance, got nil")
	}
	c.basket = append(c.basket, product)
	c.totalCents += product.PriceCents()
	return nil
}

// AddCustomer binds the customer found by exact phone match. A miss is a
// normal outcome reported as false, not an error.
func (c *Cart) AddCustomer(phone string) (bool, error) {
	normalized, err := users.NormalizePhone(phone)
	if err != nil {
		return false, err
	}
	customer, ok := c.reg.FindCustomerByPhone(normalized)
	if !ok {
		return false, nil
	}
	c.customer = customer
	return true, nil
}

// WithdrawCashback redeems customer credit against the cart total. Reports
// false without mutation when no customer is bound or the balance is short.
func (c *Cart) WithdrawCashback(amount int64) (bool, error) {
	if amount <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValue, "amount must be a positive integer")
	}
	if c.customer == nil {
		return false, nil
	}
	ok, err := c.customer.WithdrawCashback(amount)
	if err != nil || !ok {
		return false, err
	}
	c.usedCashbackCents += amount
	c.totalCents -= amount
	return true, nil
}

// MakePayment finalizes the cart. Every failure is recorded as the failed
// status before the error is returned; a success decrements stock, accrues
// cashback, and registers the receipt. Stock is validated for the whole
// basket before any quantity is touched, so a failed checkout never leaves a
// partial decrement behind.
func (c *Cart) MakePayment(ctx context.Context, card PaymentCard) (*purchases.Purchase, error) {
	if c.status.IsTerminal() {
		// Terminal carts stay terminal; this is caller misuse, not a
		// checkout failure.
		return nil, pkgerrors.Newf(pkgerrors.CodeValue, "cart already finalized with status %s", c.status)
	}

	receipt, err := c.settle(ctx, card)
	if err != nil {
		c.status = enums.CartStatusFailed
		return nil, err
	}
	c.status = enums.CartStatusSuccess
	return receipt, nil
}

func (c *Cart) settle(ctx context.Context, card PaymentCard) (*purchases.Purchase, error) {
	if err := validateCard(card); err != nil {
		return nil, err
	}
	if c.customer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "no customer assigned")
	}
	if c.totalCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "cart total is negative")
	}

	// Validate-all-then-apply: count basket occurrences per product first.
	counts := make(map[*catalog.Product]int64, len(c.basket))
	for _, product := range c.basket {
		counts[product]++
	}
	for product, count := range counts {
		if product.Quantity() < count {
			return nil, pkgerrors.Newf(pkgerrors.CodeValue, "product %q is out of stock", product.Name())
		}
	}

	lines := make([]purchases.Line, len(c.basket))
	for i, product := range c.basket {
		lines[i] = purchases.Line{
			ProductID:      product.ID(),
			Name:           product.Name(),
			UnitPriceCents: product.PriceCents(),
		}
	}

	receipt, err := purchases.New(purchases.Input{
		Reference:         uuid.New(),
		StoreID:           c.storeID(),
		CashierID:         c.cashierID(),
		CustomerID:        c.customer.ID(),
		Lines:             lines,
		CashbackUsedCents: c.usedCashbackCents,
		CreatedAt:         c.now(),
	})
	if err != nil {
		return nil, err
	}

	// The external sink goes first: an adapter error fails the checkout
	// while the in-memory state is still untouched.
	if c.sink != nil {
		if err := c.sink.SavePurchase(ctx, receipt); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist purchase")
		}
	}

	for product, count := range counts {
		if err := product.Decrement(count); err != nil {
			return nil, err
		}
	}
	if err := c.customer.AccrueCashback(c.totalCents); err != nil {
		return nil, err
	}
	if err := c.customer.AddPurchase(receipt); err != nil {
		return nil, err
	}
	if err := c.reg.AddPurchase(receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (c *Cart) storeID() int64 {
	for _, product := range c.basket {
		if product.StoreID() != 0 {
			return product.StoreID()
		}
	}
	return 0
}

func (c *Cart) cashierID() int64 {
	if c.cashier == nil {
		return 0
	}
	return c.cashier.ID()
}
