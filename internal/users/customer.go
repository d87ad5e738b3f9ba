package users

import (
	"strings"

	"github.com/maksvovk/store-management/internal/purchases"
	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

// MinPhoneDigits is the shortest phone number accepted anywhere in the
// system.
const MinPhoneDigits = 7

// DefaultCashbackPercent seeds customers created without an explicit rate.
const DefaultCashbackPercent = 1

// Customer is a buyer with a cashback ledger and an ordered purchase history.
type Customer struct {
	User
	phone         string
	cashbackCents int64
	percent       int
	purchases     []*purchases.Purchase
}

// NewCustomer validates and builds an unregistered customer record with a
// zero cashback balance and the default percent.
func NewCustomer(name, surname, phone string) (*Customer, error) {
	user, err := newUser(name, surname)
	if err != nil {
		return nil, err
	}
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	return &Customer{
		User:    user,
		phone:   normalized,
		percent: DefaultCashbackPercent,
	}, nil
}

// NormalizePhone strips an optional leading plus and validates that the rest
// is at least MinPhoneDigits digits.
func NormalizePhone(phone string) (string, error) {
	normalized := strings.TrimSpace(phone)
	normalized = strings.TrimPrefix(normalized, "+")
	if len(normalized) < MinPhoneDigits || !isDigits(normalized) {
		return "", pkgerrors.Newf(pkgerrors.CodeValue, "phone must be at least %d digits", MinPhoneDigits)
	}
	return normalized, nil
}

func (c *Customer) Phone() string {
	return c.phone
}

func (c *Customer) SetPhone(phone string) error {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	c.phone = normalized
	return nil
}

// CashbackCents returns the current store-credit balance.
func (c *Customer) CashbackCents() int64 {
	return c.cashbackCents
}

// SetCashbackCents overwrites the balance; seeding only, not ledger flow.
func (c *Customer) SetCashbackCents(cents int64) error {
	if cents < 0 {
		return pkgerrors.New(pkgerrors.CodeValue, "cashback must be non-negative")
	}
	c.cashbackCents = cents
	return nil
}

// Percent returns the accrual rate in whole percent, 0..100.
func (c *Customer) Percent() int {
	return c.percent
}

func (c *Customer) SetPercent(percent int) error {
	if percent < 0 || percent > 100 {
		return pkgerrors.New(pkgerrors.CodeValue, "percent must be between 0 and 100")
	}
	c.percent = percent
	return nil
}

// WithdrawCashback redeems store credit. A negative amount is a ValueKind
// error; an amount above the balance reports false without mutation.
func (c *Customer) WithdrawCashback(amount int64) (bool, error) {
	if amount < 0 {
		return false, pkgerrors.New(pkgerrors.CodeValue, "withdrawal amount must be non-negative")
	}
	if amount > c.cashbackCents {
		return false, nil
	}
	c.cashbackCents -= amount
	return true, nil
}

// AccrueCashback adds floor(orderAmount * percent / 100) to the balance.
// Called once per successful checkout with the cart's final post-discount
// total; the discount-then-accrue compounding is the intended rule.
func (c *Customer) AccrueCashback(orderAmountCents int64) error {
	if orderAmountCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValue, "order amount must be non-negative")
	}
	c.cashbackCents += orderAmountCents * int64(c.percent) / 100
	return nil
}

// AddPurchase appends a receipt to the customer's history.
func (c *Customer) AddPurchase(p *purchases.Purchase) error {
	if p == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Purchase instance, got nil")
	}
	c.purchases = append(c.purchases, p)
	return nil
}

// Purchases returns the history in checkout order.
func (c *Customer) Purchases() []*purchases.Purchase {
	out := make([]*purchases.Purchase, len(c.purchases))
	copy(out, c.purchases)
	return out
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
