package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maksvovk/store-management/internal/catalog"
	"github.com/maksvovk/store-management/internal/purchases"
	"github.com/maksvovk/store-management/internal/registry"
	"github.com/maksvovk/store-management/internal/users"
	"github.com/maksvovk/store-management/pkg/enums"
	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

var validCard = PaymentCard{
	Number:   "1234567812345678",
	ExpMonth: 11,
	ExpYear:  2026,
	CVV:      "123",
}

func newFixture(t *testing.T) (*registry.Registry, *catalog.Product, *users.Customer) {
	t.Helper()
	reg := registry.New("test-db")

	product, err := catalog.NewProduct("Bread", 25, 100)
	if err != nil {
		t.Fatalf("new product: %v", err)
	}
	if err := reg.AddProducts(product); err != nil {
		t.Fatalf("add product: %v", err)
	}

	customer, err := users.NewCustomer("Anna", "Block", "380991234001")
	if err != nil {
		t.Fatalf("new customer: %v", err)
	}
	if err := reg.AddCustomers(customer); err != nil {
		t.Fatalf("add customer: %v", err)
	}
	return reg, product, customer
}

func TestNewCart(t *testing.T) {
	reg, product, _ := newFixture(t)

	cart, err := New(product, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.TotalCents() != product.PriceCents() {
		t.Fatalf("expected total %d, got %d", product.PriceCents(), cart.TotalCents())
	}
	if cart.Status() != enums.CartStatusPending {
		t.Fatalf("expected pending status, got %s", cart.Status())
	}

	if _, err := New(nil, reg); !pkgerrors.IsCode(err, pkgerrors.CodeType) {
		t.Fatalf("nil product should be a type error, got %v", err)
	}
	if _, err := New(product, nil); !pkgerrors.IsCode(err, pkgerrors.CodeType) {
		t.Fatalf("nil registry should be a type error, got %v", err)
	}
}

func TestAddProductAccumulatesTotal(t *testing.T) {
	reg, product, _ := newFixture(t)
	book, _ := catalog.NewProduct("NovelBook", 200, 50)

	cart, _ := New(product, reg)
	if err := cart.AddProduct(book); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.TotalCents() != 225 {
		t.Fatalf("expected total 225, got %d", cart.TotalCents())
	}

	// Duplicates are allowed; each occurrence is one unit.
	if err := cart.AddProduct(book); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Basket()) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(cart.Basket()))
	}

	if err := cart.AddProduct(nil); !pkgerrors.IsCode(err, pkgerrors.CodeType) {
		t.Fatalf("nil product should be a type error, got %v", err)
	}
}

func TestAddCustomer(t *testing.T) {
	reg, product, customer := newFixture(t)
	cart, _ := New(product, reg)

	t.Run("malformedPhone", func(t *testing.T) {
		if _, err := cart.AddCustomer("12345"); !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
			t.Fatalf("short phone should be a value error, got %v", err)
		}
	})

	t.Run("unknownPhone", func(t *testing.T) {
		ok, err := cart.AddCustomer("380990000000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok || cart.Customer() != nil {
			t.Fatal("unknown phone must leave customer unbound")
		}
	})

	t.Run("match", func(t *testing.T) {
		ok, err := cart.AddCustomer("+380991234001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || cart.Customer() != customer {
			t.Fatal("expected customer to be bound")
		}
	})
}

func TestWithdrawCashback(t *testing.T) {
	reg, product, customer := newFixture(t)
	if err := customer.SetCashbackCents(30); err != nil {
		t.Fatalf("seed cashback: %v", err)
	}

	cart, _ := New(product, reg)

	t.Run("nonPositiveAmount", func(t *testing.T) {
		if _, err := cart.WithdrawCashback(0); !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
			t.Fatalf("expected value error, got %v", err)
		}
	})

	t.Run("noCustomerBound", func(t *testing.T) {
		ok, err := cart.WithdrawCashback(10)
		if err != nil || ok {
			t.Fatalf("expected quiet failure, got %v/%v", ok, err)
		}
	})

	if _, err := cart.AddCustomer(customer.Phone()); err != nil {
		t.Fatalf("bind customer: %v", err)
	}

	t.Run("insufficientBalance", func(t *testing.T) {
		ok, err := cart.WithdrawCashback(31)
		if err != nil || ok {
			t.Fatalf("expected quiet failure, got %v/%v", ok, err)
		}
		if customer.CashbackCents() != 30 || cart.TotalCents() != 25 {
			t.Fatal("failed withdrawal must not mutate")
		}
	})

	t.Run("success", func(t *testing.T) {
		ok, err := cart.WithdrawCashback(20)
		if err != nil || !ok {
			t.Fatalf("expected success, got %v/%v", ok, err)
		}
		if customer.CashbackCents() != 10 {
			t.Fatalf("expected balance 10, got %d", customer.CashbackCents())
		}
		if cart.UsedCashbackCents() != 20 {
			t.Fatalf("expected used cashback 20, got %d", cart.UsedCashbackCents())
		}
		if cart.TotalCents() != 5 {
			t.Fatalf("expected total 5, got %d", cart.TotalCents())
		}
	})
}

func TestMakePaymentCardValidation(t *testing.T) {
	cases := []struct {
		name string
		card PaymentCard
	}{
		{"shortNumber", PaymentCard{Number: "123456789012", ExpMonth: 11, ExpYear: 2026, CVV: "123"}},
		{"alphaNumber", PaymentCard{Number: "12345678123456ab", ExpMonth: 11, ExpYear: 2026, CVV: "123"}},
		{"badMonth", PaymentCard{Number: "1234567812345678", ExpMonth: 13, ExpYear: 2026, CVV: "123"}},
		{"badYear", PaymentCard{Number: "1234567812345678", ExpMonth: 11, ExpYear: 1999, CVV: "123"}},
		{"badCVV", PaymentCard{Number: "1234567812345678", ExpMonth: 11, ExpYear: 2026, CVV: "12"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg, product, customer := newFixture(t)
			cart, _ := New(product, reg)
			if _, err := cart.AddCustomer(customer.Phone()); err != nil {
				t.Fatalf("bind customer: %v", err)
			}

			_, err := cart.MakePayment(context.Background(), tc.card)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
				t.Fatalf("expected value error, got %v", err)
			}
			if cart.Status() != enums.CartStatusFailed {
				t.Fatalf("expected failed status, got %s", cart.Status())
			}
		})
	}
}

func TestMakePaymentRequiresCustomer(t *testing.T) {
	reg, product, _ := newFixture(t)
	cart, _ := New(product, reg)

	_, err := cart.MakePayment(context.Background(), validCard)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
		t.Fatalf("expected value error, got %v", err)
	}
	if cart.Status() != enums.CartStatusFailed {
		t.Fatalf("expected failed status, got %s", cart.Status())
	}
	if product.Quantity() != 100 {
		t.Fatalf("no decrement on failure, got %d", product.Quantity())
	}
}

func TestMakePaymentOutOfStockNoPartialDecrement(t *testing.T) {
	reg, product, customer := newFixture(t)
	empty, _ := catalog.NewProduct("Laptop", 2500000, 0)
	if err := reg.AddProducts(empty); err != nil {
		t.Fatalf("add product: %v", err)
	}

	cart, _ := New(product, reg)
	if err := cart.AddProduct(empty); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if _, err := cart.AddCustomer(customer.Phone()); err != nil {
		t.Fatalf("bind customer: %v", err)
	}

	_, err := cart.MakePayment(context.Background(), validCard)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
		t.Fatalf("expected value error, got %v", err)
	}
	if cart.Status() != enums.CartStatusFailed {
		t.Fatalf("expected failed status, got %s", cart.Status())
	}
	// Stock is validated for the whole basket before anything is touched.
	if product.Quantity() != 100 || empty.Quantity() != 0 {
		t.Fatalf("expected no decrement, got %d/%d", product.Quantity(), empty.Quantity())
	}
	if len(reg.Purchases()) != 0 {
		t.Fatal("no purchase may be created on failure")
	}
	if len(customer.Purchases()) != 0 {
		t.Fatal("customer history must stay empty on failure")
	}
}

func TestMakePaymentSuccessScenario(t *testing.T) {
	// Product price 25, quantity 100, percent 1; customer starts with 30
	// cashback and withdraws 20.
	reg, product, customer := newFixture(t)
	if err := customer.SetCashbackCents(30); err != nil {
		t.Fatalf("seed cashback: %v", err)
	}

	cart, _ := New(product, reg)
	if _, err := cart.AddCustomer(customer.Phone()); err != nil {
		t.Fatalf("bind customer: %v", err)
	}
	if ok, err := cart.WithdrawCashback(20); err != nil || !ok {
		t.Fatalf("withdraw: %v/%v", ok, err)
	}
	if cart.TotalCents() != 5 {
		t.Fatalf("expected total 5, got %d", cart.TotalCents())
	}

	receipt, err := cart.MakePayment(context.Background(), validCard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Status() != enums.CartStatusSuccess {
		t.Fatalf("expected success status, got %s", cart.Status())
	}
	// Accrual on the post-discount total: floor(5*1/100) = 0.
	if customer.CashbackCents() != 10 {
		t.Fatalf("expected final cashback 10, got %d", customer.CashbackCents())
	}
	if product.Quantity() != 99 {
		t.Fatalf("expected quantity 99, got %d", product.Quantity())
	}
	if len(customer.Purchases()) != 1 || customer.Purchases()[0] != receipt {
		t.Fatal("receipt must be in customer history")
	}
	if len(reg.Purchases()) != 1 {
		t.Fatal("receipt must be registered")
	}
	if receipt.TotalCents() != 25 || receipt.CashbackUsedCents() != 20 {
		t.Fatalf("unexpected receipt totals %d/%d", receipt.TotalCents(), receipt.CashbackUsedCents())
	}
	if receipt.NetPaidCents() != 5 {
		t.Fatalf("expected net paid 5, got %d", receipt.NetPaidCents())
	}
}

func TestMakePaymentDecrementsPerOccurrence(t *testing.T) {
	reg, product, customer := newFixture(t)

	cart, _ := New(product, reg)
	if err := cart.AddProduct(product); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if err := cart.AddProduct(product); err != nil {
		t.Fatalf("add product: %v", err)
	}
	if _, err := cart.AddCustomer(customer.Phone()); err != nil {
		t.Fatalf("bind customer: %v", err)
	}

	if _, err := cart.MakePayment(context.Background(), validCard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Quantity() != 97 {
		t.Fatalf("expected quantity 97 after three occurrences, got %d", product.Quantity())
	}
}

func TestReceiptPriceSnapshot(t *testing.T) {
	reg, product, customer := newFixture(t)

	cart, _ := New(product, reg)
	if _, err := cart.AddCustomer(customer.Phone()); err != nil {
		t.Fatalf("bind customer: %v", err)
	}
	receipt, err := cart.MakePayment(context.Background(), validCard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := product.SetPriceCents(9999); err != nil {
		t.Fatalf("set price: %v", err)
	}
	if receipt.TotalCents() != 25 || receipt.Lines()[0].UnitPriceCents != 25 {
		t.Fatal("receipt must snapshot prices, not follow the product record")
	}
}

func TestMakePaymentTerminalCart(t *testing.T) {
	reg, product, customer := newFixture(t)
	cart, _ := New(product, reg)
	if _, err := cart.AddCustomer(customer.Phone()); err != nil {
		t.Fatalf("bind customer: %v", err)
	}

	if _, err := cart.MakePayment(context.Background(), validCard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cart.MakePayment(context.Background(), validCard); err == nil {
		t.Fatal("terminal cart must refuse a second payment")
	}
	if cart.Status() != enums.CartStatusSuccess {
		t.Fatalf("terminal status must not change, got %s", cart.Status())
	}
	if product.Quantity() != 99 {
		t.Fatalf("no double decrement, got %d", product.Quantity())
	}
}

type failingSink struct{}

func (failingSink) SavePurchase(context.Context, *purchases.Purchase) error {
	return errors.New("adapter down")
}

type recordingSink struct {
	saved []*purchases.Purchase
}

func (s *recordingSink) SavePurchase(_ context.Context, p *purchases.Purchase) error {
	s.saved = append(s.saved, p)
	return nil
}

func TestMakePaymentSinkFailureFailsCheckout(t *testing.T) {
	reg, product, customer := newFixture(t)
	cart, _ := New(product, reg, WithSink(failingSink{}))
	if _, err := cart.AddCustomer(customer.Phone()); err != nil {
		t.Fatalf("bind customer: %v", err)
	}

	_, err := cart.MakePayment(context.Background(), validCard)
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if cart.Status() != enums.CartStatusFailed {
		t.Fatalf("expected failed status, got %s", cart.Status())
	}
	if product.Quantity() != 100 || customer.CashbackCents() != 0 {
		t.Fatal("sink failure must leave in-memory state untouched")
	}
}

func TestMakePaymentPersistsThroughSink(t *testing.T) {
	reg, product, customer := newFixture(t)
	sink := &recordingSink{}
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cart, _ := New(product, reg, WithSink(sink), WithClock(func() time.Time { return fixed }))
	if _, err := cart.AddCustomer(customer.Phone()); err != nil {
		t.Fatalf("bind customer: %v", err)
	}

	receipt, err := cart.MakePayment(context.Background(), validCard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.saved) != 1 || sink.saved[0] != receipt {
		t.Fatal("receipt must flow through the sink")
	}
	if !receipt.CreatedAt().Equal(fixed) {
		t.Fatalf("expected injected clock timestamp, got %v", receipt.CreatedAt())
	}
}
