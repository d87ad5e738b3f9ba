package users

import (
	"testing"

	"github.com/google/uuid"
	"github.com/maksvovk/store-management/internal/purchases"
	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

func TestNewCashierValidation(t *testing.T) {
	if _, err := NewCashier("", "Vovk"); !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
		t.Fatalf("expected value error, got %v", err)
	}
	if _, err := NewCashier("Maks", "  "); !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
		t.Fatalf("expected value error, got %v", err)
	}

	cashier, err := NewCashier("Maks", "Vovk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cashier.Name() != "Maks" || cashier.Surname() != "Vovk" {
		t.Fatalf("unexpected identity %s %s", cashier.Name(), cashier.Surname())
	}
}

func TestNewCustomerPhoneNormalization(t *testing.T) {
	customer, err := NewCustomer("Anna", "Block", "+380991234001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.Phone() != "380991234001" {
		t.Fatalf("unexpected phone %q", customer.Phone())
	}
	if customer.Percent() != DefaultCashbackPercent {
		t.Fatalf("expected default percent, got %d", customer.Percent())
	}

	if _, err := NewCustomer("Anna", "Block", "12345"); !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
		t.Fatalf("short phone should fail, got %v", err)
	}
	if _, err := NewCustomer("Anna", "Block", "123456a"); !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
		t.Fatalf("non-digit phone should fail, got %v", err)
	}
}

func TestWithdrawCashback(t *testing.T) {
	customer, _ := NewCustomer("Anna", "Block", "380991234001")
	if err := customer.SetCashbackCents(30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("negativeAmount", func(t *testing.T) {
		if _, err := customer.WithdrawCashback(-1); !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
			t.Fatalf("expected value error, got %v", err)
		}
	})

	t.Run("insufficientBalance", func(t *testing.T) {
		ok, err := customer.WithdrawCashback(31)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatal("withdrawal above balance must report failure")
		}
		if customer.CashbackCents() != 30 {
			t.Fatalf("balance must be unchanged, got %d", customer.CashbackCents())
		}
	})

	t.Run("success", func(t *testing.T) {
		ok, err := customer.WithdrawCashback(20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("expected withdrawal to succeed")
		}
		if customer.CashbackCents() != 10 {
			t.Fatalf("expected balance 10, got %d", customer.CashbackCents())
		}
	})
}

func TestAccrueCashbackFloors(t *testing.T) {
	customer, _ := NewCustomer("Anna", "Block", "380991234001")
	if err := customer.SetPercent(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// floor(5 * 1 / 100) = 0
	if err := customer.AccrueCashback(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.CashbackCents() != 0 {
		t.Fatalf("expected no accrual on tiny total, got %d", customer.CashbackCents())
	}

	if err := customer.SetPercent(10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := customer.AccrueCashback(199); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.CashbackCents() != 19 {
		t.Fatalf("expected floor(199*10/100)=19, got %d", customer.CashbackCents())
	}

	if err := customer.AccrueCashback(-1); !pkgerrors.IsCode(err, pkgerrors.CodeValue) {
		t.Fatalf("negative order amount should fail, got %v", err)
	}
}

func TestSetPercentBounds(t *testing.T) {
	customer, _ := NewCustomer("Anna", "Block", "380991234001")
	if err := customer.SetPercent(101); err == nil {
		t.Fatal("percent above 100 should fail")
	}
	if err := customer.SetPercent(-1); err == nil {
		t.Fatal("negative percent should fail")
	}
	if err := customer.SetPercent(100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddPurchaseHistory(t *testing.T) {
	customer, _ := NewCustomer("Anna", "Block", "380991234001")
	if err := customer.AddPurchase(nil); !pkgerrors.IsCode(err, pkgerrors.CodeType) {
		t.Fatalf("expected type error, got %v", err)
	}

	receipt, err := purchases.New(purchases.Input{
		Reference:  uuid.New(),
		CustomerID: 1,
		Lines:      []purchases.Line{{ProductID: 1, Name: "Bread", UnitPriceCents: 2500}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := customer.AddPurchase(receipt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := customer.Purchases(); len(got) != 1 || got[0] != receipt {
		t.Fatalf("unexpected history %v", got)
	}
}
