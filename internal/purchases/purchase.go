package purchases

import (
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

// Line snapshots one basket occurrence: the product's name and unit price as
// they were at purchase time. Later price mutations on the product record do
// not reach back into a purchase.
type Line struct {
	ProductID      int64
	Name           string
	UnitPriceCents int64
}

// Purchase is the immutable receipt produced by a successful checkout. It is
// shared between the registry and the customer's history and never mutated
// after creation.
type Purchase struct {
	id                int64
	reference         uuid.UUID
	storeID           int64
	cashierID         int64
	customerID        int64
	lines             []Line
	cashbackUsedCents int64
	totalCents        int64
	createdAt         time.Time
}

// Input carries everything a receipt snapshots. TotalCents is the gross sum
// of the line prices; cashback used is recorded separately.
type Input struct {
	Reference         uuid.UUID
	StoreID           int64
	CashierID         int64
	CustomerID        int64
	Lines             []Line
	CashbackUsedCents int64
	CreatedAt         time.Time
}

// New builds a purchase snapshot, copying the line slice so the caller's
// basket cannot alias into the receipt.
func New(input Input) (*Purchase, error) {
	if input.Reference == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "purchase reference is required")
	}
	if input.CustomerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "purchase customer id is required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "purchase must contain at least one line")
	}
	if input.CashbackUsedCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "cashback used must be non-negative")
	}
	if input.CreatedAt.IsZero() {
		input.CreatedAt = time.Now()
	}

	var total int64
	lines := make([]Line, len(input.Lines))
	for i, line := range input.Lines {
		if line.UnitPriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValue, "line price must be non-negative")
		}
		lines[i] = line
		total += line.UnitPriceCents
	}

	return &Purchase{
		reference:         input.Reference,
		storeID:           input.StoreID,
		cashierID:         input.CashierID,
		customerID:        input.CustomerID,
		lines:             lines,
		cashbackUsedCents: input.CashbackUsedCents,
		totalCents:        total,
		createdAt:         input.CreatedAt,
	}, nil
}

// ID returns the registry-assigned identifier, 0 when unregistered.
func (p *Purchase) ID() int64 {
	return p.id
}

// AssignID sets the identifier exactly once.
func (p *Purchase) AssignID(id int64) error {
	if p.id != 0 {
		return pkgerrors.Newf(pkgerrors.CodeValue, "purchase %s already has id %d", p.reference, p.id)
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValue, "purchase id must be positive")
	}
	p.id = id
	return nil
}

// Reference is the receipt number, unique per purchase.
func (p *Purchase) Reference() uuid.UUID {
	return p.reference
}

func (p *Purchase) StoreID() int64 {
	return p.storeID
}

func (p *Purchase) CashierID() int64 {
	return p.cashierID
}

func (p *Purchase) CustomerID() int64 {
	return p.customerID
}

// Lines returns a copy of the receipt lines in basket order.
func (p *Purchase) Lines() []Line {
	out := make([]Line, len(p.lines))
	copy(out, p.lines)
	return out
}

func (p *Purchase) CashbackUsedCents() int64 {
	return p.cashbackUsedCents
}

// TotalCents is the gross sum of line prices at purchase time.
func (p *Purchase) TotalCents() int64 {
	return p.totalCents
}

// NetPaidCents is the amount charged to the payment instrument: the gross
// total minus the cashback redeemed against it.
func (p *Purchase) NetPaidCents() int64 {
	return p.totalCents - p.cashbackUsedCents
}

func (p *Purchase) CreatedAt() time.Time {
	return p.createdAt
}
