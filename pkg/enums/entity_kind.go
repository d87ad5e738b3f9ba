package enums

import "fmt"

// EntityKind names a registry collection. The registry keeps one monotonic
// identifier sequence per kind.
type EntityKind string

const (
	EntityKindStore    EntityKind = "store"
	EntityKindCategory EntityKind = "category"
	EntityKindProduct  EntityKind = "product"
	EntityKindCashier  EntityKind = "cashier"
	EntityKindCustomer EntityKind = "customer"
	EntityKindPurchase EntityKind = "purchase"
)

var validEntityKinds = []EntityKind{
	EntityKindStore,
	EntityKindCategory,
	EntityKindProduct,
	EntityKindCashier,
	EntityKindCustomer,
	EntityKindPurchase,
}

// String implements fmt.Stringer.
func (k EntityKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known EntityKind.
func (k EntityKind) IsValid() bool {
	for _, candidate := range validEntityKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseEntityKind converts raw input into an EntityKind.
func ParseEntityKind(value string) (EntityKind, error) {
	for _, candidate := range validEntityKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entity kind %q", value)
}
