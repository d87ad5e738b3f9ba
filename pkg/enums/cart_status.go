package enums

import "fmt"

// CartStatus tracks a shopping cart through its terminal payment transition.
type CartStatus string

const (
	CartStatusPending CartStatus = "pending"
	CartStatusSuccess CartStatus = "success"
	CartStatusFailed  CartStatus = "failed"
)

var validCartStatuses = []CartStatus{
	CartStatusPending,
	CartStatusSuccess,
	CartStatusFailed,
}

// String implements fmt.Stringer.
func (c CartStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartStatus.
func (c CartStatus) IsValid() bool {
	for _, candidate := range validCartStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transition.
func (c CartStatus) IsTerminal() bool {
	return c == CartStatusSuccess || c == CartStatusFailed
}

// ParseCartStatus converts raw input into a CartStatus.
func ParseCartStatus(value string) (CartStatus, error) {
	for _, candidate := range validCartStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart status %q", value)
}
