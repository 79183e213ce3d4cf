package enums

import (
	"fmt"
	"strings"
)

// CartAction is the mutation requested against an open order item.
type CartAction string

const (
	CartActionAdd    CartAction = "add"
	CartActionRemove CartAction = "remove"
)

// String implements fmt.Stringer.
func (a CartAction) String() string {
	return string(a)
}

// Delta is the quantity change applied by the action.
func (a CartAction) Delta() int {
	switch a {
	case CartActionAdd:
		return 1
	case CartActionRemove:
		return -1
	default:
		return 0
	}
}

// IsValid reports whether the value is a known CartAction.
func (a CartAction) IsValid() bool {
	return a == CartActionAdd || a == CartActionRemove
}

// ParseCartAction converts raw input into a CartAction.
func ParseCartAction(value string) (CartAction, error) {
	action := CartAction(strings.ToLower(strings.TrimSpace(value)))
	if !action.IsValid() {
		return "", fmt.Errorf("invalid cart action %q", value)
	}
	return action, nil
}
