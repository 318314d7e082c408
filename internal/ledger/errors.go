package ledger

import "fmt"

// InsufficientStockError rejects a sale line that asks for more units than
// the catalog currently holds. Checked against the live catalog before any
// stock is touched.
type InsufficientStockError struct {
	Item      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Item, e.Requested, e.Available)
}

// MissingRequiredFieldError names the input field that was empty or invalid.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Reasons for PermissionDeniedError.
const (
	ReasonLockedWindow = "locked-window"
	ReasonNotOwner     = "not-owner"
)

// PermissionDeniedError rejects an edit or void outside the mutable window.
type PermissionDeniedError struct {
	Action string
	Reason string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied for %s: %s", e.Action, e.Reason)
}

// DuplicateSKUError rejects a catalog product whose SKU is already taken.
type DuplicateSKUError struct {
	SKU string
}

func (e *DuplicateSKUError) Error() string {
	return fmt.Sprintf("SKU %q already exists", e.SKU)
}

// NotFoundError names the entity kind and id that could not be resolved.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
