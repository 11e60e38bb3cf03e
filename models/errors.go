package models

import (
	"errors"
	"fmt"
)

// ErrEmptyCart is returned when a sale confirmation is attempted on an
// empty cart. The cart is left untouched.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError rejects malformed or out-of-range input before any
// mutation happens.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s name %q already in use", e.Entity, e.Name)
}

// InsufficientStockError names the offending product and how much stock it
// actually had when the check ran.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (available %d, requested %d)",
		e.ProductName, e.Available, e.Requested)
}
