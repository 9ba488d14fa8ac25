package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrIncompleteOrder is reported when a working order lacks a drink or a size
// at the moment it should be added to the cart.
var ErrIncompleteOrder = errors.New("incomplete order")

// ErrEmptyCart is reported when checkout is attempted on an empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// ErrPolicyViolation is reported when the validator rejects a turn.
var ErrPolicyViolation = errors.New("input violates policy")
