package wenmoon

import (
	"errors"
	"fmt"
)

// The engine sorts every failure into one of three buckets. Callers decide
// what to retry; the engine never retries on its own.
var (
	// ErrValidation marks a rejected mutation. Nothing was applied.
	ErrValidation = errors.New("validation failed")
	// ErrFetch marks a network failure from a market or alert provider.
	// Prior cached and persisted state is untouched.
	ErrFetch = errors.New("fetch failed")
	// ErrStore marks a durable-store failure. In-memory state may already
	// hold the mutation; see Engine for the best-effort policy.
	ErrStore = errors.New("store failed")
)

// ErrInsufficientHolding rejects a sell or transfer-out that would push a
// coin's running holding below zero.
var ErrInsufficientHolding = fmt.Errorf("%w: insufficient holding", ErrValidation)

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func fetchError(err error) error {
	return fmt.Errorf("%w: %w", ErrFetch, err)
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrStore, err)
}

// UserMessage converts any engine error into the single user-facing string
// the UI layer displays. Internal error types never cross this boundary.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientHolding):
		return "Not enough holdings for this transaction."
	case errors.Is(err, ErrValidation):
		return fmt.Sprintf("Invalid request: %v", trimTaxonomy(err))
	case errors.Is(err, ErrFetch):
		return "Could not reach the market data service. Pull to refresh to retry."
	case errors.Is(err, ErrStore):
		return "Your change could not be saved. It will be retried on the next save."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}

// trimTaxonomy drops the leading taxonomy prefix from a wrapped error so the
// user message does not repeat it.
func trimTaxonomy(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() []error })
		if !ok {
			return err
		}
		errs := u.Unwrap()
		if len(errs) != 2 {
			return err
		}
		switch errs[0] {
		case ErrValidation, ErrFetch, ErrStore:
			err = errs[1]
		default:
			return err
		}
	}
}
