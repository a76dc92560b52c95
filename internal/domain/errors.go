package domain

import (
	"errors"
	"fmt"
)

// ErrInfeasible is the parent of every precondition failure that stops a
// plan before a capacity figure can be produced.
var ErrInfeasible = errors.New("plan is infeasible")

// Precondition failures. Each wraps ErrInfeasible.
var (
	ErrIncomeRequired       = fmt.Errorf("%w: income required", ErrInfeasible)
	ErrExpensesExceedIncome = fmt.Errorf("%w: expenses exceed income", ErrInfeasible)
	ErrNoUsableSurplus      = fmt.Errorf("%w: no usable surplus after lifestyle adjustments", ErrInfeasible)
)

// Contract violations by callers of the calculator and allocator.
var (
	ErrInvalidHorizon         = errors.New("planning horizon must be positive")
	ErrNegativeCapacity       = errors.New("feasible capacity cannot be negative")
	ErrInvalidMinPercent      = errors.New("minimum guarantee must be between 0 and 1")
	ErrNegativeTarget         = errors.New("goal target cannot be negative")
	ErrDuplicateGoal          = errors.New("duplicate goal name")
	ErrUnknownGoal            = errors.New("importance refers to unknown goal")
	ErrUnknownLifestyleChoice = errors.New("unknown lifestyle choice")
	ErrUnknownFormula         = errors.New("unknown formula")
)

// IsInfeasible reports whether err is a precondition failure that the user
// must correct by changing inputs.
func IsInfeasible(err error) bool {
	return errors.Is(err, ErrInfeasible)
}

// Reason returns the short name of the precondition behind err, or the
// full error text when err is not a precondition failure.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrIncomeRequired):
		return "income required"
	case errors.Is(err, ErrExpensesExceedIncome):
		return "expenses exceed income"
	case errors.Is(err, ErrNoUsableSurplus):
		return "no usable surplus"
	case err == nil:
		return ""
	}
	return err.Error()
}
