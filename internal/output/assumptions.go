package output

import (
	"fmt"

	"github.com/rpgo/dreamcalc/internal/domain"
)

// GenerateAssumptions lists the modelling assumptions behind a plan.
func GenerateAssumptions(assumptions *domain.Assumptions) []string {
	penalty := assumptions.PenaltyFormula
	if penalty == "" {
		penalty = domain.PenaltySubtractive
	}
	capacity := assumptions.CapacityFormula
	if capacity == "" {
		capacity = domain.CapacityFlat
	}
	scale := assumptions.ImportanceScale
	if scale == "" {
		scale = domain.ScaleFive
	}
	lines := []string{
		fmt.Sprintf("Minimum guarantee per goal: %s of target", FormatPercentage(assumptions.EffectiveMinPercent().Mul(decimalHundred))),
		fmt.Sprintf("Lifestyle penalty formula: %s", penalty),
		fmt.Sprintf("Capacity profile: %s", capacity),
		fmt.Sprintf("Importance scale: %s", scale),
	}
	if capacity == domain.CapacityGrowth {
		lines = append(lines, fmt.Sprintf("Income growth: %s annually, expenses held flat", FormatPercentage(assumptions.EffectiveGrowthRate().Mul(decimalHundred))))
	}
	lines = append(lines, "No investment returns, taxes or inflation are modelled")
	return lines
}
