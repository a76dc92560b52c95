package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/dreamcalc/internal/domain"
)

// CalculationEngine runs plan scenarios end to end: surplus, allocation and
// pressure analysis. It holds no per-run state and is safe for concurrent use.
type CalculationEngine struct {
	SurplusCalc *SurplusCalculator
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	logger := NopLogger{}
	return &CalculationEngine{
		SurplusCalc: &SurplusCalculator{Logger: logger},
		Logger:      logger,
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.SurplusCalc.Logger = l
}

func surplusInput(cfg *domain.Configuration, scenario *domain.Scenario, horizon int) SurplusInput {
	return SurplusInput{
		Household:       cfg.Household,
		Lifestyle:       scenario.Lifestyle,
		HorizonYears:    horizon,
		PenaltyFormula:  cfg.Assumptions.PenaltyFormula,
		CapacityFormula: cfg.Assumptions.CapacityFormula,
		GrowthRate:      cfg.Assumptions.EffectiveGrowthRate(),
	}
}

// RunScenario calculates a single scenario. Precondition failures are
// returned as errors; use domain.IsInfeasible to tell them apart.
func (ce *CalculationEngine) RunScenario(ctx context.Context, cfg *domain.Configuration, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	goals, err := scenario.GoalsFor(cfg.Goals)
	if err != nil {
		return nil, err
	}

	surplus, err := ce.SurplusCalc.Calculate(surplusInput(cfg, scenario, scenario.HorizonYears))
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	alloc, err := Allocate(surplus.FeasibleCapacity, goals, cfg.Assumptions.EffectiveMinPercent())
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	if alloc.FullySatisfied {
		ce.Logger.Infof("scenario %q: capacity %s covers all goals", scenario.Name, surplus.FeasibleCapacity.StringFixed(2))
	} else {
		ce.Logger.Infof("scenario %q: allocated %s of %s requested", scenario.Name, alloc.Total.StringFixed(2), alloc.TotalTarget.StringFixed(2))
	}

	return &domain.ScenarioResult{
		Name:       scenario.Name,
		Lifestyle:  scenario.Lifestyle,
		Feasible:   true,
		Surplus:    surplus,
		Allocation: alloc,
		Pressure:   AnalyzePressure(surplus.FeasibleCapacity, surplus.AdjustedSurplus, surplus.HorizonYears, goals),
	}, nil
}

// RunScenarios runs every scenario in the configuration. Infeasible
// scenarios are recorded with their reason; any other error aborts the run.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, cfg *domain.Configuration) (*domain.PlanComparison, error) {
	comparison := &domain.PlanComparison{
		Household:   cfg.Household,
		Assumptions: cfg.Assumptions,
		Scenarios:   make([]domain.ScenarioResult, 0, len(cfg.Scenarios)),
	}
	for i := range cfg.Scenarios {
		sc := &cfg.Scenarios[i]
		res, err := ce.RunScenario(ctx, cfg, sc)
		if err != nil {
			if !domain.IsInfeasible(err) {
				return nil, err
			}
			ce.Logger.Warnf("scenario %q is infeasible: %v", sc.Name, err)
			res = &domain.ScenarioResult{
				Name:      sc.Name,
				Lifestyle: sc.Lifestyle,
				Feasible:  false,
				Reason:    domain.Reason(err),
			}
		}
		comparison.Scenarios = append(comparison.Scenarios, *res)
	}
	return comparison, nil
}

// SweepHorizons re-runs a scenario for every horizon from..to in steps of
// step years and reports capacity against the total goal target.
func (ce *CalculationEngine) SweepHorizons(ctx context.Context, cfg *domain.Configuration, scenario *domain.Scenario, from, to, step int) ([]domain.HorizonPoint, error) {
	if from <= 0 || to < from || step <= 0 {
		return nil, fmt.Errorf("%w: sweep %d..%d step %d", domain.ErrInvalidHorizon, from, to, step)
	}
	goals, err := scenario.GoalsFor(cfg.Goals)
	if err != nil {
		return nil, err
	}
	minPercent := cfg.Assumptions.EffectiveMinPercent()

	var points []domain.HorizonPoint
	for h := from; h <= to; h += step {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		surplus, err := ce.SurplusCalc.Calculate(surplusInput(cfg, scenario, h))
		if err != nil {
			return nil, fmt.Errorf("horizon %d: %w", h, err)
		}
		alloc, err := Allocate(surplus.FeasibleCapacity, goals, minPercent)
		if err != nil {
			return nil, fmt.Errorf("horizon %d: %w", h, err)
		}
		points = append(points, domain.HorizonPoint{
			HorizonYears:     h,
			FeasibleCapacity: surplus.FeasibleCapacity,
			TotalAllocated:   alloc.Total,
			Shortfall:        alloc.TotalTarget.Sub(alloc.Total),
			FullySatisfied:   alloc.FullySatisfied,
		})
		ce.Logger.Debugf("sweep: %d years capacity=%s", h, surplus.FeasibleCapacity.StringFixed(2))
	}
	return points, nil
}
