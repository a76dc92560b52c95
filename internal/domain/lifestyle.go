package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Category identifies one lifestyle question.
type Category string

const (
	CategoryJobStability      Category = "job_stability"
	CategoryHealthRoutine     Category = "health_routine"
	CategoryAirQuality        Category = "air_quality"
	CategoryLivingArrangement Category = "living_arrangement"
	CategoryWorkStyle         Category = "work_style"
)

// Categories lists every lifestyle category in presentation order.
func Categories() []Category {
	return []Category{
		CategoryJobStability,
		CategoryHealthRoutine,
		CategoryAirQuality,
		CategoryLivingArrangement,
		CategoryWorkStyle,
	}
}

// Delta is the signed fractional adjustment a lifestyle choice applies.
// Positive income deltas reduce income; positive expense deltas raise expenses.
type Delta struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Add returns the component-wise sum of two deltas.
func (d Delta) Add(other Delta) Delta {
	return Delta{Income: d.Income.Add(other.Income), Expense: d.Expense.Add(other.Expense)}
}

// Option is a selectable lifestyle value with a human-readable label.
type Option struct {
	Value string
	Label string
	Delta Delta
}

type choice[T ~string] struct {
	value T
	label string
	delta Delta
}

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func incomeDelta(s string) Delta  { return Delta{Income: pct(s), Expense: decimal.Zero} }
func expenseDelta(s string) Delta { return Delta{Income: decimal.Zero, Expense: pct(s)} }

func lookup[T ~string](table []choice[T], v T) (choice[T], bool) {
	for _, c := range table {
		if c.value == v {
			return c, true
		}
	}
	return choice[T]{}, false
}

func parseChoice[T ~string](cat Category, table []choice[T], s string) (T, error) {
	if s == "" {
		return "", nil
	}
	if c, ok := lookup(table, T(s)); ok {
		return c.value, nil
	}
	return "", fmt.Errorf("%w: %s %q", ErrUnknownLifestyleChoice, cat, s)
}

// scalarChoice reads a lifestyle selection from YAML. Lists and maps are
// rejected rather than read as "not selected".
func scalarChoice(cat Category, value *yaml.Node) (string, error) {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	if value.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: %s must be a single value, got %s", ErrUnknownLifestyleChoice, cat, value.ShortTag())
	}
	return value.Value, nil
}

func options[T ~string](table []choice[T]) []Option {
	out := make([]Option, 0, len(table))
	for _, c := range table {
		out = append(out, Option{Value: string(c.value), Label: c.label, Delta: c.delta})
	}
	return out
}

// JobStability describes career satisfaction and stability.
type JobStability string

const (
	JobStable           JobStability = "stable"
	JobSomewhatUnstable JobStability = "somewhat_unstable"
	JobHighlyUnstable   JobStability = "highly_unstable"
)

var jobStabilityTable = []choice[JobStability]{
	{JobStable, "High satisfaction, stable (0% income penalty)", Delta{Income: decimal.Zero, Expense: decimal.Zero}},
	{JobSomewhatUnstable, "Moderate satisfaction (5% income penalty)", incomeDelta("0.05")},
	{JobHighlyUnstable, "Low satisfaction, unstable (12% income penalty)", incomeDelta("0.12")},
}

// ParseJobStability validates s; an empty string means no selection.
func ParseJobStability(s string) (JobStability, error) {
	return parseChoice(CategoryJobStability, jobStabilityTable, s)
}

func (j JobStability) Delta() Delta {
	c, _ := lookup(jobStabilityTable, j)
	return c.delta
}

func (j *JobStability) UnmarshalYAML(value *yaml.Node) error {
	scalar, err := scalarChoice(CategoryJobStability, value)
	if err != nil {
		return err
	}
	v, err := ParseJobStability(scalar)
	if err != nil {
		return err
	}
	*j = v
	return nil
}

// HealthRoutine describes exercise and sleep habits.
type HealthRoutine string

const (
	HealthRegular   HealthRoutine = "regular"
	HealthIrregular HealthRoutine = "irregular"
	HealthPoor      HealthRoutine = "poor"
)

var healthRoutineTable = []choice[HealthRoutine]{
	{HealthRegular, "Regular exercise and good sleep (0% penalty)", Delta{Income: decimal.Zero, Expense: decimal.Zero}},
	{HealthIrregular, "Irregular routine (5% income penalty)", incomeDelta("0.05")},
	{HealthPoor, "Poor health habits (10% income penalty)", incomeDelta("0.10")},
}

func ParseHealthRoutine(s string) (HealthRoutine, error) {
	return parseChoice(CategoryHealthRoutine, healthRoutineTable, s)
}

func (h HealthRoutine) Delta() Delta {
	c, _ := lookup(healthRoutineTable, h)
	return c.delta
}

func (h *HealthRoutine) UnmarshalYAML(value *yaml.Node) error {
	scalar, err := scalarChoice(CategoryHealthRoutine, value)
	if err != nil {
		return err
	}
	v, err := ParseHealthRoutine(scalar)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// AirQuality describes the air quality where the household lives.
type AirQuality string

const (
	AirGood     AirQuality = "good"
	AirModerate AirQuality = "moderate"
	AirPoor     AirQuality = "poor"
)

var airQualityTable = []choice[AirQuality]{
	{AirGood, "Good AQI most of the year (0% expense penalty)", Delta{Income: decimal.Zero, Expense: decimal.Zero}},
	{AirModerate, "Moderate AQI (4% expense penalty)", expenseDelta("0.04")},
	{AirPoor, "Poor AQI most of the year (8% expense penalty)", expenseDelta("0.08")},
}

func ParseAirQuality(s string) (AirQuality, error) {
	return parseChoice(CategoryAirQuality, airQualityTable, s)
}

func (a AirQuality) Delta() Delta {
	c, _ := lookup(airQualityTable, a)
	return c.delta
}

func (a *AirQuality) UnmarshalYAML(value *yaml.Node) error {
	scalar, err := scalarChoice(CategoryAirQuality, value)
	if err != nil {
		return err
	}
	v, err := ParseAirQuality(scalar)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// LivingArrangement describes whether the household lives with family.
type LivingArrangement string

const (
	LivingWithFamily LivingArrangement = "with_family"
	LivingAway       LivingArrangement = "away_from_family"
)

var livingArrangementTable = []choice[LivingArrangement]{
	{LivingWithFamily, "Living with family (5% lower expenses)", expenseDelta("-0.05")},
	{LivingAway, "Living away from family (5% higher expenses)", expenseDelta("0.05")},
}

func ParseLivingArrangement(s string) (LivingArrangement, error) {
	return parseChoice(CategoryLivingArrangement, livingArrangementTable, s)
}

func (l LivingArrangement) Delta() Delta {
	c, _ := lookup(livingArrangementTable, l)
	return c.delta
}

func (l *LivingArrangement) UnmarshalYAML(value *yaml.Node) error {
	scalar, err := scalarChoice(CategoryLivingArrangement, value)
	if err != nil {
		return err
	}
	v, err := ParseLivingArrangement(scalar)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// WorkStyle describes the household's work pattern.
type WorkStyle string

const (
	WorkBalanced   WorkStyle = "balanced"
	WorkAggressive WorkStyle = "aggressive"
	WorkBurnout    WorkStyle = "burnout"
)

var workStyleTable = []choice[WorkStyle]{
	{WorkBalanced, "Balanced and sustainable (0% penalty)", Delta{Income: decimal.Zero, Expense: decimal.Zero}},
	{WorkAggressive, "Aggressive long hours (8% income boost)", incomeDelta("-0.08")},
	{WorkBurnout, "Frequent burnout cycles (12% income penalty)", incomeDelta("0.12")},
}

func ParseWorkStyle(s string) (WorkStyle, error) {
	return parseChoice(CategoryWorkStyle, workStyleTable, s)
}

func (w WorkStyle) Delta() Delta {
	c, _ := lookup(workStyleTable, w)
	return c.delta
}

func (w *WorkStyle) UnmarshalYAML(value *yaml.Node) error {
	scalar, err := scalarChoice(CategoryWorkStyle, value)
	if err != nil {
		return err
	}
	v, err := ParseWorkStyle(scalar)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// Lifestyle holds at most one selection per category. Unset categories
// contribute nothing.
type Lifestyle struct {
	JobStability      JobStability      `yaml:"job_stability,omitempty" json:"job_stability,omitempty"`
	HealthRoutine     HealthRoutine     `yaml:"health_routine,omitempty" json:"health_routine,omitempty"`
	AirQuality        AirQuality        `yaml:"air_quality,omitempty" json:"air_quality,omitempty"`
	LivingArrangement LivingArrangement `yaml:"living_arrangement,omitempty" json:"living_arrangement,omitempty"`
	WorkStyle         WorkStyle         `yaml:"work_style,omitempty" json:"work_style,omitempty"`
}

// Penalties accumulates the income and expense deltas of every selection.
func (l Lifestyle) Penalties() Delta {
	total := Delta{Income: decimal.Zero, Expense: decimal.Zero}
	total = total.Add(l.JobStability.Delta())
	total = total.Add(l.HealthRoutine.Delta())
	total = total.Add(l.AirQuality.Delta())
	total = total.Add(l.LivingArrangement.Delta())
	total = total.Add(l.WorkStyle.Delta())
	return total
}

// Set assigns the selection for a category from its string value.
func (l *Lifestyle) Set(cat Category, value string) error {
	var err error
	switch cat {
	case CategoryJobStability:
		l.JobStability, err = ParseJobStability(value)
	case CategoryHealthRoutine:
		l.HealthRoutine, err = ParseHealthRoutine(value)
	case CategoryAirQuality:
		l.AirQuality, err = ParseAirQuality(value)
	case CategoryLivingArrangement:
		l.LivingArrangement, err = ParseLivingArrangement(value)
	case CategoryWorkStyle:
		l.WorkStyle, err = ParseWorkStyle(value)
	default:
		return fmt.Errorf("%w: unknown category %q", ErrUnknownLifestyleChoice, cat)
	}
	return err
}

// Options returns the selectable values for a category in presentation order.
func Options(cat Category) []Option {
	switch cat {
	case CategoryJobStability:
		return options(jobStabilityTable)
	case CategoryHealthRoutine:
		return options(healthRoutineTable)
	case CategoryAirQuality:
		return options(airQualityTable)
	case CategoryLivingArrangement:
		return options(livingArrangementTable)
	case CategoryWorkStyle:
		return options(workStyleTable)
	}
	return nil
}

// Title returns the question shown for a category.
func (c Category) Title() string {
	switch c {
	case CategoryJobStability:
		return "Career satisfaction and stability"
	case CategoryHealthRoutine:
		return "Health and exercise routine"
	case CategoryAirQuality:
		return "Air quality of your living environment"
	case CategoryLivingArrangement:
		return "Living arrangement"
	case CategoryWorkStyle:
		return "Work pattern"
	}
	return string(c)
}
