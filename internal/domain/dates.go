package domain

// RelativeDateType identifies how a RelativeDate's value is interpreted.
type RelativeDateType string

const (
	RelativeYear           RelativeDateType = "Year"
	RelativeAge            RelativeDateType = "Age"
	RelativeRetirement     RelativeDateType = "Retirement"
	RelativeLifeExpectancy RelativeDateType = "LifeExpectancy"
)

// RelativeDate is a symbolic year reference: an absolute calendar year, an
// age, or an offset from the retirement or life-expectancy year. Offsets for
// the Retirement and LifeExpectancy types are clamped to [-5, +5] by the
// input layer before they reach the engine.
type RelativeDate struct {
	Type  RelativeDateType `yaml:"type" json:"type"`
	Value int              `yaml:"value" json:"value"`
}

// Resolve converts a RelativeDate to a concrete calendar year. Unknown types
// fall back to returning Value unchanged.
func (rd RelativeDate) Resolve(birthYear, retirementAge, lifeExpectancy int) int {
	switch rd.Type {
	case RelativeYear:
		return rd.Value
	case RelativeAge:
		return birthYear + rd.Value
	case RelativeRetirement:
		return birthYear + retirementAge + rd.Value
	case RelativeLifeExpectancy:
		return birthYear + lifeExpectancy + rd.Value
	default:
		return rd.Value
	}
}
