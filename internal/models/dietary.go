package models

import "strings"

// DefaultDietType is used when a request does not name a diet.
const DefaultDietType = "Veg"

// DietKind enumerates the diet categories the planner knows how to steer.
type DietKind int

const (
	// DietUnrecognized is any diet name outside the known set. Such requests
	// still proceed, just without guidelines or screening.
	DietUnrecognized DietKind = iota
	DietVeg
	DietVegan
	DietNonVeg
)

// DietType is a parsed dietary preference. Name holds the lowercased value the
// client sent so unrecognized diets can still be named in the prompt.
type DietType struct {
	Kind DietKind
	Name string
}

// ParseDietType lowercases raw and maps it onto a known diet kind.
func ParseDietType(raw string) DietType {
	name := strings.ToLower(raw)
	switch name {
	case "veg":
		return DietType{Kind: DietVeg, Name: name}
	case "vegan":
		return DietType{Kind: DietVegan, Name: name}
	case "nonveg":
		return DietType{Kind: DietNonVeg, Name: name}
	default:
		return DietType{Kind: DietUnrecognized, Name: name}
	}
}

// Recognized reports whether the diet is one of veg, vegan or nonveg.
func (d DietType) Recognized() bool {
	return d.Kind != DietUnrecognized
}

func (d DietType) String() string {
	return d.Name
}

// Label is the human-readable adjective used in compliance messages.
func (d DietType) Label() string {
	switch d.Kind {
	case DietVeg:
		return "vegetarian"
	case DietVegan:
		return "vegan"
	case DietNonVeg:
		return "non-vegetarian"
	default:
		return d.Name
	}
}

// Guidelines returns the instruction block embedded in the prompt for this
// diet. Unrecognized diets get an empty block.
func (d DietType) Guidelines() string {
	return dietGuidelines[d.Kind]
}

// Denylist returns the food terms that disqualify a generated plan for this
// diet. Nonveg and unrecognized diets have no denylist.
func (d DietType) Denylist() []string {
	return denylists[d.Kind]
}

var dietGuidelines = map[DietKind]string{
	DietVeg: `
STRICT DIETARY RULES (VEGETARIAN):
- ❌ FORBIDDEN: All meat, poultry, fish, and seafood
- ✅ ALLOWED: Dairy products, eggs, plant-based foods
- Every meal MUST comply with vegetarian restrictions
`,
	DietVegan: `
STRICT DIETARY RULES (VEGAN):
- ❌ FORBIDDEN: All animal products (meat, fish, dairy, eggs, honey)
- ✅ ALLOWED: Only plant-based foods (vegetables, fruits, grains, legumes, nuts, seeds)
- Every meal MUST comply with vegan restrictions
- Double-check all ingredients to ensure no animal derivatives
`,
	DietNonVeg: `
DIETARY RULES (NON-VEGETARIAN):
- ✅ ALLOWED: All foods including meat, poultry, fish, eggs, and dairy
- Include a balanced mix of protein sources
`,
}

var denylists = map[DietKind][]string{
	DietVeg:   {"chicken", "beef", "pork", "fish", "salmon", "tuna", "meat", "seafood"},
	DietVegan: {"milk", "cheese", "yogurt", "cream", "butter", "egg", "honey", "chicken", "beef", "pork", "fish"},
}
