package dist

import (
	"qqfit/domain/core"
)

// Family identifies one member of the closed set of supported distribution
// families. Selection happens once, at the configuration boundary; past that
// point behavior is carried by the concrete Distribution variants, never by
// tag matching.
type Family int

const (
	FamilyNormal Family = iota
	FamilyBurr
	FamilyGamma
	// FamilyDemo is the reserved diagnostic mode: a fixed standard normal
	// that bypasses fitting and the parameter cache entirely.
	FamilyDemo
)

// familyTags are the configuration spellings, also used in cache keys and
// output file names.
var familyTags = map[Family]string{
	FamilyNormal: "normal",
	FamilyBurr:   "burr",
	FamilyGamma:  "gamma",
	FamilyDemo:   "demo",
}

// familyArity is the fixed parameter-vector length per family
var familyArity = map[Family]int{
	FamilyNormal: 2, // mu, sigma
	FamilyBurr:   3, // c, k, lambda
	FamilyGamma:  2, // alpha, beta
	FamilyDemo:   0, // fixed standard normal, never parameterized
}

// familyParamNames labels the parameter vector positions per family
var familyParamNames = map[Family][]string{
	FamilyNormal: {"mu", "sigma"},
	FamilyBurr:   {"c", "k", "lambda"},
	FamilyGamma:  {"alpha", "beta"},
	FamilyDemo:   {},
}

// String returns the canonical tag
func (f Family) String() string {
	if tag, ok := familyTags[f]; ok {
		return tag
	}
	return "unknown"
}

// Arity returns the expected parameter-vector length
func (f Family) Arity() int {
	return familyArity[f]
}

// ParamNames returns the positional labels of the parameter vector
func (f Family) ParamNames() []string {
	names := familyParamNames[f]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// IsFitted reports whether the family goes through estimation and caching.
// Demo does not: it always resolves to the fixed standard normal.
func (f Family) IsFitted() bool {
	return f != FamilyDemo
}

// ParseFamily resolves a configuration tag against the closed enumeration
func ParseFamily(tag string) (Family, error) {
	for family, t := range familyTags {
		if t == tag {
			return family, nil
		}
	}
	return 0, core.NewUnknownFamilyError(tag)
}

// Families lists the supported families in declaration order
func Families() []Family {
	return []Family{FamilyNormal, FamilyBurr, FamilyGamma, FamilyDemo}
}
