// Package version provides the structured version model used by bumpr:
// a numeric triplet plus an optional pre-release suffix with counter.
package version

import "fmt"

// Part identifies which component of a version a bump applies to.
type Part int

const (
	PartNone Part = iota
	PartPatch
	PartMinor
	PartMajor
)

func (p Part) String() string {
	switch p {
	case PartNone:
		return "none"
	case PartPatch:
		return "patch"
	case PartMinor:
		return "minor"
	case PartMajor:
		return "major"
	default:
		return "unknown"
	}
}

// ParsePart converts a configuration value into a Part.
// The empty string maps to PartNone.
func ParsePart(s string) (Part, error) {
	switch s {
	case "":
		return PartNone, nil
	case "patch":
		return PartPatch, nil
	case "minor":
		return PartMinor, nil
	case "major":
		return PartMajor, nil
	default:
		return PartNone, fmt.Errorf("unknown version part %q", s)
	}
}
