package version

import (
	"regexp"
	"strconv"
	"strings"
)

var versionRegex = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-(.+))?$`)

// ParseError reports a version string that does not match the
// MAJOR.MINOR.PATCH[-SUFFIX[N]] grammar.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return "invalid version " + strconv.Quote(e.Input) + ": " + e.Reason
}

// Version represents a structured version.
// This type is immutable — all methods return new values.
type Version struct {
	Major        int
	Minor        int
	Patch        int
	Suffix       string
	SuffixNumber *int
}

// Parse parses a version string of the form MAJOR.MINOR.PATCH with an
// optional -SUFFIX segment, where the suffix is a textual label
// optionally followed by a trailing counter (e.g. "1.2.3-dev4").
func Parse(s string) (Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, &ParseError{Input: s, Reason: "expected MAJOR.MINOR.PATCH"}
	}

	var v Version

	major, err := strconv.Atoi(matches[1])
	if err != nil {
		return Version{}, &ParseError{Input: s, Reason: "invalid major segment"}
	}
	v.Major = major

	minor, err := strconv.Atoi(matches[2])
	if err != nil {
		return Version{}, &ParseError{Input: s, Reason: "invalid minor segment"}
	}
	v.Minor = minor

	patch, err := strconv.Atoi(matches[3])
	if err != nil {
		return Version{}, &ParseError{Input: s, Reason: "invalid patch segment"}
	}
	v.Patch = patch

	if matches[4] != "" {
		suffix, number, ok := parseSuffix(matches[4])
		if !ok {
			return Version{}, &ParseError{Input: s, Reason: "suffix requires a textual label"}
		}
		v.Suffix = suffix
		v.SuffixNumber = number
	}

	return v, nil
}

// parseSuffix splits a suffix segment into its label and trailing
// counter. The label is required: a purely numeric segment is invalid.
func parseSuffix(s string) (string, *int, bool) {
	trimmed := strings.TrimRightFunc(s, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	if trimmed == "" {
		return "", nil, false
	}
	if trimmed == s {
		return s, nil, true
	}
	n, err := strconv.Atoi(s[len(trimmed):])
	if err != nil {
		return "", nil, false
	}
	return trimmed, &n, true
}

// IsFinal returns true when the version carries no pre-release suffix.
func (v Version) IsFinal() bool {
	return v.Suffix == ""
}

// Bump increments the given part and zeroes every part of lower
// significance. The suffix is cleared unless a non-empty replacement
// is supplied; the suffix counter is never carried over.
func (v Version) Bump(part Part, suffix string) Version {
	var next Version
	switch part {
	case PartMajor:
		next = Version{Major: v.Major + 1}
	case PartMinor:
		next = Version{Major: v.Major, Minor: v.Minor + 1}
	case PartPatch:
		next = Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		next = Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	}
	next.Suffix = suffix
	return next
}

// WithSuffix sets or clears the suffix and its counter without
// touching the numeric triplet.
func (v Version) WithSuffix(suffix string, number *int) Version {
	if suffix == "" {
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	}
	return Version{
		Major:        v.Major,
		Minor:        v.Minor,
		Patch:        v.Patch,
		Suffix:       suffix,
		SuffixNumber: number,
	}
}

// Finalize clears the suffix and its counter, turning a pre-release
// version into a release one.
func (v Version) Finalize() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// String renders the version; the inverse of Parse.
func (v Version) String() string {
	s := strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
	if v.Suffix == "" {
		return s
	}
	s += "-" + v.Suffix
	if v.SuffixNumber != nil {
		s += strconv.Itoa(*v.SuffixNumber)
	}
	return s
}

// Compare orders two versions. Returns a negative value, zero, or a
// positive value. For equal triplets a suffixed version sorts before
// the final one; suffixed versions compare by label then counter.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major > other.Major {
			return 1
		}
		return -1
	}
	if v.Minor != other.Minor {
		if v.Minor > other.Minor {
			return 1
		}
		return -1
	}
	if v.Patch != other.Patch {
		if v.Patch > other.Patch {
			return 1
		}
		return -1
	}

	if v.Suffix == "" && other.Suffix == "" {
		return 0
	}
	if v.Suffix == "" {
		return 1 // final > pre-release
	}
	if other.Suffix == "" {
		return -1
	}

	if c := strings.Compare(v.Suffix, other.Suffix); c != 0 {
		return c
	}

	vNum, oNum := 0, 0
	if v.SuffixNumber != nil {
		vNum = *v.SuffixNumber
	}
	if other.SuffixNumber != nil {
		oNum = *other.SuffixNumber
	}
	switch {
	case vNum < oNum:
		return -1
	case vNum > oNum:
		return 1
	default:
		return 0
	}
}
