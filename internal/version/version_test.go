package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int {
	return &n
}

func TestParse_ValidVersions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Version
	}{
		{
			"plain triplet",
			"1.2.3",
			Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			"zero version",
			"0.0.0",
			Version{},
		},
		{
			"with suffix",
			"1.2.3-dev",
			Version{Major: 1, Minor: 2, Patch: 3, Suffix: "dev"},
		},
		{
			"with suffix and counter",
			"1.2.3-dev4",
			Version{Major: 1, Minor: 2, Patch: 3, Suffix: "dev", SuffixNumber: intPtr(4)},
		},
		{
			"rc suffix",
			"2.0.0-rc1",
			Version{Major: 2, Minor: 0, Patch: 0, Suffix: "rc", SuffixNumber: intPtr(1)},
		},
		{
			"multi-digit segments",
			"10.20.30-beta12",
			Version{Major: 10, Minor: 20, Patch: 30, Suffix: "beta", SuffixNumber: intPtr(12)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse_InvalidVersions(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"missing patch", "1.2"},
		{"major only", "1"},
		{"non-numeric major", "a.2.3"},
		{"non-numeric patch", "1.2.x"},
		{"negative minor", "1.-2.3"},
		{"empty suffix", "1.2.3-"},
		{"numeric-only suffix", "1.2.3-4"},
		{"garbage", "not a version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, tt.input, parseErr.Input)
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	inputs := []string{
		"0.0.0",
		"1.2.3",
		"1.2.3-dev",
		"1.2.3-dev4",
		"10.0.1-rc2",
	}
	for _, s := range inputs {
		v, err := Parse(s)
		require.NoError(t, err)
		require.Equal(t, s, v.String())
	}
}

func TestBump_ResetsLowerParts(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3, Suffix: "dev", SuffixNumber: intPtr(4)}

	tests := []struct {
		name string
		part Part
		want Version
	}{
		{"major resets minor and patch", PartMajor, Version{Major: 2}},
		{"minor resets patch", PartMinor, Version{Major: 1, Minor: 3}},
		{"patch keeps major and minor", PartPatch, Version{Major: 1, Minor: 2, Patch: 4}},
		{"none keeps triplet", PartNone, Version{Major: 1, Minor: 2, Patch: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Bump(tt.part, "")
			require.Equal(t, tt.want, got)
			require.Empty(t, got.Suffix)
			require.Nil(t, got.SuffixNumber)
		})
	}
}

func TestBump_WithSuffixRequest(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3, Suffix: "dev", SuffixNumber: intPtr(2)}

	got := v.Bump(PartMinor, "rc")
	require.Equal(t, Version{Major: 1, Minor: 3, Suffix: "rc"}, got)
	require.Nil(t, got.SuffixNumber)

	// An empty suffix request behaves like no request at all.
	require.Equal(t, Version{Major: 1, Minor: 3}, v.Bump(PartMinor, ""))
}

func TestBump_Monotonic(t *testing.T) {
	versions := []string{"0.0.0", "1.2.3", "1.2.3-dev4", "9.9.9-rc1"}
	parts := []Part{PartPatch, PartMinor, PartMajor}

	for _, s := range versions {
		v, err := Parse(s)
		require.NoError(t, err)
		for _, p := range parts {
			bumped := v.Bump(p, "")
			require.Positive(t, bumped.Compare(v), "bump %s of %s", p, s)
		}
	}
}

func TestWithSuffix(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3}

	dev := v.WithSuffix("dev", nil)
	require.Equal(t, "1.2.3-dev", dev.String())

	numbered := v.WithSuffix("dev", intPtr(1))
	require.Equal(t, "1.2.3-dev1", numbered.String())

	// Clearing via empty suffix drops the counter too.
	cleared := numbered.WithSuffix("", intPtr(9))
	require.Equal(t, "1.2.3", cleared.String())
	require.Nil(t, cleared.SuffixNumber)
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.2.3-dev4", "1.2.3"},
		{"1.2.3-rc", "1.2.3"},
		{"1.2.3", "1.2.3"},
	}
	for _, tt := range tests {
		v, err := Parse(tt.input)
		require.NoError(t, err)
		final := v.Finalize()
		require.Equal(t, tt.want, final.String())
		require.True(t, final.IsFinal())
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "1.2.3", "1.2.3", 0},
		{"major dominates", "2.0.0", "1.9.9", 1},
		{"minor dominates", "1.3.0", "1.2.9", 1},
		{"patch dominates", "1.2.4", "1.2.3", 1},
		{"pre-release before final", "1.2.3-dev", "1.2.3", -1},
		{"final after pre-release", "1.2.3", "1.2.3-rc9", 1},
		{"suffix lexicographic", "1.2.3-alpha", "1.2.3-beta", -1},
		{"counter numeric", "1.2.3-dev2", "1.2.3-dev10", -1},
		{"missing counter sorts first", "1.2.3-dev", "1.2.3-dev1", -1},
		{"equal suffixed", "1.2.3-dev4", "1.2.3-dev4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.a)
			require.NoError(t, err)
			b, err := Parse(tt.b)
			require.NoError(t, err)

			got := a.Compare(b)
			switch tt.want {
			case 0:
				require.Zero(t, got)
			case 1:
				require.Positive(t, got)
			case -1:
				require.Negative(t, got)
			}
			require.Equal(t, -got, b.Compare(a))
		})
	}
}
