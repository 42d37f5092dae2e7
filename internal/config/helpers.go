package config

import "github.com/bumpr-dev/bumpr/internal/version"

func stringPtr(s string) *string        { return &s }
func boolPtr(b bool) *bool              { return &b }
func strSlicePtr(ss []string) *[]string { return &ss }

func partPtr(p version.Part) *version.Part {
	return &p
}
