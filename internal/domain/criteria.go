package domain

import "fmt"

type RoleCategory string

const (
	RoleInternship RoleCategory = "internship"
	RoleEntryLevel RoleCategory = "entry_level"
	RoleBoth       RoleCategory = "both"
)

type Season string

const (
	SeasonFall2025   Season = "fall2025"
	SeasonSpring2026 Season = "spring2026"
	SeasonSummer2026 Season = "summer2026"
	SeasonAny        Season = "any"
)

type LocationMode string

const (
	OnSiteOnly    LocationMode = "onsite_only"
	RemoteOnly    LocationMode = "remote_only"
	IncludeRemote LocationMode = "include_remote"
)

// SearchCriteria is immutable per search invocation. Zero enum values are
// normalized by Normalize, not treated as errors.
type SearchCriteria struct {
	Keywords     string       `json:"keywords"`
	Location     string       `json:"location,omitempty"`
	RoleCategory RoleCategory `json:"role_category"`
	Season       Season       `json:"season"`
	LocationMode LocationMode `json:"location_mode"`
}

func ParseRoleCategory(s string) (RoleCategory, error) {
	switch RoleCategory(s) {
	case RoleInternship, RoleEntryLevel, RoleBoth:
		return RoleCategory(s), nil
	}
	return "", fmt.Errorf("unknown role category %q", s)
}

func ParseSeason(s string) (Season, error) {
	switch Season(s) {
	case SeasonFall2025, SeasonSpring2026, SeasonSummer2026, SeasonAny:
		return Season(s), nil
	}
	return "", fmt.Errorf("unknown season %q", s)
}

func ParseLocationMode(s string) (LocationMode, error) {
	switch LocationMode(s) {
	case OnSiteOnly, RemoteOnly, IncludeRemote:
		return LocationMode(s), nil
	}
	return "", fmt.Errorf("unknown location mode %q", s)
}

// Normalize fills unset enum fields with their defaults so that handlers
// and the query builder never see empty values.
func (c SearchCriteria) Normalize() SearchCriteria {
	if c.RoleCategory == "" {
		c.RoleCategory = RoleBoth
	}
	if c.Season == "" {
		c.Season = SeasonAny
	}
	if c.LocationMode == "" {
		c.LocationMode = IncludeRemote
	}
	return c
}

func (c SearchCriteria) Validate() error {
	if _, err := ParseRoleCategory(string(c.RoleCategory)); err != nil {
		return err
	}
	if _, err := ParseSeason(string(c.Season)); err != nil {
		return err
	}
	if _, err := ParseLocationMode(string(c.LocationMode)); err != nil {
		return err
	}
	return nil
}
