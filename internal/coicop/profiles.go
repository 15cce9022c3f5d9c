package coicop

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a synthetic household archetype: a mapping from COICOP
// category to the fraction of that household's spending it absorbs.
// Weights are editorial constants, not fitted to the loaded data, and
// each must lie in [0,1]. They are not required to sum to 1 across
// categories; the burden index only sums over categories present in
// both the profile and the computed change set.
type Profile struct {
	Name    string             `yaml:"name"`
	Weights map[string]float64 `yaml:"weights"`
}

// DefaultProfiles are the six archetypes shipped with the dashboard.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name: "Young Renter",
			Weights: map[string]float64{
				"Housing, water, electricity, gas and other fuels (COICOP 04)": 0.35,
				"Food and non-alcoholic beverages (COICOP 01)":                 0.12,
				"Transport (COICOP 07)":              0.10,
				"Restaurants and hotels (COICOP 11)": 0.12,
				"Recreation and culture (COICOP 09)": 0.10,
				"Communications (COICOP 08)":         0.04,
			},
		},
		{
			Name: "Family with Children",
			Weights: map[string]float64{
				"Food and non-alcoholic beverages (COICOP 01)":                 0.18,
				"Housing, water, electricity, gas and other fuels (COICOP 04)": 0.25,
				"Transport (COICOP 07)":              0.14,
				"Education (COICOP 10)":              0.08,
				"Health (COICOP 06)":                 0.06,
				"Recreation and culture (COICOP 09)": 0.08,
			},
		},
		{
			Name: "Retired Couple",
			Weights: map[string]float64{
				"Food and non-alcoholic beverages (COICOP 01)":                 0.16,
				"Housing, water, electricity, gas and other fuels (COICOP 04)": 0.28,
				"Health (COICOP 06)":                           0.14,
				"Recreation and culture (COICOP 09)":           0.08,
				"Transport (COICOP 07)":                        0.07,
				"Miscellaneous goods and services (COICOP 12)": 0.08,
			},
		},
		{
			Name: "Student",
			Weights: map[string]float64{
				"Housing, water, electricity, gas and other fuels (COICOP 04)": 0.40,
				"Food and non-alcoholic beverages (COICOP 01)":                 0.15,
				"Education (COICOP 10)":              0.12,
				"Communications (COICOP 08)":         0.05,
				"Recreation and culture (COICOP 09)": 0.10,
				"Restaurants and hotels (COICOP 11)": 0.08,
			},
		},
		{
			Name: "Rural Household",
			Weights: map[string]float64{
				"Transport (COICOP 07)": 0.20,
				"Food and non-alcoholic beverages (COICOP 01)":                 0.17,
				"Housing, water, electricity, gas and other fuels (COICOP 04)": 0.22,
				"Health (COICOP 06)": 0.07,
				"Furnishings, household equipment and routine household maintenance (COICOP 05)": 0.06,
				"Alcoholic beverages, tobacco and narcotics (COICOP 02)":                         0.05,
			},
		},
		{
			Name: "Urban Professional",
			Weights: map[string]float64{
				"Housing, water, electricity, gas and other fuels (COICOP 04)": 0.30,
				"Restaurants and hotels (COICOP 11)":           0.14,
				"Transport (COICOP 07)":                        0.10,
				"Recreation and culture (COICOP 09)":           0.12,
				"Food and non-alcoholic beverages (COICOP 01)": 0.11,
				"Clothing and footwear (COICOP 03)":            0.06,
			},
		},
	}
}

// LoadProfiles reads archetype profiles from a YAML file, replacing the
// defaults. An empty path returns the defaults.
func LoadProfiles(path string) ([]Profile, error) {
	if path == "" {
		return DefaultProfiles(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}
	var doc struct {
		Profiles []Profile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse profiles file: %w", err)
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("profiles file %s defines no profiles", path)
	}
	for _, p := range doc.Profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
	}
	return doc.Profiles, nil
}

// Validate checks the profile name and weight ranges.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("empty profile name")
	}
	if len(p.Weights) == 0 {
		return fmt.Errorf("no weights")
	}
	for cat, w := range p.Weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("weight %.3f for %q outside [0,1]", w, cat)
		}
	}
	return nil
}
