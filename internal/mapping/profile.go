// Package mapping turns raw invoice CSV rows into LineItems using named
// column profiles. Validation of raw columns lives here, at the edge;
// the pipeline only ever sees structured line items.
package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Columns names the CSV headers that carry each line item field.
// Quantity and net weight are optional dimensions; part number and
// value are required.
type Columns struct {
	PartNumber  string `yaml:"part_number"`
	Description string `yaml:"description"`
	Quantity    string `yaml:"quantity"`
	NetWeight   string `yaml:"net_weight"`
	Value       string `yaml:"value"`
}

// Profile is one named column mapping, externally maintained per
// supplier invoice layout.
type Profile struct {
	Name    string  `yaml:"name"`
	Columns Columns `yaml:"columns"`
}

// DefaultProfile matches the standard export layout.
func DefaultProfile() Profile {
	return Profile{
		Name: "default",
		Columns: Columns{
			PartNumber:  "part_number",
			Description: "description",
			Quantity:    "quantity",
			NetWeight:   "net_weight",
			Value:       "total_price",
		},
	}
}

// LoadProfile reads a profile from a YAML file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks that the required column names are present.
func (p Profile) Validate() error {
	if p.Columns.PartNumber == "" {
		return fmt.Errorf("profile %q: part_number column is required", p.Name)
	}
	if p.Columns.Value == "" {
		return fmt.Errorf("profile %q: value column is required", p.Name)
	}
	return nil
}
