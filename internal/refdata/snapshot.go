// Package refdata holds the read-only reference data this core works
// against: the parts database, the Section 301 exclusion set, and the
// declaration code table. Data is loaded into an immutable Snapshot;
// reloads swap the whole snapshot atomically so in-flight runs keep the
// snapshot they started with.
package refdata

import (
	"strings"
	"time"

	"github.com/rezonia/tariffmill/internal/model"
)

// Snapshot is an immutable view of the reference data. All lookups are
// in-memory and safe for concurrent use.
type Snapshot struct {
	parts      map[string]model.PartRecord
	exclusions map[string]struct{}
	codes      map[model.Material]model.DeclarationCode

	LoadedAt time.Time
}

// NewSnapshot builds a snapshot from loaded reference rows. Part numbers
// are trimmed on the way in: trailing whitespace in reference data is a
// known real-world defect and must not break lookups.
func NewSnapshot(parts []model.PartRecord, exclusions []string, codes []model.DeclarationCode) *Snapshot {
	s := &Snapshot{
		parts:      make(map[string]model.PartRecord, len(parts)),
		exclusions: make(map[string]struct{}, len(exclusions)),
		codes:      make(map[model.Material]model.DeclarationCode, len(codes)),
		LoadedAt:   time.Now().UTC(),
	}
	for _, p := range parts {
		key := strings.TrimSpace(p.PartNumber)
		if key == "" {
			continue
		}
		p.PartNumber = key
		s.parts[key] = p
	}
	for _, hts := range exclusions {
		hts = strings.TrimSpace(hts)
		if hts != "" {
			s.exclusions[hts] = struct{}{}
		}
	}
	for _, c := range codes {
		s.codes[c.Material] = c
	}
	return s
}

// Part resolves a part number to its reference record. Matching is
// exact and case-sensitive after trimming leading/trailing whitespace;
// no fuzzy matching. A miss is an expected outcome, not an error.
func (s *Snapshot) Part(partNumber string) (model.PartRecord, bool) {
	p, ok := s.parts[strings.TrimSpace(partNumber)]
	return p, ok
}

// Excluded reports whether the HTS code is on the Section 301 exclusion
// list. Exact match only; ranges must be enumerated by the source.
func (s *Snapshot) Excluded(htsCode string) bool {
	_, ok := s.exclusions[strings.TrimSpace(htsCode)]
	return ok
}

// Code returns the declaration code for a material.
func (s *Snapshot) Code(m model.Material) (model.DeclarationCode, bool) {
	c, ok := s.codes[m]
	return c, ok
}

// Codes returns the declaration code table in material priority order.
func (s *Snapshot) Codes() []model.DeclarationCode {
	out := make([]model.DeclarationCode, 0, len(s.codes))
	for _, m := range model.MaterialPriority {
		if c, ok := s.codes[m]; ok {
			out = append(out, c)
		}
	}
	return out
}

// PartCount returns the number of loaded parts.
func (s *Snapshot) PartCount() int {
	return len(s.parts)
}

// ExclusionCount returns the number of loaded exclusion codes.
func (s *Snapshot) ExclusionCount() int {
	return len(s.exclusions)
}

// SearchParts returns parts whose number or description contains the
// term, case-insensitive. Used by inspection tooling only.
func (s *Snapshot) SearchParts(term string) []model.PartRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var out []model.PartRecord
	for _, p := range s.parts {
		if strings.Contains(strings.ToLower(p.PartNumber), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			out = append(out, p)
		}
	}
	return out
}
