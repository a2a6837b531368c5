package mapping

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/tariffmill/internal/model"
)

// Mapper reads invoice CSV files against one profile.
type Mapper struct {
	profile Profile
}

// NewMapper creates a mapper for the given profile.
func NewMapper(profile Profile) *Mapper {
	return &Mapper{profile: profile}
}

// Read decodes an invoice CSV into ordered line items. The first row
// must be a header; matching is case-insensitive on trimmed names.
// A row with an unparsable value is a mapping error for the whole file:
// better to stop at the edge than feed a financial pipeline guesses.
func (m *Mapper) Read(r io.Reader) ([]model.LineItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := m.profile.Columns
	partCol, ok := index[strings.ToLower(cols.PartNumber)]
	if !ok {
		return nil, fmt.Errorf("profile %q: part number column %q not found in header", m.profile.Name, cols.PartNumber)
	}
	valueCol, ok := index[strings.ToLower(cols.Value)]
	if !ok {
		return nil, fmt.Errorf("profile %q: value column %q not found in header", m.profile.Name, cols.Value)
	}
	descCol, hasDesc := index[strings.ToLower(cols.Description)]
	qtyCol, hasQty := index[strings.ToLower(cols.Quantity)]
	weightCol, hasWeight := index[strings.ToLower(cols.NetWeight)]

	var items []model.LineItem
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		item := model.LineItem{
			Number:     len(items) + 1,
			PartNumber: strings.TrimSpace(record[partCol]),
		}

		item.Value, err = parseDecimal(record[valueCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid value %q: %w", row, record[valueCol], err)
		}
		if hasDesc && descCol < len(record) {
			item.Description = strings.TrimSpace(record[descCol])
		}
		if hasQty && qtyCol < len(record) {
			item.Quantity, err = parseDecimal(record[qtyCol])
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid quantity %q: %w", row, record[qtyCol], err)
			}
		}
		if hasWeight && weightCol < len(record) {
			item.NetWeight, err = parseDecimal(record[weightCol])
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid net weight %q: %w", row, record[weightCol], err)
			}
		}

		items = append(items, item)
	}

	return items, nil
}

// parseDecimal accepts invoice-style numbers: optional currency symbol,
// thousands separators, blank meaning zero.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
