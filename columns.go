package main

import "strings"

// ColumnMapping records which columns of a table hold the medicine name and
// the price. A value of -1 means the role could not be resolved from the
// header row.
type ColumnMapping struct {
	NameCol  int
	PriceCol int
}

func emptyColumnMapping() ColumnMapping {
	return ColumnMapping{NameCol: -1, PriceCol: -1}
}

// HasName reports whether a name column was identified. Without it the row
// extractor falls back to pure heuristics.
func (m ColumnMapping) HasName() bool { return m.NameCol >= 0 }

// HasPrice reports whether a price column was identified.
func (m ColumnMapping) HasPrice() bool { return m.PriceCol >= 0 }

// identifyColumns resolves name and price columns from a header row in a
// single left-to-right pass. Each role is claimed at most once, a column can
// serve only one role, and alias priority decides within a cell.
func identifyColumns(header []string, nameAliases, priceAliases []string) ColumnMapping {
	mapping := emptyColumnMapping()

	for i, cell := range header {
		if cell == "" {
			continue
		}
		clean := strings.ToLower(strings.TrimSpace(cell))

		if mapping.NameCol < 0 && i != mapping.PriceCol {
			for _, alias := range nameAliases {
				if strings.Contains(clean, alias) {
					mapping.NameCol = i
					break
				}
			}
		}

		if mapping.PriceCol < 0 && i != mapping.NameCol {
			for _, alias := range priceAliases {
				if strings.Contains(clean, alias) {
					mapping.PriceCol = i
					break
				}
			}
		}
	}

	return mapping
}

// usableHeader reports whether a candidate header row has any content worth
// mapping.
func usableHeader(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
