package main

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
)

// MedicineRecord is one extracted price listing. Provenance fields are only
// used for deduplication keys and display, never for comparison semantics.
type MedicineRecord struct {
	NamaObat   string  `json:"nama_obat"`
	Harga      float64 `json:"harga"`
	PBF        string  `json:"pbf"`
	Page       int     `json:"page"`
	TableIndex int     `json:"table_index"`
	TableID    string  `json:"table_id"`
	TableSide  string  `json:"table_side"`
	RowIndex   int     `json:"row_index"`

	NamaObatCleaned      string `json:"nama_obat_cleaned,omitempty"`
	NamaObatStandardized string `json:"nama_obat_standardized,omitempty"`
}

// RawTable is one detected table: rows of nullable cell strings plus the
// table's horizontal extent on the page.
type RawTable struct {
	Rows [][]string
	X0   float64
	X1   float64
}

// PageTables is everything the table detector found on one page.
type PageTables struct {
	Width  float64
	Height float64
	Tables []RawTable
}

// TableSource is the PDF table-detection collaborator. The core never parses
// PDF bytes itself; it consumes whatever grid of cells a detector yields.
type TableSource interface {
	Pages() ([]PageTables, error)
	Close() error
}

// Dual-table page layout: left region ends at 48% of the page width, right
// region starts at 52%. Tables overlapping the gutter stay unsided.
const (
	leftRegionEnd    = 0.48
	rightRegionStart = 0.52
)

// Candidate window used only while picking among ambiguous numeric cells in
// heuristic mode. Final validation deliberately uses a wider ceiling; keep
// both literal values.
const (
	candidateMinPrice = 100
	candidateMaxPrice = 10_000_000
)

// Bounds enforced by final validation.
const (
	validMinPrice = 100
	validMaxPrice = 50_000_000
)

// PDFExtractor drives table detection and turns raw cell grids into medicine
// records.
type PDFExtractor struct {
	parser        *PriceParser
	nameAliases   []string
	priceAliases  []string
	indicators    []string
	skipPatterns  []*regexp.Regexp
	enumPrefix    *regexp.Regexp
	trailingDots  *regexp.Regexp
	dualTableMode bool
}

// NewPDFExtractor builds an extractor with the fixed vocabularies.
func NewPDFExtractor(dualTableMode bool) *PDFExtractor {
	return &PDFExtractor{
		parser:        NewPriceParser(),
		nameAliases:   BuildNameColumnAliases(),
		priceAliases:  BuildPriceColumnAliases(),
		indicators:    BuildMedicineIndicators(),
		skipPatterns:  BuildSkipPatterns(),
		enumPrefix:    regexp.MustCompile(`^\d+\.?\s+`),
		trailingDots:  regexp.MustCompile(`\s*\.+\s*$`),
		dualTableMode: dualTableMode,
	}
}

// ExtractFromFile runs the primary detection engine over the file and falls
// back to the secondary engine when the primary yields nothing. The engines
// are mutually exclusive; their outputs are never merged. The returned slice
// is validated and deduplicated but carries no PBF identity yet.
func (e *PDFExtractor) ExtractFromFile(path string) ([]MedicineRecord, error) {
	records, err := e.extractWithSource(newLineTableSource(path))
	if err != nil {
		log.Printf("Primary extraction failed for %s: %v", path, err)
	}

	if len(records) == 0 {
		records, err = e.extractWithSource(newTextTableSource(path))
		if err != nil {
			log.Printf("Secondary extraction failed for %s: %v", path, err)
			return nil, fmt.Errorf("extract %s: %w", path, err)
		}
	}

	return e.validateAndClean(records), nil
}

func (e *PDFExtractor) extractWithSource(src TableSource) ([]MedicineRecord, error) {
	defer src.Close()
	return e.ExtractFromSource(src)
}

// ExtractFromSource walks every page and table from a detector. Failures on
// a single page or table are logged and skipped; remaining units proceed.
func (e *PDFExtractor) ExtractFromSource(src TableSource) ([]MedicineRecord, error) {
	pages, err := src.Pages()
	if err != nil {
		return nil, err
	}

	var records []MedicineRecord
	for pageIdx, page := range pages {
		pageNum := pageIdx + 1
		if e.dualTableMode {
			records = append(records, e.extractDualTablePage(page, pageNum)...)
			continue
		}
		for tableIdx, table := range page.Tables {
			records = append(records, e.processTable(table, pageNum, tableIdx, "", "")...)
		}
	}

	return records, nil
}

// extractDualTablePage assigns each detected table to the left or right
// region of the page before running the normal per-table pipeline. Many
// suppliers print two independent price tables side by side; without the
// split their rows would collapse into one table.
func (e *PDFExtractor) extractDualTablePage(page PageTables, pageNum int) []MedicineRecord {
	var records []MedicineRecord
	leftCount, rightCount := 0, 0

	for tableIdx, table := range page.Tables {
		side := ""
		tableID := ""
		switch {
		case page.Width > 0 && table.X1 <= page.Width*leftRegionEnd:
			side = "left"
			tableID = fmt.Sprintf("left_%d", leftCount)
			leftCount++
		case page.Width > 0 && table.X0 >= page.Width*rightRegionStart:
			side = "right"
			tableID = fmt.Sprintf("right_%d", rightCount)
			rightCount++
		}
		records = append(records, e.processTable(table, pageNum, tableIdx, side, tableID)...)
	}

	return records
}

// processTable maps the header (when usable) and extracts every data row.
// Tables with fewer than two rows carry no data and are skipped.
func (e *PDFExtractor) processTable(table RawTable, pageNum, tableIdx int, side, tableID string) []MedicineRecord {
	if len(table.Rows) < 2 {
		return nil
	}

	mapping := emptyColumnMapping()
	dataStart := 0
	if usableHeader(table.Rows[0]) {
		mapping = identifyColumns(table.Rows[0], e.nameAliases, e.priceAliases)
		dataStart = 1
	}

	var records []MedicineRecord
	for rowIdx := dataStart; rowIdx < len(table.Rows); rowIdx++ {
		record, ok := e.extractRow(table.Rows[rowIdx], mapping)
		if !ok {
			continue
		}
		record.Page = pageNum
		record.TableIndex = tableIdx
		record.TableID = tableID
		record.TableSide = side
		record.RowIndex = rowIdx
		records = append(records, record)
	}

	return records
}

// extractRow uses mapped columns when a name column is known and falls back
// to heuristic scanning otherwise, or when the mapped cells yield nothing.
func (e *PDFExtractor) extractRow(row []string, mapping ColumnMapping) (MedicineRecord, bool) {
	if mapping.HasName() {
		if record, ok := e.extractRowMapped(row, mapping); ok {
			return record, true
		}
	}
	return e.extractRowHeuristic(row)
}

// extractRowMapped reads the mapped cells. The name is required; the price
// is optional and defaults to 0, which validation later rejects, so
// priceless rows are effectively discarded downstream.
func (e *PDFExtractor) extractRowMapped(row []string, mapping ColumnMapping) (MedicineRecord, bool) {
	if mapping.NameCol >= len(row) {
		return MedicineRecord{}, false
	}

	name := e.CleanMedicineName(row[mapping.NameCol])
	if len(name) <= 2 {
		return MedicineRecord{}, false
	}

	price := 0.0
	if mapping.HasPrice() && mapping.PriceCol < len(row) {
		if v, ok := e.parser.Parse(row[mapping.PriceCol]); ok {
			price = v
		}
	}

	return MedicineRecord{NamaObat: name, Harga: price}, true
}

type nameCandidate struct {
	text         string
	hasIndicator bool
}

// extractRowHeuristic scans every cell once, classifying price and name
// candidates, then picks the best of each. A record is emitted only when
// both are found.
func (e *PDFExtractor) extractRowHeuristic(row []string) (MedicineRecord, bool) {
	if len(row) < 2 {
		return MedicineRecord{}, false
	}

	var names []nameCandidate
	var prices []float64

	for _, cell := range row {
		text := strings.TrimSpace(cell)
		if text == "" {
			continue
		}
		switch strings.ToLower(text) {
		case "nan", "none", "null":
			continue
		}

		price, hasPrice := e.parser.Parse(text)
		if hasPrice {
			prices = append(prices, price)
		}

		if e.containsIndicator(text) {
			names = append(names, nameCandidate{text: text, hasIndicator: true})
		} else if len(text) > 3 && !hasPrice {
			names = append(names, nameCandidate{text: text})
		}
	}

	// Indicator-bearing candidates outrank the rest; otherwise keep cell
	// order.
	sort.SliceStable(names, func(i, j int) bool {
		return names[i].hasIndicator && !names[j].hasIndicator
	})

	bestName := ""
	for _, cand := range names {
		cleaned := e.CleanMedicineName(cand.text)
		if len(cleaned) > 2 {
			bestName = cleaned
			break
		}
	}

	// The largest plausible number in a row is usually the final computed
	// price column rather than a quantity or code.
	bestPrice := 0.0
	for _, price := range prices {
		if price < candidateMinPrice || price > candidateMaxPrice {
			continue
		}
		if price > bestPrice {
			bestPrice = price
		}
	}

	if bestName == "" || bestPrice == 0 {
		return MedicineRecord{}, false
	}

	return MedicineRecord{NamaObat: bestName, Harga: bestPrice}, true
}

func (e *PDFExtractor) containsIndicator(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range e.indicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// CleanMedicineName strips table artifacts while preserving the original
// casing each PBF uses. Header and noise strings collapse to "".
// The operation is idempotent.
func (e *PDFExtractor) CleanMedicineName(text string) string {
	name := strings.TrimSpace(text)
	if name == "" {
		return ""
	}

	lower := strings.ToLower(name)
	for _, pattern := range e.skipPatterns {
		if pattern.MatchString(lower) {
			return ""
		}
	}

	// Leading enumeration prefixes ("1. ", "001 "), repeated until stable.
	for {
		stripped := e.enumPrefix.ReplaceAllString(name, "")
		if stripped == name {
			break
		}
		name = stripped
	}

	name = e.trailingDots.ReplaceAllString(name, "")
	name = strings.Join(strings.Fields(name), " ")

	if len(name) < 3 {
		return ""
	}
	return name
}

// validateAndClean drops noise rows, enforces price sanity bounds and keeps
// the first occurrence per (name, price, page) key. Records differing only
// in table side are distinct observations and survive.
func (e *PDFExtractor) validateAndClean(records []MedicineRecord) []MedicineRecord {
	cleaned := make([]MedicineRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, record := range records {
		if record.NamaObat == "" || record.Harga == 0 {
			continue
		}

		name := strings.TrimSpace(record.NamaObat)
		if len(name) < 3 {
			continue
		}

		lower := strings.ToLower(name)
		skip := false
		for _, pattern := range e.skipPatterns {
			if pattern.MatchString(lower) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		if record.Harga < validMinPrice || record.Harga > validMaxPrice {
			continue
		}

		key := fmt.Sprintf("%s_%v_%d_%s", lower, record.Harga, record.Page, record.TableSide)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		record.NamaObat = name
		cleaned = append(cleaned, record)
	}

	return cleaned
}
