package main

import "testing"

// fakeTableSource feeds pre-built pages into the extractor.
type fakeTableSource struct {
	pages []PageTables
	err   error
}

func (f *fakeTableSource) Pages() ([]PageTables, error) { return f.pages, f.err }
func (f *fakeTableSource) Close() error                 { return nil }

func singleTablePage(rows [][]string) PageTables {
	return PageTables{
		Width:  100,
		Height: 100,
		Tables: []RawTable{{Rows: rows, X0: 0, X1: 100}},
	}
}

func TestExtractMappedColumns(t *testing.T) {
	e := NewPDFExtractor(false)
	src := &fakeTableSource{pages: []PageTables{
		singleTablePage([][]string{
			{"No", "Nama Barang", "HNA+PPN"},
			{"1", "Paracetamol 500mg", "12.500"},
			{"2", "Amoxicillin 500mg Kapsul", "Rp 45.000"},
		}),
	}}

	records, err := e.ExtractFromSource(src)
	if err != nil {
		t.Fatalf("ExtractFromSource: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records; want 2", len(records))
	}

	if records[0].NamaObat != "Paracetamol 500mg" || records[0].Harga != 12500 {
		t.Errorf("record 0 = %q %.0f; want Paracetamol 500mg 12500", records[0].NamaObat, records[0].Harga)
	}
	if records[1].NamaObat != "Amoxicillin 500mg Kapsul" || records[1].Harga != 45000 {
		t.Errorf("record 1 = %q %.0f; want Amoxicillin 500mg Kapsul 45000", records[1].NamaObat, records[1].Harga)
	}
	if records[0].Page != 1 || records[0].RowIndex != 1 {
		t.Errorf("record 0 provenance = page %d row %d; want page 1 row 1", records[0].Page, records[0].RowIndex)
	}
}

func TestExtractHeuristicRow(t *testing.T) {
	e := NewPDFExtractor(false)
	src := &fakeTableSource{pages: []PageTables{
		singleTablePage([][]string{
			{"Kode", "Deskripsi", "Qty", "Nilai"},
			{"001", "Paracetamol 500mg Tablet", "", "125000"},
		}),
	}}

	records, err := e.ExtractFromSource(src)
	if err != nil {
		t.Fatalf("ExtractFromSource: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records; want 1", len(records))
	}
	if records[0].NamaObat != "Paracetamol 500mg Tablet" {
		t.Errorf("NamaObat = %q; want Paracetamol 500mg Tablet", records[0].NamaObat)
	}
	if records[0].Harga != 125000 {
		t.Errorf("Harga = %.0f; want 125000", records[0].Harga)
	}
}

func TestExtractHeuristicPicksLargestPlausiblePrice(t *testing.T) {
	e := NewPDFExtractor(false)
	src := &fakeTableSource{pages: []PageTables{
		singleTablePage([][]string{
			{"", "", ""},
			{"Amoxicillin Sirup 60ml", "1200", "38.500"},
		}),
	}}

	records, err := e.ExtractFromSource(src)
	if err != nil {
		t.Fatalf("ExtractFromSource: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records; want 1", len(records))
	}
	if records[0].Harga != 38500 {
		t.Errorf("Harga = %.0f; want 38500", records[0].Harga)
	}
}

func TestExtractSkipsTinyTables(t *testing.T) {
	e := NewPDFExtractor(false)
	src := &fakeTableSource{pages: []PageTables{
		singleTablePage([][]string{
			{"Nama Barang", "Harga"},
		}),
	}}

	records, err := e.ExtractFromSource(src)
	if err != nil {
		t.Fatalf("ExtractFromSource: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records from a header-only table; want 0", len(records))
	}
}

func TestDualTableSideAssignment(t *testing.T) {
	e := NewPDFExtractor(true)
	rows := [][]string{
		{"Nama Barang", "Harga"},
		{"Paracetamol 500mg", "12.500"},
	}
	src := &fakeTableSource{pages: []PageTables{
		{
			Width: 100,
			Tables: []RawTable{
				{Rows: rows, X0: 2, X1: 45},
				{Rows: rows, X0: 55, X1: 100},
				{Rows: rows, X0: 30, X1: 70},
			},
		},
	}}

	records, err := e.ExtractFromSource(src)
	if err != nil {
		t.Fatalf("ExtractFromSource: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records; want 3", len(records))
	}

	if records[0].TableSide != "left" || records[0].TableID != "left_0" {
		t.Errorf("table 0 side = %q id = %q; want left left_0", records[0].TableSide, records[0].TableID)
	}
	if records[1].TableSide != "right" || records[1].TableID != "right_0" {
		t.Errorf("table 1 side = %q id = %q; want right right_0", records[1].TableSide, records[1].TableID)
	}
	if records[2].TableSide != "" || records[2].TableID != "" {
		t.Errorf("gutter-spanning table side = %q id = %q; want unsided", records[2].TableSide, records[2].TableID)
	}
}

func TestCleanMedicineName(t *testing.T) {
	e := NewPDFExtractor(false)

	tests := []struct {
		raw  string
		want string
	}{
		{"  Paracetamol   500mg  ", "Paracetamol 500mg"},
		{"1. Amoxicillin 500mg", "Amoxicillin 500mg"},
		{"12 Ibuprofen 400mg...", "Ibuprofen 400mg"},
		{"1. 2. Aspirin 80mg", "Aspirin 80mg"},
		{"Nama Barang", ""},
		{"Total", ""},
		{"12345", ""},
		{"ab", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := e.CleanMedicineName(tt.raw)
		if got != tt.want {
			t.Errorf("CleanMedicineName(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCleanMedicineNameIdempotent(t *testing.T) {
	e := NewPDFExtractor(false)

	inputs := []string{"1. 2. Paracetamol 500mg", "  Amoxicillin  Sirup ...", "Total"}
	for _, raw := range inputs {
		once := e.CleanMedicineName(raw)
		twice := e.CleanMedicineName(once)
		if once != twice {
			t.Errorf("CleanMedicineName(%q): first pass %q, second pass %q", raw, once, twice)
		}
	}
}

func TestValidateAndClean(t *testing.T) {
	e := NewPDFExtractor(false)

	records := []MedicineRecord{
		{NamaObat: "Paracetamol 500mg", Harga: 12500, Page: 1},
		{NamaObat: "", Harga: 12500, Page: 1},
		{NamaObat: "Amoxicillin", Harga: 0, Page: 1},
		{NamaObat: "ab", Harga: 12500, Page: 1},
		{NamaObat: "Total", Harga: 12500, Page: 1},
		{NamaObat: "Cheap Drug", Harga: 50, Page: 1},
		{NamaObat: "Pricey Drug", Harga: 60_000_000, Page: 1},
	}

	got := e.validateAndClean(records)
	if len(got) != 1 {
		t.Fatalf("got %d records; want 1", len(got))
	}
	if got[0].NamaObat != "Paracetamol 500mg" {
		t.Errorf("survivor = %q; want Paracetamol 500mg", got[0].NamaObat)
	}
}

func TestValidateAndCleanDeduplicates(t *testing.T) {
	e := NewPDFExtractor(false)

	records := []MedicineRecord{
		{NamaObat: "Paracetamol 500mg", Harga: 12500, Page: 1, RowIndex: 1},
		{NamaObat: "paracetamol 500MG", Harga: 12500, Page: 1, RowIndex: 7},
		{NamaObat: "Paracetamol 500mg", Harga: 12500, Page: 2},
		{NamaObat: "Paracetamol 500mg", Harga: 13000, Page: 1},
	}

	got := e.validateAndClean(records)
	if len(got) != 3 {
		t.Fatalf("got %d records; want 3", len(got))
	}
	if got[0].RowIndex != 1 {
		t.Errorf("dedup kept row %d; want the first occurrence (row 1)", got[0].RowIndex)
	}
}

func TestValidateAndCleanKeepsDistinctTableSides(t *testing.T) {
	e := NewPDFExtractor(false)

	records := []MedicineRecord{
		{NamaObat: "Paracetamol 500mg", Harga: 12500, Page: 1, TableSide: "left"},
		{NamaObat: "Paracetamol 500mg", Harga: 12500, Page: 1, TableSide: "right"},
	}

	got := e.validateAndClean(records)
	if len(got) != 2 {
		t.Errorf("got %d records; want both table sides to survive", len(got))
	}
}
