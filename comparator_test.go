package main

import (
	"encoding/json"
	"math"
	"testing"
)

func comparisonFixture() []MedicineRecord {
	return []MedicineRecord{
		{NamaObat: "Paracetamol 500mg", NamaObatCleaned: "Paracetamol 500mg", NamaObatStandardized: "Paracetamol", Harga: 10000, PBF: "pbf_a"},
		{NamaObat: "Parasetamol 500mg", NamaObatCleaned: "Parasetamol 500mg", NamaObatStandardized: "Paracetamol", Harga: 15000, PBF: "pbf_b"},
		{NamaObat: "Paracetamol tab", NamaObatCleaned: "Paracetamol tab", NamaObatStandardized: "Paracetamol", Harga: 12000, PBF: "pbf_c"},
		{NamaObat: "Vitamin C", NamaObatCleaned: "Vitamin C", NamaObatStandardized: "Vitamin C", Harga: 8000, PBF: "pbf_a"},
	}
}

func TestComparePrices(t *testing.T) {
	results := ComparePrices(comparisonFixture())

	if len(results) != 1 {
		t.Fatalf("got %d results; want 1 (Vitamin C has a single supplier)", len(results))
	}

	r := results[0]
	if r.NamaObatStandardized != "Paracetamol" {
		t.Errorf("NamaObatStandardized = %q; want Paracetamol", r.NamaObatStandardized)
	}
	if r.NamaObat != "Paracetamol 500mg" {
		t.Errorf("NamaObat = %q; want the best-price row's cleaned name", r.NamaObat)
	}
	if r.HargaTerbaik != 10000 || r.PBFTerbaik != "pbf_a" {
		t.Errorf("best = %.0f at %q; want 10000 at pbf_a", r.HargaTerbaik, r.PBFTerbaik)
	}
	if r.HargaTermahal != 15000 || r.PBFTermahal != "pbf_b" {
		t.Errorf("worst = %.0f at %q; want 15000 at pbf_b", r.HargaTermahal, r.PBFTermahal)
	}
	if r.PenghematanRupiah != 5000 {
		t.Errorf("PenghematanRupiah = %.0f; want 5000", r.PenghematanRupiah)
	}
	if math.Abs(r.PersentaseHemat-33.333333) > 0.001 {
		t.Errorf("PersentaseHemat = %.4f; want ~33.3333", r.PersentaseHemat)
	}
	if r.JumlahPBF != 3 {
		t.Errorf("JumlahPBF = %d; want 3", r.JumlahPBF)
	}
	if math.Abs(r.HargaRataRata-12333.333333) > 0.001 {
		t.Errorf("HargaRataRata = %.4f; want ~12333.3333", r.HargaRataRata)
	}
	if r.SelisihHarga != 5000 {
		t.Errorf("SelisihHarga = %.0f; want 5000", r.SelisihHarga)
	}
	if r.HargaPerPBF["pbf_b"] != 15000 {
		t.Errorf("HargaPerPBF[pbf_b] = %.0f; want 15000", r.HargaPerPBF["pbf_b"])
	}
}

func TestComparePricesSingleSupplier(t *testing.T) {
	records := []MedicineRecord{
		{NamaObatCleaned: "Paracetamol 500mg", NamaObatStandardized: "Paracetamol", Harga: 10000, PBF: "pbf_a"},
		{NamaObatCleaned: "Vitamin C", NamaObatStandardized: "Vitamin C", Harga: 8000, PBF: "pbf_a"},
	}

	if got := ComparePrices(records); len(got) != 0 {
		t.Errorf("got %d results from a single supplier; want 0", len(got))
	}
}

func TestComparePricesRequiresDistinctSuppliers(t *testing.T) {
	// Two observations from the same supplier are not a comparison.
	records := []MedicineRecord{
		{NamaObatCleaned: "Paracetamol 500mg", NamaObatStandardized: "Paracetamol", Harga: 10000, PBF: "pbf_a", TableSide: "left"},
		{NamaObatCleaned: "Paracetamol 500mg", NamaObatStandardized: "Paracetamol", Harga: 11000, PBF: "pbf_a", TableSide: "right"},
	}

	if got := ComparePrices(records); len(got) != 0 {
		t.Errorf("got %d results; want 0 when only one supplier carries the medicine", len(got))
	}
}

func TestComparePricesSortedBySavings(t *testing.T) {
	records := []MedicineRecord{
		{NamaObatCleaned: "A", NamaObatStandardized: "A", Harga: 9000, PBF: "x"},
		{NamaObatCleaned: "A", NamaObatStandardized: "A", Harga: 10000, PBF: "y"},
		{NamaObatCleaned: "B", NamaObatStandardized: "B", Harga: 5000, PBF: "x"},
		{NamaObatCleaned: "B", NamaObatStandardized: "B", Harga: 10000, PBF: "y"},
	}

	results := ComparePrices(records)
	if len(results) != 2 {
		t.Fatalf("got %d results; want 2", len(results))
	}
	if results[0].NamaObatStandardized != "B" {
		t.Errorf("results[0] = %q; want B (50%% savings first)", results[0].NamaObatStandardized)
	}
}

func TestComparePricesEmpty(t *testing.T) {
	if got := ComparePrices(nil); len(got) != 0 {
		t.Errorf("ComparePrices(nil) = %d results; want 0", len(got))
	}
}

func TestComparisonResultJSONFlattensPrices(t *testing.T) {
	results := ComparePrices(comparisonFixture())
	if len(results) != 1 {
		t.Fatalf("got %d results; want 1", len(results))
	}

	b, err := json.Marshal(results[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var flat map[string]interface{}
	if err := json.Unmarshal(b, &flat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if flat["harga_pbf_a"] != 10000.0 {
		t.Errorf("harga_pbf_a = %v; want 10000", flat["harga_pbf_a"])
	}
	if flat["harga_pbf_b"] != 15000.0 {
		t.Errorf("harga_pbf_b = %v; want 15000", flat["harga_pbf_b"])
	}
	if flat["pbf_terbaik"] != "pbf_a" {
		t.Errorf("pbf_terbaik = %v; want pbf_a", flat["pbf_terbaik"])
	}
	if _, ok := flat["HargaPerPBF"]; ok {
		t.Error("the price map itself should not appear in the JSON output")
	}
}

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{12500, "Rp 12.500"},
		{1500000, "Rp 1.500.000"},
		{1500000.75, "Rp 1.500.000"},
	}

	for _, tt := range tests {
		if got := FormatRupiah(tt.amount); got != tt.want {
			t.Errorf("FormatRupiah(%.2f) = %q; want %q", tt.amount, got, tt.want)
		}
	}
}
