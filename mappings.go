package main

import "regexp"

// Vocabularies used across extraction and standardization. All lists are
// evaluated top-to-bottom with first-match-wins semantics, so order matters.

// BuildNameColumnAliases returns header aliases that mark a medicine-name
// column, highest priority first. Collected from the column layouts of
// Kimia Farma, Enseval, Pharos and Guardian price sheets.
func BuildNameColumnAliases() []string {
	return []string{
		"nama brg",
		"nama barang",
		"nama obat",
		"barang",
		"obat",
		"produk",
		"product",
		"item",
		"medicine",
		"drug",
		"nama_barang",
		"nama_obat",
		"nama_brg",
	}
}

// BuildPriceColumnAliases returns header aliases that mark a price column,
// highest priority first. HNA+PPN variants come before the generic labels
// so the tax-inclusive column wins when a sheet carries both.
func BuildPriceColumnAliases() []string {
	return []string{
		"hna+ppn",
		"hna + ppn",
		"hrg+ppn",
		"hrg + ppn",
		"harga jadi",
		"harga_jadi",
		"hna ppn",
		"hrg ppn",
		"harga",
		"price",
		"hna",
		"hrg",
		"harga + ppn",
		"harga+ppn",
		"harga ppn",
		"total",
		"amount",
		"hna_ppn",
		"harga_ppn",
		"hrg_ppn",
	}
}

// BuildMedicineIndicators returns unit/form keywords whose presence marks a
// cell as a likely medicine name during heuristic row extraction.
func BuildMedicineIndicators() []string {
	return []string{
		"tablet",
		"kapsul",
		"sirup",
		"injeksi",
		"mg",
		"ml",
		"gram",
		"strip",
		"botol",
		"ampul",
	}
}

// BuildSkipPatterns returns whole-string patterns for header and noise rows
// that must never survive as medicine names. Matched against the lower-cased
// name.
func BuildSkipPatterns() []*regexp.Regexp {
	raw := []string{
		`^no\.?\s*$`,
		`^nama\s*(obat|barang|brg)?\s*$`,
		`^barang\s*$`,
		`^harga\s*$`,
		`^hna\s*$`,
		`^hrg\s*$`,
		`^hna\s*\+\s*ppn\s*$`,
		`^hna\+ppn\s*$`,
		`^hrg\s*\+\s*ppn\s*$`,
		`^hrg\+ppn\s*$`,
		`^harga\s*jadi\s*$`,
		`^satuan\s*$`,
		`^kode\s*$`,
		`^item\s*$`,
		`^product\s*$`,
		`^price\s*$`,
		`^\d+\s*$`,
		`^total\s*$`,
		`^subtotal\s*$`,
		`^kemasan\s*$`,
	}

	patterns := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	return patterns
}

// MedicineVariant maps a canonical medicine name to its known spelling and
// language variants.
type MedicineVariant struct {
	Canonical string
	Variants  []string
}

// BuildVariantList returns the known medicine spelling variants, in priority
// order. The canonical form is already title-cased for display.
func BuildVariantList() []MedicineVariant {
	return []MedicineVariant{
		{Canonical: "Paracetamol", Variants: []string{"paracetamol", "parasetamol", "acetaminophen"}},
		{Canonical: "Amoxicillin", Variants: []string{"amoxicillin", "amoksisilin", "amoxicilin"}},
		{Canonical: "Ibuprofen", Variants: []string{"ibuprofen", "ibuprophen"}},
		{Canonical: "Aspirin", Variants: []string{"aspirin", "asam asetilsalisilat", "asetosal"}},
	}
}

// BuildSearchSynonyms returns the synonym sets pushed to the search index so
// queries in either spelling convention hit the same records.
func BuildSearchSynonyms() map[string][]string {
	return map[string][]string{
		"paracetamol": {"parasetamol", "acetaminophen"},
		"amoxicillin": {"amoksisilin", "amoxicilin"},
		"ibuprofen":   {"ibuprophen"},
		"aspirin":     {"asam asetilsalisilat", "asetosal"},
	}
}
