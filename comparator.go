package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ComparisonResult is the cross-supplier summary for one standardized
// medicine. HargaPerPBF holds the observed price at every supplier and is
// flattened into harga_<pbf> keys on the wire.
type ComparisonResult struct {
	NamaObat             string  `json:"nama_obat"`
	NamaObatStandardized string  `json:"nama_obat_standardized"`
	HargaTerbaik         float64 `json:"harga_terbaik"`
	PBFTerbaik           string  `json:"pbf_terbaik"`
	HargaTermahal        float64 `json:"harga_termahal"`
	PBFTermahal          string  `json:"pbf_termahal"`
	PenghematanRupiah    float64 `json:"penghematan_rupiah"`
	PersentaseHemat      float64 `json:"persentase_hemat"`
	JumlahPBF            int     `json:"jumlah_pbf"`
	HargaRataRata        float64 `json:"harga_rata_rata"`
	SelisihHarga         float64 `json:"selisih_harga"`

	HargaPerPBF map[string]float64 `json:"-"`
}

// MarshalJSON emits the per-supplier prices as sibling harga_<pbf> fields
// alongside the summary, matching the flat report consumers expect.
func (r ComparisonResult) MarshalJSON() ([]byte, error) {
	type alias ComparisonResult
	base, err := json.Marshal(alias(r))
	if err != nil {
		return nil, err
	}

	flat := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &flat); err != nil {
		return nil, err
	}
	for pbf, harga := range r.HargaPerPBF {
		encoded, err := json.Marshal(harga)
		if err != nil {
			return nil, err
		}
		flat["harga_"+pbf] = encoded
	}

	return json.Marshal(flat)
}

// ComparePrices groups processed records by standardized name and summarizes
// the price spread per group. Medicines carried by fewer than two distinct
// suppliers are skipped; there is nothing to compare. Results come back
// sorted by savings percentage, highest first.
func ComparePrices(records []MedicineRecord) []ComparisonResult {
	if len(records) == 0 {
		return []ComparisonResult{}
	}

	groups := make(map[string][]MedicineRecord)
	var order []string
	for _, record := range records {
		name := record.NamaObatStandardized
		if _, ok := groups[name]; !ok {
			order = append(order, name)
		}
		groups[name] = append(groups[name], record)
	}

	results := make([]ComparisonResult, 0, len(groups))
	for _, name := range order {
		group := groups[name]

		distinct := make(map[string]struct{}, len(group))
		for _, record := range group {
			distinct[record.PBF] = struct{}{}
		}
		if len(distinct) < 2 {
			continue
		}

		best := group[0]
		worst := group[0]
		sum := 0.0
		prices := make(map[string]float64, len(distinct))
		for _, record := range group {
			if record.Harga < best.Harga {
				best = record
			}
			if record.Harga > worst.Harga {
				worst = record
			}
			sum += record.Harga
			prices[record.PBF] = record.Harga
		}

		savings := worst.Harga - best.Harga
		percentage := 0.0
		if worst.Harga > 0 {
			percentage = savings / worst.Harga * 100
		}

		results = append(results, ComparisonResult{
			NamaObat:             best.NamaObatCleaned,
			NamaObatStandardized: name,
			HargaTerbaik:         best.Harga,
			PBFTerbaik:           best.PBF,
			HargaTermahal:        worst.Harga,
			PBFTermahal:          worst.PBF,
			PenghematanRupiah:    savings,
			PersentaseHemat:      percentage,
			JumlahPBF:            len(distinct),
			HargaRataRata:        sum / float64(len(group)),
			SelisihHarga:         worst.Harga - best.Harga,
			HargaPerPBF:          prices,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].PersentaseHemat != results[j].PersentaseHemat {
			return results[i].PersentaseHemat > results[j].PersentaseHemat
		}
		return results[i].NamaObatStandardized < results[j].NamaObatStandardized
	})

	return results
}

// FormatRupiah renders an amount the way the summary reports print it,
// with dot-grouped thousands.
func FormatRupiah(amount float64) string {
	whole := int64(amount)
	s := fmt.Sprintf("%d", whole)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := "Rp " + strings.Join(parts, ".")
	if neg {
		out = "Rp -" + strings.Join(parts, ".")
	}
	return out
}
