package main

import (
	"fmt"
	"sort"
	"strings"
)

// DataProcessor canonicalizes extracted records and offers the fuzzy
// similarity utility used by ad-hoc medicine lookups.
type DataProcessor struct {
	similarityThreshold float64
	variants            []MedicineVariant
}

// SimilarMedicine is one fuzzy match from FindSimilarMedicines.
type SimilarMedicine struct {
	NamaObat        string  `json:"nama_obat"`
	SimilarityScore float64 `json:"similarity_score"`
}

// NewDataProcessor creates a processor. The threshold only affects
// FindSimilarMedicines, never comparison grouping.
func NewDataProcessor(similarityThreshold float64) *DataProcessor {
	return &DataProcessor{
		similarityThreshold: similarityThreshold,
		variants:            BuildVariantList(),
	}
}

// ProcessData derives the cleaned and standardized name fields and collapses
// repeats of the same medicine from the same supplier and table side,
// keeping the first occurrence. Input records are not mutated.
func (p *DataProcessor) ProcessData(records []MedicineRecord) []MedicineRecord {
	if len(records) == 0 {
		return []MedicineRecord{}
	}

	processed := make([]MedicineRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, record := range records {
		record.NamaObatCleaned = p.CleanName(record.NamaObat)
		record.NamaObatStandardized = p.StandardizeName(record.NamaObatCleaned)

		key := fmt.Sprintf("%s|%s|%s", record.NamaObatStandardized, record.PBF, record.TableSide)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		processed = append(processed, record)
	}

	return processed
}

// CleanName normalizes whitespace only, preserving the original PBF naming.
func (p *DataProcessor) CleanName(name string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(name)), " ")
}

// StandardizeName resolves known spelling variants to their canonical form.
// Names without a variant entry stand for themselves, so identical raw names
// from different suppliers still group together.
func (p *DataProcessor) StandardizeName(name string) string {
	if name == "" {
		return ""
	}

	lower := strings.ToLower(name)
	for _, entry := range p.variants {
		for _, variant := range entry.Variants {
			if strings.Contains(lower, variant) {
				return entry.Canonical
			}
		}
	}

	return name
}

// FindSimilarMedicines returns names whose normalized edit-distance ratio to
// the target meets the configured threshold, excluding exact matches,
// sorted by score descending.
func (p *DataProcessor) FindSimilarMedicines(target string, medicines []string) []SimilarMedicine {
	targetClean := strings.ToLower(p.CleanName(target))

	var similar []SimilarMedicine
	for _, medicine := range medicines {
		clean := strings.ToLower(p.CleanName(medicine))
		if clean == targetClean {
			continue
		}

		score := similarityRatio(targetClean, clean)
		if score >= p.similarityThreshold {
			similar = append(similar, SimilarMedicine{NamaObat: medicine, SimilarityScore: score})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].SimilarityScore > similar[j].SimilarityScore
	})

	return similar
}

// similarityRatio is a normalized Levenshtein ratio in [0, 1].
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	dist := levenshteinDistance(a, b)
	denom := len([]rune(a))
	if n := len([]rune(b)); n > denom {
		denom = n
	}
	if denom == 0 {
		return 1
	}

	ratio := 1 - float64(dist)/float64(denom)
	if ratio < 0 {
		return 0
	}
	return ratio
}

func levenshteinDistance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) < len(br) {
		ar, br = br, ar
	}
	if len(br) == 0 {
		return len(ar)
	}

	prev := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ar {
		curr := make([]int, len(br)+1)
		curr[0] = i + 1
		for j, cb := range br {
			ins := curr[j] + 1
			del := prev[j+1] + 1
			sub := prev[j]
			if ca != cb {
				sub++
			}
			curr[j+1] = minOf3(ins, del, sub)
		}
		prev = curr
	}
	return prev[len(prev)-1]
}

func minOf3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
