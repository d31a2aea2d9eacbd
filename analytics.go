package main

import (
	"math"
	"sort"
)

// PriceStatistics summarizes a processed batch across all suppliers.
type PriceStatistics struct {
	TotalMedicines  int                `json:"total_medicines"`
	TotalPBFs       int                `json:"total_pbfs"`
	AveragePrice    float64            `json:"average_price"`
	MedianPrice     float64            `json:"median_price"`
	MinPrice        float64            `json:"min_price"`
	MaxPrice        float64            `json:"max_price"`
	PriceStd        float64            `json:"price_std"`
	MedicinesPerPBF map[string]int     `json:"medicines_per_pbf"`
	AvgPricePerPBF  map[string]float64 `json:"avg_price_per_pbf"`
}

// PBFPerformance tracks how often one supplier offers the best price.
type PBFPerformance struct {
	BestPriceCount int     `json:"best_price_count"`
	TotalMedicines int     `json:"total_medicines"`
	TotalSavings   float64 `json:"total_savings"`
	WinRate        float64 `json:"win_rate"`
}

// GetPriceStatistics computes batch-level price statistics. An empty batch
// yields a zero-valued summary.
func GetPriceStatistics(records []MedicineRecord) PriceStatistics {
	stats := PriceStatistics{
		MedicinesPerPBF: map[string]int{},
		AvgPricePerPBF:  map[string]float64{},
	}
	if len(records) == 0 {
		return stats
	}

	prices := make([]float64, 0, len(records))
	sumPerPBF := map[string]float64{}

	sum := 0.0
	for _, record := range records {
		prices = append(prices, record.Harga)
		sum += record.Harga
		stats.MedicinesPerPBF[record.PBF]++
		sumPerPBF[record.PBF] += record.Harga
	}

	sort.Float64s(prices)

	stats.TotalMedicines = len(records)
	stats.TotalPBFs = len(stats.MedicinesPerPBF)
	stats.AveragePrice = sum / float64(len(records))
	stats.MinPrice = prices[0]
	stats.MaxPrice = prices[len(prices)-1]

	mid := len(prices) / 2
	if len(prices)%2 == 0 {
		stats.MedianPrice = (prices[mid-1] + prices[mid]) / 2
	} else {
		stats.MedianPrice = prices[mid]
	}

	// Sample standard deviation. A single record has no spread.
	if len(prices) > 1 {
		variance := 0.0
		for _, p := range prices {
			d := p - stats.AveragePrice
			variance += d * d
		}
		stats.PriceStd = math.Sqrt(variance / float64(len(prices)-1))
	}

	for pbf, count := range stats.MedicinesPerPBF {
		stats.AvgPricePerPBF[pbf] = sumPerPBF[pbf] / float64(count)
	}

	return stats
}

// GetBestDeals returns the top N comparison results by savings percentage.
func GetBestDeals(results []ComparisonResult, topN int) []ComparisonResult {
	if len(results) == 0 || topN <= 0 {
		return []ComparisonResult{}
	}

	deals := make([]ComparisonResult, len(results))
	copy(deals, results)
	sort.SliceStable(deals, func(i, j int) bool {
		return deals[i].PersentaseHemat > deals[j].PersentaseHemat
	})

	if topN < len(deals) {
		deals = deals[:topN]
	}
	return deals
}

// GetPBFPerformance aggregates win counts, coverage and accumulated savings
// per supplier over a set of comparison results. Every supplier that appears
// anywhere in the results gets an entry, even with zero wins.
func GetPBFPerformance(results []ComparisonResult) map[string]PBFPerformance {
	stats := map[string]PBFPerformance{}
	if len(results) == 0 {
		return stats
	}

	for _, result := range results {
		entry := stats[result.PBFTerbaik]
		entry.BestPriceCount++
		entry.TotalSavings += result.PenghematanRupiah
		stats[result.PBFTerbaik] = entry
	}

	allPBFs := map[string]struct{}{}
	for _, result := range results {
		allPBFs[result.PBFTerbaik] = struct{}{}
		allPBFs[result.PBFTermahal] = struct{}{}
		for pbf := range result.HargaPerPBF {
			allPBFs[pbf] = struct{}{}
		}
	}

	for pbf := range allPBFs {
		entry := stats[pbf]
		for _, result := range results {
			if _, ok := result.HargaPerPBF[pbf]; ok {
				entry.TotalMedicines++
			}
		}
		if entry.TotalMedicines > 0 {
			entry.WinRate = float64(entry.BestPriceCount) / float64(entry.TotalMedicines) * 100
		}
		stats[pbf] = entry
	}

	return stats
}
