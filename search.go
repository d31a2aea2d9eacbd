package main

import (
	"encoding/json"
	"fmt"
	"log"

	meilisearch "github.com/meilisearch/meilisearch-go"
)

const medicineIndexName = "medicines"

// SearchIndexer mirrors processed records into a Meilisearch index so the
// search endpoint can serve typo-tolerant queries. It is optional; the rest
// of the pipeline works without a search backend.
type SearchIndexer struct {
	client meilisearch.ServiceManager
}

// NewSearchIndexer returns nil when no Meilisearch URL is configured, which
// callers treat as search being disabled.
func NewSearchIndexer(meiliURL, apiKey string) *SearchIndexer {
	if meiliURL == "" {
		return nil
	}
	return &SearchIndexer{
		client: meilisearch.New(meiliURL, meilisearch.WithAPIKey(apiKey)),
	}
}

// IndexRecords recreates the medicines index from a processed batch. Index
// settings are best effort; a search backend with stale settings still
// answers queries.
func (x *SearchIndexer) IndexRecords(records []MedicineRecord) error {
	_, _ = x.client.DeleteIndex(medicineIndexName)
	if _, err := x.client.CreateIndex(&meilisearch.IndexConfig{Uid: medicineIndexName, PrimaryKey: "id"}); err != nil {
		log.Printf("Warning: Could not create index: %v", err)
	}

	index := x.client.Index(medicineIndexName)

	settings := meilisearch.Settings{
		SearchableAttributes: []string{"nama_obat", "nama_obat_cleaned", "nama_obat_standardized", "pbf"},
		FilterableAttributes: []string{"pbf", "harga", "page", "table_side"},
		SortableAttributes:   []string{"harga", "nama_obat"},
		Synonyms:             BuildSearchSynonyms(),
	}
	_, _ = index.UpdateSettings(&settings)

	docs := make([]map[string]interface{}, 0, len(records))
	for i, record := range records {
		docs = append(docs, map[string]interface{}{
			"id":                     fmt.Sprintf("medicine_%d", i),
			"nama_obat":              record.NamaObat,
			"nama_obat_cleaned":      record.NamaObatCleaned,
			"nama_obat_standardized": record.NamaObatStandardized,
			"harga":                  int(record.Harga),
			"pbf":                    record.PBF,
			"page":                   record.Page,
			"table_side":             record.TableSide,
		})
	}

	if len(docs) > 0 {
		if _, err := index.AddDocuments(docs, nil); err != nil {
			return fmt.Errorf("index documents: %w", err)
		}
	}

	return nil
}

// Search queries the medicines index and returns plain hit maps.
func (x *SearchIndexer) Search(query string, limit int) ([]map[string]interface{}, error) {
	index := x.client.Index(medicineIndexName)

	res, err := index.Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var hits []map[string]interface{}
	b, _ := json.Marshal(res.Hits)
	_ = json.Unmarshal(b, &hits)

	return hits, nil
}
