package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type server struct {
	cfg       *Config
	extractor *PDFExtractor
	processor *DataProcessor
	indexer   *SearchIndexer

	mu          sync.RWMutex
	records     []MedicineRecord
	comparisons []ComparisonResult
}

func newServer(cfg *Config) *server {
	return &server{
		cfg:       cfg,
		extractor: NewPDFExtractor(cfg.DualTableMode),
		processor: NewDataProcessor(cfg.SimilarityThreshold),
		indexer:   NewSearchIndexer(cfg.MeiliURL, cfg.MeiliAPIKey),
	}
}

// processDir extracts every PDF price sheet in dir, derives supplier identity
// from the filename and runs the processing and comparison pipeline over the
// combined batch. A failing file is logged and skipped; the batch continues.
func (s *server) processDir(dir string) (int, int, error) {
	var pdfPaths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			pdfPaths = append(pdfPaths, path)
		}
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("scan %s: %w", dir, err)
	}

	var raw []MedicineRecord
	for _, path := range pdfPaths {
		pbf := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		records, err := s.extractor.ExtractFromFile(path)
		if err != nil {
			log.Printf("Failed to extract %s: %v", path, err)
			continue
		}
		if len(records) == 0 {
			log.Printf("No tables found in %s", path)
			continue
		}

		for i := range records {
			records[i].PBF = pbf
		}
		log.Printf("Extracted %d records from %s (pbf=%s)", len(records), path, pbf)
		raw = append(raw, records...)
	}

	if len(raw) == 0 {
		log.Printf("Warning: no records extracted from %s (%d PDF files)", dir, len(pdfPaths))
	}

	processed := s.processor.ProcessData(raw)
	comparisons := ComparePrices(processed)

	s.mu.Lock()
	s.records = processed
	s.comparisons = comparisons
	s.mu.Unlock()

	if s.indexer != nil {
		if err := s.indexer.IndexRecords(processed); err != nil {
			log.Printf("Warning: search indexing failed: %v", err)
		}
	}

	return len(processed), len(comparisons), nil
}

func toStructPB(v interface{}) (*structpb.Struct, error) {
	// Marshal then unmarshal so nested typed values flatten to the basic
	// kinds structpb accepts.
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var mm map[string]interface{}
	if err := json.Unmarshal(b, &mm); err != nil {
		return nil, err
	}
	return structpb.NewStruct(mm)
}

func writeStructJSON(w http.ResponseWriter, v interface{}) {
	st, err := toStructPB(v)
	if err != nil {
		log.Printf("toStructPB error: %v", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	b, err := protojson.Marshal(st)
	if err != nil {
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeStructJSON(w, map[string]interface{}{"status": "healthy"})
}

func (s *server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	dir := r.URL.Query().Get("dir")
	if dir == "" {
		dir = s.cfg.PBFDir
	}

	records, comparisons, err := s.processDir(dir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeStructJSON(w, map[string]interface{}{
		"status":           "completed",
		"record_count":     records,
		"comparison_count": comparisons,
	})
}

func (s *server) handleRecords(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	writeStructJSON(w, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

func (s *server) handleComparison(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	comparisons := s.comparisons
	s.mu.RUnlock()

	writeStructJSON(w, map[string]interface{}{
		"count":   len(comparisons),
		"results": comparisons,
	})
}

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	records := s.records
	s.mu.RUnlock()

	writeStructJSON(w, GetPriceStatistics(records))
}

func (s *server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	comparisons := s.comparisons
	s.mu.RUnlock()

	writeStructJSON(w, map[string]interface{}{
		"performance": GetPBFPerformance(comparisons),
	})
}

func (s *server) handleDeals(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	s.mu.RLock()
	comparisons := s.comparisons
	s.mu.RUnlock()

	deals := GetBestDeals(comparisons, limit)
	writeStructJSON(w, map[string]interface{}{
		"count": len(deals),
		"deals": deals,
	})
}

func (s *server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing q parameter")
		return
	}

	s.mu.RLock()
	names := make([]string, 0, len(s.records))
	for _, record := range s.records {
		names = append(names, record.NamaObatCleaned)
	}
	s.mu.RUnlock()

	similar := s.processor.FindSimilarMedicines(query, names)
	writeStructJSON(w, map[string]interface{}{
		"query":   query,
		"count":   len(similar),
		"matches": similar,
	})
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.indexer == nil {
		writeError(w, http.StatusServiceUnavailable, "search backend not configured")
		return
	}

	query := r.URL.Query().Get("q")
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	hits, err := s.indexer.Search(query, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeStructJSON(w, map[string]interface{}{
		"query": query,
		"count": len(hits),
		"hits":  hits,
	})
}

func main() {
	cfg := LoadConfig()

	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "process":
			runProcess(cfg)
			return
		case "similar":
			runSimilar(cfg)
			return
		case "serve":
			runServer(cfg)
			return
		case "help":
			fmt.Println("Usage: pbf-price-compare [command]")
			fmt.Println("")
			fmt.Println("Commands:")
			fmt.Println("  (no args)      Start the HTTP API server")
			fmt.Println("  serve          Start the HTTP API server")
			fmt.Println("  process [dir]  Extract and compare prices from PDF sheets in dir")
			fmt.Println("  similar <name> Find medicines with similar names in the configured dir")
			fmt.Println("  help           Show this help message")
			return
		}
	}
	runServer(cfg)
}

// runProcess runs the extraction pipeline once and prints a batch summary.
func runProcess(cfg *Config) {
	dir := cfg.PBFDir
	if len(os.Args) > 2 {
		dir = os.Args[2]
	}

	s := newServer(cfg)
	records, comparisons, err := s.processDir(dir)
	if err != nil {
		log.Fatalf("Processing failed: %v", err)
	}

	stats := GetPriceStatistics(s.records)
	fmt.Printf("\nProcessed %s\n", dir)
	fmt.Printf("  Records:     %d\n", records)
	fmt.Printf("  Suppliers:   %d\n", stats.TotalPBFs)
	fmt.Printf("  Comparisons: %d\n", comparisons)

	deals := GetBestDeals(s.comparisons, 5)
	if len(deals) > 0 {
		fmt.Println("\nTop deals:")
		for i, deal := range deals {
			fmt.Printf("  %d. %-40s %s at %s (hemat %.1f%%)\n",
				i+1, deal.NamaObat, FormatRupiah(deal.HargaTerbaik), deal.PBFTerbaik, deal.PersentaseHemat)
		}
	}
}

func runSimilar(cfg *Config) {
	if len(os.Args) < 3 {
		log.Fatal("Usage: pbf-price-compare similar <name>")
	}
	target := os.Args[2]

	s := newServer(cfg)
	if _, _, err := s.processDir(cfg.PBFDir); err != nil {
		log.Fatalf("Processing failed: %v", err)
	}

	names := make([]string, 0, len(s.records))
	for _, record := range s.records {
		names = append(names, record.NamaObatCleaned)
	}

	similar := s.processor.FindSimilarMedicines(target, names)
	if len(similar) == 0 {
		fmt.Printf("No medicines similar to %q found\n", target)
		return
	}

	fmt.Printf("Medicines similar to %q:\n", target)
	for _, match := range similar {
		fmt.Printf("  %.2f  %s\n", match.SimilarityScore, match.NamaObat)
	}
}

func runServer(cfg *Config) {
	s := newServer(cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/process", s.handleProcess)
	mux.HandleFunc("/api/records", s.handleRecords)
	mux.HandleFunc("/api/comparison", s.handleComparison)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/performance", s.handlePerformance)
	mux.HandleFunc("/api/deals", s.handleDeals)
	mux.HandleFunc("/api/similar", s.handleSimilar)
	mux.HandleFunc("/api/search", s.handleSearch)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	// Wrap with CORS and h2c for HTTP/2 support
	h2cHandler := h2c.NewHandler(corsHandler.Handler(mux), &http2.Server{})

	log.Printf("HTTP API server listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, h2cHandler); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}
}
