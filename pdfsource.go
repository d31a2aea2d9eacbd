package main

import (
	"fmt"
	"log"

	pdfplumber "github.com/allieus/pdfplumber-go"
)

// pdfTableSource adapts pdfplumber's table detection to the TableSource
// boundary. The line-based strategy is the primary engine; the text-based
// strategy serves as the fallback for sheets drawn without gridlines.
type pdfTableSource struct {
	path string
	opts []pdfplumber.TableExtractionOption
}

func newLineTableSource(path string) TableSource {
	return &pdfTableSource{path: path}
}

func newTextTableSource(path string) TableSource {
	return &pdfTableSource{
		path: path,
		opts: []pdfplumber.TableExtractionOption{
			pdfplumber.WithTableStrategy("text", "text"),
		},
	}
}

// Pages opens the document, detects tables on every page and converts them
// to raw cell grids. A page that fails to load contributes an empty entry so
// page numbering stays stable for the remaining pages.
func (s *pdfTableSource) Pages() ([]PageTables, error) {
	doc, err := pdfplumber.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", s.path, err)
	}
	defer doc.Close()

	pages := make([]PageTables, 0, doc.PageCount())
	for i := 0; i < doc.PageCount(); i++ {
		page, err := doc.GetPage(i)
		if err != nil {
			log.Printf("Failed to load page %d of %s: %v", i+1, s.path, err)
			pages = append(pages, PageTables{})
			continue
		}

		pt := PageTables{}
		for _, table := range page.ExtractTables(s.opts...) {
			pt.Tables = append(pt.Tables, RawTable{
				Rows: table.Rows,
				X0:   table.BBox.X0,
				X1:   table.BBox.X1,
			})
			// The detector reports no page geometry, so the horizontal
			// extent is taken from the detected content itself.
			if table.BBox.X1 > pt.Width {
				pt.Width = table.BBox.X1
			}
			if table.BBox.Y1 > pt.Height {
				pt.Height = table.BBox.Y1
			}
		}
		pages = append(pages, pt)
	}

	return pages, nil
}

func (s *pdfTableSource) Close() error { return nil }
