package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beaconhilldata/earmarker/internal/model"
)

// LoadPages reads the per-page plain-text files of one document from a
// directory. Files are ordered by name, so the usual page_001.txt
// naming keeps book order. PDF-to-text extraction happens upstream;
// this tool only ever sees text.
func LoadPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read pages dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		files = append(files, e.Name())
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .txt pages in %s", dir)
	}
	sort.Strings(files)

	pages := make([]string, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", name, err)
		}
		pages = append(pages, string(data))
	}
	return pages, nil
}

// LoadDocument builds a Document from a page directory.
func LoadDocument(dir string, fiscalYear int, chamber model.Chamber) (*model.Document, error) {
	pages, err := LoadPages(dir)
	if err != nil {
		return nil, err
	}
	return &model.Document{
		Chamber:    chamber,
		FiscalYear: fiscalYear,
		Pages:      pages,
	}, nil
}
