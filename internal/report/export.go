package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
)

const summaryFilename = "SUMMARY.txt"

// Item links an exported report to the file it was written to.
type Item struct {
	Report   Definition
	FilePath string
	Size     int
}

// Export writes every catalogue report in its preferred format to outputDir, followed by a summary file.
func (s *Service) Export(ctx context.Context, filter purchaserequest.Filter, outputDir string) ([]Item, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	items := make([]Item, 0, len(catalogue))

	for _, def := range catalogue {
		doc, err := s.Generate(ctx, def.ID, def.Formats[0], filter)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", def.ID, err)
		}

		path := filepath.Join(outputDir, doc.Filename)
		if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}

		items = append(items, Item{Report: def, FilePath: path, Size: len(doc.Data)})
	}

	summary := filepath.Join(outputDir, summaryFilename)
	if err := os.WriteFile(summary, []byte(Summary(items)), 0o644); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	return items, nil
}

// Summary renders a plain-text index of the exported reports.
func Summary(items []Item) string {
	var sb strings.Builder

	for _, item := range items {
		fmt.Fprintf(&sb, "* %s | %s | %s | %d bytes\n",
			item.Report.Name, item.Report.Category, filepath.Base(item.FilePath), item.Size)
	}

	return sb.String()
}
