package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"
)

// HTMLSource reads the first table of an HTML export (spreadsheet "save as
// web page" style). Header cells become column names.
type HTMLSource struct {
	Path string
}

func (s HTMLSource) Name() string { return "html:" + s.Path }

func (s HTMLSource) Fetch(ctx context.Context) ([]map[string]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%s: no table found", s.Path)
	}

	var header []string
	headerRow := table.Find("tr").First()
	headerRow.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		header = append(header, CleanText(cell.Text()))
	})
	if len(header) == 0 {
		return nil, fmt.Errorf("%s: table has no header row", s.Path)
	}

	var rows []map[string]string
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header
		}
		row := make(map[string]string, len(header))
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			if j < len(header) {
				row[header[j]] = td.Text()
			}
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
