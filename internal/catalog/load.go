package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ChiChi812/course-recommendation-bot/internal/config"
	"github.com/ChiChi812/course-recommendation-bot/internal/domain"
)

// LoadError is fatal: the dataset could not be read or yielded zero valid
// records. An empty catalog is not a sane running state for this system.
type LoadError struct {
	Msg string
	Err error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return "catalog load: " + e.Msg + ": " + e.Err.Error()
	}
	return "catalog load: " + e.Msg
}

func (e *LoadError) Unwrap() error { return e.Err }

func sourceFor(path, table string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVSource{Path: path}, nil
	case ".db", ".sqlite", ".sqlite3":
		return SQLiteSource{Path: path, Table: table}, nil
	case ".html", ".htm":
		return HTMLSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported dataset file %q", path)
	}
}

// Load builds the immutable catalog: fetch every configured source, merge in
// configuration order, drop exact duplicate raw rows, normalize, count skips.
func Load(ctx context.Context, ds config.Dataset) (*Catalog, error) {
	if len(ds.Paths) == 0 {
		return nil, &LoadError{Msg: "no dataset paths configured"}
	}

	sources := make([]Source, len(ds.Paths))
	for i, p := range ds.Paths {
		src, err := sourceFor(p, ds.Table)
		if err != nil {
			return nil, &LoadError{Msg: "bad dataset path", Err: err}
		}
		sources[i] = src
	}

	// Fetch all sources concurrently; keep results in configuration order so
	// repeated loads see the same catalog order.
	batches := make([][]map[string]string, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			rows, err := src.Fetch(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
			log.Printf("[catalog] source=%s rows=%d", src.Name(), len(rows))
			batches[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &LoadError{Msg: "dataset unreadable", Err: err}
	}

	var (
		courses []domain.Course
		stats   Stats
		seen    = map[string]bool{}
	)
	for _, rows := range batches {
		for _, row := range rows {
			key := rawKey(row)
			if seen[key] {
				stats.Deduped++
				continue
			}
			seen[key] = true

			c, err := NormalizeRow(row, ds.Columns)
			if err != nil {
				if errors.Is(err, ErrNoTitle) {
					stats.Skipped++
					continue
				}
				return nil, &LoadError{Msg: "normalize row", Err: err}
			}
			courses = append(courses, c)
		}
	}
	stats.Loaded = len(courses)

	if stats.Loaded == 0 {
		return nil, &LoadError{Msg: "dataset yielded zero valid records"}
	}
	if stats.Skipped > 0 || stats.Deduped > 0 {
		log.Printf("[catalog] loaded=%d skipped=%d deduped=%d", stats.Loaded, stats.Skipped, stats.Deduped)
	}

	return New(courses, stats), nil
}

// rawKey is the exact raw field tuple, used to drop duplicate source rows
// before normalization. Column order is made deterministic first.
func rawKey(row map[string]string) string {
	cols := make([]string, 0, len(row))
	for c := range row {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	var b strings.Builder
	for _, c := range cols {
		b.WriteString(c)
		b.WriteByte('\x1f')
		b.WriteString(row[c])
		b.WriteByte('\x1e')
	}
	return b.String()
}
