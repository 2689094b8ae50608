package catalog

import "context"

// Source yields raw rows (column name -> raw text) from one dataset file.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]map[string]string, error)
}
