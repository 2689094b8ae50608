package catalog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ChiChi812/course-recommendation-bot/internal/config"
	"github.com/ChiChi812/course-recommendation-bot/internal/domain"
)

// ErrNoTitle marks a raw row without a usable title. Such rows are skipped
// and counted, never fatal.
var ErrNoTitle = errors.New("row has no usable title")

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// ParseCount expands human-readable counts: "7.6k" -> 7600, "1.2m" -> 1200000,
// "500" -> 500. A trailing k multiplies by 1e3, m or mn by 1e6, case-insensitive.
// Thousands separators are stripped. Anything unparseable is 0.
func ParseCount(raw string) float64 {
	s := strings.ToLower(CleanText(raw))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "mn"):
		mult = 1_000_000
		s = strings.TrimSuffix(s, "mn")
	case strings.HasSuffix(s, "m"):
		mult = 1_000_000
		s = strings.TrimSuffix(s, "m")
	case strings.HasSuffix(s, "k"):
		mult = 1_000
		s = strings.TrimSuffix(s, "k")
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n < 0 {
		return 0
	}
	return n * mult
}

// ParseRating parses a decimal rating and clamps it to 0..5. Unparseable is 0.
func ParseRating(raw string) float64 {
	s := strings.ReplaceAll(CleanText(raw), ",", ".")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if n < 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

// NormalizeRow turns one raw row (column name -> raw text) into a Course.
// Pure: no side effects, missing columns become the unset marker.
func NormalizeRow(row map[string]string, cols config.Columns) (domain.Course, error) {
	title := CleanText(row[cols.Title])
	if title == "" {
		return domain.Course{}, ErrNoTitle
	}

	return domain.Course{
		Title:            title,
		Organization:     categorical(row, cols.Organization),
		CertificateType:  categorical(row, cols.CertificateType),
		Difficulty:       categorical(row, cols.Difficulty),
		Rating:           ParseRating(row[cols.Rating]),
		StudentsEnrolled: ParseCount(row[cols.StudentsEnrolled]),
	}, nil
}

func categorical(row map[string]string, col string) string {
	if col == "" {
		return domain.Unset
	}
	v, ok := row[col]
	if !ok {
		return domain.Unset
	}
	v = CleanText(v)
	if v == "" {
		return domain.Unset
	}
	return v
}
