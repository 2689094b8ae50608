package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := ApplyDefaults(cfg)
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}
	out.Dataset.Paths = trimList(out.Dataset.Paths)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if len(out.Dataset.Paths) == 0 {
		res.addErr("dataset.paths must list at least one dataset file")
	}
	for i, p := range out.Dataset.Paths {
		switch strings.ToLower(filepath.Ext(p)) {
		case ".csv", ".db", ".sqlite", ".sqlite3", ".html", ".htm":
		default:
			res.addErr("dataset.paths[%d]: unsupported extension %q (want .csv, .db, .sqlite or .html)", i, filepath.Ext(p))
		}
	}
	if out.Dataset.Columns.Title == "" {
		res.addErr("dataset.columns.title is required")
	}

	if out.Scoring.RelevanceFloor <= 0 {
		res.addErr("scoring.relevance_floor must be > 0")
	}
	if out.Scoring.RelevanceFloor >= 1 {
		res.addWarn("scoring.relevance_floor is %.2f; almost nothing will clear it.", out.Scoring.RelevanceFloor)
	}
	if out.Scoring.EnrollSaturation <= 1 {
		res.addErr("scoring.enroll_saturation must be > 1")
	}
	if out.Scoring.RatingWeight < 0 || out.Scoring.EnrollWeight < 0 || out.Scoring.PhraseWeight < 0 {
		res.addErr("scoring weights must be >= 0")
	}
	if out.Scoring.RatingWeight+out.Scoring.EnrollWeight > 0.5 {
		res.addWarn("quality prior weights sum to %.2f; the prior may dominate text relevance.",
			out.Scoring.RatingWeight+out.Scoring.EnrollWeight)
	}
	if out.Scoring.PoolSize <= 0 {
		res.addErr("scoring.pool_size must be > 0")
	}

	if out.Telegram.Enabled {
		if out.Telegram.PollSeconds <= 0 {
			res.addErr("telegram.poll_seconds must be > 0 when telegram.enabled=true")
		}
		if out.Telegram.MessagesPerSec <= 0 {
			res.addErr("telegram.messages_per_sec must be > 0 when telegram.enabled=true")
		} else if out.Telegram.MessagesPerSec > 30 {
			res.addWarn("telegram.messages_per_sec is %.0f; Telegram throttles around 30.", out.Telegram.MessagesPerSec)
		}
		if out.Telegram.ResultsPerReply <= 0 {
			res.addErr("telegram.results_per_reply must be > 0")
		}
	}

	return out, res
}
