package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Columns maps canonical course fields to dataset column names. Exact column
// names are a configuration detail, not part of the engine contract.
type Columns struct {
	Title            string `yaml:"title"`
	Organization     string `yaml:"organization"`
	CertificateType  string `yaml:"certificate_type"`
	Difficulty       string `yaml:"difficulty"`
	Rating           string `yaml:"rating"`
	StudentsEnrolled string `yaml:"students_enrolled"`
}

type Dataset struct {
	// Paths lists one or more dataset files (.csv, .db/.sqlite, .html).
	Paths   []string `yaml:"paths"`
	Table   string   `yaml:"table"` // sqlite table name
	Columns Columns  `yaml:"columns"`
}

type Scoring struct {
	PhraseWeight     float64 `yaml:"phrase_weight"`
	RatingWeight     float64 `yaml:"rating_weight"`
	EnrollWeight     float64 `yaml:"enroll_weight"`
	EnrollSaturation float64 `yaml:"enroll_saturation"`
	RelevanceFloor   float64 `yaml:"relevance_floor"`
	PoolSize         int     `yaml:"pool_size"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Dataset Dataset `yaml:"dataset"`

	Scoring Scoring `yaml:"scoring"`

	Telegram struct {
		Enabled         bool    `yaml:"enabled"`
		PollSeconds     int     `yaml:"poll_seconds"`
		MessagesPerSec  float64 `yaml:"messages_per_sec"`
		KeyringAccount  string  `yaml:"keyring_account"`
		ResultsPerReply int     `yaml:"results_per_reply"`
	} `yaml:"telegram"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return ApplyDefaults(cfg), nil
}

// DefaultColumns matches the coursea_data.csv headers the bot originally shipped with.
func DefaultColumns() Columns {
	return Columns{
		Title:            "course_title",
		Organization:     "course_organization",
		CertificateType:  "course_Certificate_type",
		Difficulty:       "course_difficulty",
		Rating:           "course_rating",
		StudentsEnrolled: "course_students_enrolled",
	}
}

// ApplyDefaults fills zero values so a minimal config file still runs.
func ApplyDefaults(cfg Config) Config {
	out := cfg
	if out.App.Port == 0 {
		out.App.Port = 38491
	}
	if out.Dataset.Table == "" {
		out.Dataset.Table = "courses"
	}
	if out.Dataset.Columns == (Columns{}) {
		out.Dataset.Columns = DefaultColumns()
	}
	if out.Scoring.PhraseWeight == 0 {
		out.Scoring.PhraseWeight = 0.25
	}
	if out.Scoring.RatingWeight == 0 {
		out.Scoring.RatingWeight = 0.05
	}
	if out.Scoring.EnrollWeight == 0 {
		out.Scoring.EnrollWeight = 0.05
	}
	if out.Scoring.EnrollSaturation == 0 {
		out.Scoring.EnrollSaturation = 10_000_000
	}
	if out.Scoring.RelevanceFloor == 0 {
		out.Scoring.RelevanceFloor = 0.05
	}
	if out.Scoring.PoolSize == 0 {
		out.Scoring.PoolSize = 25
	}
	if out.Telegram.PollSeconds == 0 {
		out.Telegram.PollSeconds = 30
	}
	if out.Telegram.MessagesPerSec == 0 {
		out.Telegram.MessagesPerSec = 25
	}
	if out.Telegram.ResultsPerReply == 0 {
		out.Telegram.ResultsPerReply = 5
	}
	return out
}
