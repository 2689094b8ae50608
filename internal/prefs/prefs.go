package prefs

import (
	"strings"
	"sync"

	"github.com/ChiChi812/course-recommendation-bot/internal/domain"
)

// Store keeps per-chat preferences for the lifetime of the process. This is
// bot-layer state; the engine's catalog knows nothing about it.
type Store struct {
	mu sync.RWMutex
	m  map[int64]domain.Prefs
}

func NewStore() *Store {
	return &Store{m: make(map[int64]domain.Prefs)}
}

func (s *Store) Get(chatID int64) domain.Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[chatID]
}

func (s *Store) SetDifficulty(chatID int64, level string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.m[chatID]
	p.Difficulty = level
	s.m[chatID] = p
}

func (s *Store) SetCertificateType(chatID int64, cert string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.m[chatID]
	p.CertificateType = cert
	s.m[chatID] = p
}

func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, chatID)
}

// Apply post-filters engine results by the chat's saved preferences.
// Unset preferences never exclude anything; matching is case-insensitive
// substring, so "Professional" matches "PROFESSIONAL CERTIFICATE".
func Apply(courses []domain.Course, p domain.Prefs) []domain.Course {
	level := strings.ToLower(p.Difficulty)
	cert := strings.ToLower(p.CertificateType)
	if level == "" && cert == "" {
		return courses
	}

	var out []domain.Course
	for _, c := range courses {
		if level != "" && !strings.Contains(strings.ToLower(c.Difficulty), level) {
			continue
		}
		if cert != "" && !strings.Contains(strings.ToLower(c.CertificateType), cert) {
			continue
		}
		out = append(out, c)
	}
	return out
}
