package bot

import (
	"fmt"
	"strings"

	"github.com/ChiChi812/course-recommendation-bot/internal/domain"
)

// escapeHTML escapes the three characters Telegram's HTML parse mode cares about.
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// humanCount shortens learner counts for display: 1200000 -> "1.2M", 7600 -> "7.6k".
func humanCount(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", n/1_000)
	default:
		return fmt.Sprintf("%d", int(n))
	}
}

func orNA(s string) string {
	if s == domain.Unset {
		return "N/A"
	}
	return s
}

// formatCourse renders one course as a Telegram HTML message.
func formatCourse(c domain.Course) string {
	return fmt.Sprintf(
		"<b>%s</b>\n🏫 %s | 🎓 %s | 🎯 %s\n⭐ Rating: %.1f   👥 Learners: %s",
		escapeHTML(c.Title),
		escapeHTML(orNA(c.Organization)),
		escapeHTML(orNA(c.CertificateType)),
		escapeHTML(orNA(c.Difficulty)),
		c.Rating,
		humanCount(c.StudentsEnrolled),
	)
}
