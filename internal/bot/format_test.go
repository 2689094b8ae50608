package bot

import (
	"strings"
	"testing"

	"github.com/ChiChi812/course-recommendation-bot/internal/domain"
)

func TestHumanCount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1200000, "1.2M"},
		{7600, "7.6k"},
		{999, "999"},
		{0, "0"},
		{1000, "1.0k"},
	}
	for _, c := range cases {
		if got := humanCount(c.in); got != c.want {
			t.Errorf("humanCount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCourse(t *testing.T) {
	c := domain.Course{
		Title:            "C++ <Fundamentals>",
		Organization:     "ACME",
		Difficulty:       "Beginner",
		Rating:           4.25,
		StudentsEnrolled: 7600,
	}
	out := formatCourse(c)

	if !strings.Contains(out, "&lt;Fundamentals&gt;") {
		t.Errorf("title not HTML-escaped: %q", out)
	}
	if !strings.Contains(out, "4.2") {
		t.Errorf("rating not rendered to one decimal: %q", out)
	}
	if !strings.Contains(out, "7.6k") {
		t.Errorf("learner count not shortened: %q", out)
	}
	// unset certificate type renders as N/A
	if !strings.Contains(out, "N/A") {
		t.Errorf("unset field should render as N/A: %q", out)
	}
}
