package catalog

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/ChiChi812/course-recommendation-bot/internal/config"
)

const csvFixture = `course_title,course_organization,course_Certificate_type,course_difficulty,course_rating,course_students_enrolled
Python for Beginners,Coursera,COURSE,Beginner,4.5,10k
Advanced Python,DeepLearn,SPECIALIZATION,Advanced,4.8,2k
Excel Basics,Sheets Inc,COURSE,Beginner,4.0,50k
,NoTitle Org,COURSE,Mixed,3.0,1k
Python for Beginners,Coursera,COURSE,Beginner,4.5,10k
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFixture(t, "courses.csv", csvFixture)

	cat, err := Load(context.Background(), config.Dataset{
		Paths:   []string{path},
		Columns: config.DefaultColumns(),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	st := cat.Stats()
	if st.Loaded != 3 {
		t.Errorf("Loaded = %d, want 3", st.Loaded)
	}
	if st.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 (the titleless row)", st.Skipped)
	}
	if st.Deduped != 1 {
		t.Errorf("Deduped = %d, want 1 (the repeated raw row)", st.Deduped)
	}

	first := cat.Courses()[0]
	if first.Title != "Python for Beginners" || first.StudentsEnrolled != 10000 {
		t.Errorf("first course = %+v, want Python for Beginners / 10000", first)
	}
}

func TestLoadZeroValidRecords(t *testing.T) {
	path := writeFixture(t, "empty.csv",
		"course_title,course_rating\n,4.0\n   ,3.0\n")

	_, err := Load(context.Background(), config.Dataset{
		Paths:   []string{path},
		Columns: config.DefaultColumns(),
	})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), config.Dataset{
		Paths:   []string{filepath.Join(t.TempDir(), "nope.csv")},
		Columns: config.DefaultColumns(),
	})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %v, want *LoadError", err)
	}
}

func TestLoadHTML(t *testing.T) {
	html := `<html><body><table>
<tr><th>course_title</th><th>course_rating</th><th>course_students_enrolled</th></tr>
<tr><td>Go Fundamentals</td><td>4.7</td><td>7.6k</td></tr>
<tr><td>Rust Basics</td><td>4.6</td><td>1.2m</td></tr>
</table></body></html>`
	path := writeFixture(t, "courses.html", html)

	cat, err := Load(context.Background(), config.Dataset{
		Paths:   []string{path},
		Columns: config.DefaultColumns(),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len = %d, want 2", cat.Len())
	}
	if got := cat.Courses()[1].StudentsEnrolled; got != 1200000 {
		t.Errorf("StudentsEnrolled = %v, want 1200000", got)
	}
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.db")

	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`
CREATE TABLE courses (
  course_title TEXT,
  course_organization TEXT,
  course_rating TEXT,
  course_students_enrolled TEXT
);`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`
INSERT INTO courses VALUES
  ('SQL for Data Analysis', 'DataCamp', '4.3', '120k'),
  ('', 'Ghost Org', '1.0', '5');`)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(context.Background(), config.Dataset{
		Paths:   []string{path},
		Table:   "courses",
		Columns: config.DefaultColumns(),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("Len = %d, want 1", cat.Len())
	}
	c := cat.Courses()[0]
	if c.Title != "SQL for Data Analysis" || c.StudentsEnrolled != 120000 {
		t.Errorf("course = %+v", c)
	}
	if cat.Stats().Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", cat.Stats().Skipped)
	}
}

func TestLoadMergesSourcesInOrder(t *testing.T) {
	a := writeFixture(t, "a.csv",
		"course_title,course_rating\nCourse A,4.0\n")
	b := writeFixture(t, "b.csv",
		"course_title,course_rating\nCourse B,4.0\nCourse A,4.0\n")

	cat, err := Load(context.Background(), config.Dataset{
		Paths:   []string{a, b},
		Columns: config.DefaultColumns(),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (duplicate across files dropped)", cat.Len())
	}
	if cat.Courses()[0].Title != "Course A" || cat.Courses()[1].Title != "Course B" {
		t.Errorf("merge order wrong: %v, %v", cat.Courses()[0].Title, cat.Courses()[1].Title)
	}
	if cat.Stats().Deduped != 1 {
		t.Errorf("Deduped = %d, want 1", cat.Stats().Deduped)
	}
}
