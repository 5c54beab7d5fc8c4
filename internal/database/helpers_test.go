package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/willfong/hh-vacancies/internal/config"
	"github.com/willfong/hh-vacancies/internal/models"
	"github.com/willfong/hh-vacancies/internal/utils"
)

// newTestManager opens a DBManager on a fresh SQLite file with the
// reference schema applied. The second return value is a separate handle
// used only to seed rows.
func newTestManager(t *testing.T) (*DBManager, *sql.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hh_db.sqlite")

	seed, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening seed handle: %v", err)
	}
	t.Cleanup(func() { seed.Close() })

	statements, err := SchemaStatements("sqlite")
	if err != nil {
		t.Fatalf("loading schema: %v", err)
	}
	for _, stmt := range statements {
		if _, err := seed.Exec(stmt); err != nil {
			t.Fatalf("applying schema statement %q: %v", stmt, err)
		}
	}

	cfg := config.DefaultConfig().Database
	cfg.Driver = "sqlite"
	cfg.Path = path

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	m, err := NewDBManager(ctx, cfg)
	if err != nil {
		t.Fatalf("NewDBManager failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })

	return m, seed
}

func insertEmployer(t *testing.T, db *sql.DB, e models.Employer) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO employers (employer_id, employer_name) VALUES (?, ?)`, e.ID, e.Name)
	if err != nil {
		t.Fatalf("inserting employer %q: %v", e.Name, err)
	}
}

func insertVacancy(t *testing.T, db *sql.DB, v models.Vacancy) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO vacancies (vacancy_id, employer_id, vacancy_name, salary, vacancy_url) VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.EmployerID, v.Name, v.Salary, v.URL,
	)
	if err != nil {
		t.Fatalf("inserting vacancy %q: %v", v.Name, err)
	}
}

// seedVacancies inserts one employer and a vacancy per salary.
// A negative salary stands for NULL.
func seedVacancies(t *testing.T, db *sql.DB, employer models.Employer, salaries ...int64) {
	t.Helper()
	insertEmployer(t, db, employer)
	for i, s := range salaries {
		v := models.Vacancy{
			ID:         employer.ID*1000 + int64(i),
			EmployerID: employer.ID,
			Name:       employer.Name + " vacancy " + string(rune('A'+i)),
			URL:        "https://hh.ru/vacancy/" + string(rune('a'+i)),
		}
		if s >= 0 {
			v.Salary = utils.NullMoney{Money: utils.Units(s), Valid: true}
		}
		insertVacancy(t, db, v)
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}
