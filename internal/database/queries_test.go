package database

import (
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/willfong/hh-vacancies/internal/models"
	"github.com/willfong/hh-vacancies/internal/utils"
)

func TestGetCompaniesAndVacanciesCount(t *testing.T) {
	m, db := newTestManager(t)
	ctx := testContext(t)

	// Insert the smaller employer first so ordering comes from the query
	seedVacancies(t, db, models.Employer{ID: 2, Name: "Company B"}, 100, 200, 300)
	seedVacancies(t, db, models.Employer{ID: 1, Name: "Company A"}, 100, -1, 0, 400, 500)
	insertEmployer(t, db, models.Employer{ID: 3, Name: "Company Without Vacancies"})

	result, err := m.GetCompaniesAndVacanciesCount(ctx)
	if err != nil {
		t.Fatalf("GetCompaniesAndVacanciesCount failed: %v", err)
	}

	expected := []models.CompanyVacancies{
		{EmployerName: "Company A", VacancyCount: 5},
		{EmployerName: "Company B", VacancyCount: 3},
	}
	if len(result) != len(expected) {
		t.Fatalf("Expected %d rows, got %d: %+v", len(expected), len(result), result)
	}
	for i := range expected {
		if result[i] != expected[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, expected[i], result[i])
		}
	}
}

func TestGetCompaniesAndVacanciesCount_NonIncreasing(t *testing.T) {
	m, db := newTestManager(t)
	ctx := testContext(t)

	seedVacancies(t, db, models.Employer{ID: 1, Name: "Yandex"}, 1, 2)
	seedVacancies(t, db, models.Employer{ID: 2, Name: "Sber"}, 1, 2, 3, 4)
	seedVacancies(t, db, models.Employer{ID: 3, Name: "Avito"}, 1, 2)
	seedVacancies(t, db, models.Employer{ID: 4, Name: "Ozon"}, 1)

	result, err := m.GetCompaniesAndVacanciesCount(ctx)
	if err != nil {
		t.Fatalf("GetCompaniesAndVacanciesCount failed: %v", err)
	}
	if len(result) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(result))
	}

	for i := 1; i < len(result); i++ {
		if result[i].VacancyCount > result[i-1].VacancyCount {
			t.Errorf("counts not sorted descending at %d: %+v", i, result)
		}
	}
	// Ties are ordered by employer name
	if result[1].EmployerName != "Avito" || result[2].EmployerName != "Yandex" {
		t.Errorf("Expected tie order Avito, Yandex; got %s, %s", result[1].EmployerName, result[2].EmployerName)
	}
}

func TestGetAllVacancies(t *testing.T) {
	m, db := newTestManager(t)
	ctx := testContext(t)

	seedVacancies(t, db, models.Employer{ID: 1, Name: "Company A"}, 1000, 0, -1, 3000)
	seedVacancies(t, db, models.Employer{ID: 2, Name: "Company B"}, 2000)

	result, err := m.GetAllVacancies(ctx)
	if err != nil {
		t.Fatalf("GetAllVacancies failed: %v", err)
	}

	if len(result) != 3 {
		t.Fatalf("Expected 3 vacancies with salary, got %d: %+v", len(result), result)
	}

	expectedSalaries := []utils.Money{utils.Units(3000), utils.Units(2000), utils.Units(1000)}
	for i, v := range result {
		if v.Salary != expectedSalaries[i] {
			t.Errorf("row %d: expected salary %s, got %s", i, expectedSalaries[i], v.Salary)
		}
		if v.Salary == 0 {
			t.Errorf("row %d: zero salary must be excluded", i)
		}
		if v.URL == "" || v.VacancyName == "" {
			t.Errorf("row %d: missing fields: %+v", i, v)
		}
	}

	if result[1].EmployerName != "Company B" {
		t.Errorf("Expected Company B for the 2000 salary, got %s", result[1].EmployerName)
	}
}

func TestGetAvgSalary(t *testing.T) {
	tests := []struct {
		name     string
		salaries []int64
		expected string
	}{
		{"whole average", []int64{1000, 2500}, "1750.00"},
		{"nulls and zeros excluded", []int64{1000, 2000, 3000, -1, 0}, "2000.00"},
		{"half", []int64{1000, 1001}, "1000.50"},
		{"rounds down", []int64{1000, 1000, 1001}, "1000.33"},
		{"rounds up", []int64{1, 2, 2}, "1.67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, db := newTestManager(t)
			ctx := testContext(t)

			seedVacancies(t, db, models.Employer{ID: 1, Name: "Company A"}, tt.salaries...)

			avg, err := m.GetAvgSalary(ctx)
			if err != nil {
				t.Fatalf("GetAvgSalary failed: %v", err)
			}
			if avg != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, avg)
			}
		})
	}
}

func TestGetAvgSalary_NoSalaryData(t *testing.T) {
	m, db := newTestManager(t)
	ctx := testContext(t)

	seedVacancies(t, db, models.Employer{ID: 1, Name: "Company A"}, -1, 0)

	_, err := m.GetAvgSalary(ctx)
	if !errors.Is(err, ErrNoSalaryData) {
		t.Errorf("Expected ErrNoSalaryData, got %v", err)
	}
	if IsConnectionError(err) {
		t.Error("ErrNoSalaryData must not be reported as a connection error")
	}
}

func TestGetVacanciesWithHigherSalary(t *testing.T) {
	m, db := newTestManager(t)
	ctx := testContext(t)

	seedVacancies(t, db, models.Employer{ID: 1, Name: "Company A"}, 1000, 2000, 3000, -1, 0)

	avg, err := m.GetAvgSalaryValue(ctx)
	if err != nil {
		t.Fatalf("GetAvgSalaryValue failed: %v", err)
	}
	if avg != utils.Units(2000) {
		t.Fatalf("Expected average 2000.00, got %s", avg)
	}

	result, err := m.GetVacanciesWithHigherSalary(ctx)
	if err != nil {
		t.Fatalf("GetVacanciesWithHigherSalary failed: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Expected 1 vacancy above average, got %d: %+v", len(result), result)
	}
	if result[0].Salary != utils.Units(3000) {
		t.Errorf("Expected the 3000 vacancy, got %+v", result[0])
	}
	for _, v := range result {
		if v.Salary <= avg {
			t.Errorf("vacancy %q at %s is not above average %s", v.VacancyName, v.Salary, avg)
		}
	}
}

func TestGetVacanciesWithHigherSalary_Empty(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := testContext(t)

	result, err := m.GetVacanciesWithHigherSalary(ctx)
	if err != nil {
		t.Fatalf("GetVacanciesWithHigherSalary on empty tables failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("Expected no rows, got %+v", result)
	}
}

func seedNamedVacancies(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	insertEmployer(t, db, models.Employer{ID: 1, Name: "Company A"})
	for i, name := range names {
		insertVacancy(t, db, models.Vacancy{
			ID:         int64(i + 1),
			EmployerID: 1,
			Name:       name,
			URL:        "https://hh.ru/vacancy/1",
		})
	}
}

func TestGetVacanciesWithKeyword(t *testing.T) {
	m, db := newTestManager(t)
	ctx := testContext(t)

	seedNamedVacancies(t, db, "Senior Developer", "Go developer", "QA Engineer", "Data Analyst")

	tests := []struct {
		keyword  string
		expected []string
	}{
		{"DEV", []string{"Go developer", "Senior Developer"}},
		{"developer", []string{"Go developer", "Senior Developer"}},
		{"engineer", []string{"QA Engineer"}},
		{"lyst", []string{"Data Analyst"}},
		{"", []string{"Data Analyst", "Go developer", "QA Engineer", "Senior Developer"}},
		{"rust", nil},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			result, err := m.GetVacanciesWithKeyword(ctx, tt.keyword)
			if err != nil {
				t.Fatalf("GetVacanciesWithKeyword(%q) failed: %v", tt.keyword, err)
			}
			sort.Strings(result)
			if len(result) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, result)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("Expected %v, got %v", tt.expected, result)
					break
				}
			}
		})
	}
}

func TestGetVacanciesWithKeyword_Cyrillic(t *testing.T) {
	m, db := newTestManager(t)
	ctx := testContext(t)

	seedNamedVacancies(t, db, "Разработчик Go", "Senior Developer", "Ведущий РАЗРАБОТЧИК", "Аналитик")

	tests := []struct {
		keyword  string
		expected []string
	}{
		{"разработчик", []string{"Ведущий РАЗРАБОТЧИК", "Разработчик Go"}},
		{"РАЗРАБОТЧИК", []string{"Ведущий РАЗРАБОТЧИК", "Разработчик Go"}},
		{"АнАлИтИк", []string{"Аналитик"}},
		{"DEV", []string{"Senior Developer"}},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			result, err := m.GetVacanciesWithKeyword(ctx, tt.keyword)
			if err != nil {
				t.Fatalf("GetVacanciesWithKeyword(%q) failed: %v", tt.keyword, err)
			}
			sort.Strings(result)
			if strings.Join(result, "|") != strings.Join(tt.expected, "|") {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestGetVacanciesWithKeyword_QuotesAreBound(t *testing.T) {
	m, db := newTestManager(t)
	ctx := testContext(t)

	seedNamedVacancies(t, db, "Senior Developer", "O'Reilly editor")

	tests := []struct {
		keyword  string
		expected int
	}{
		{"' OR '1'='1", 0},
		{"'; DROP TABLE vacancies; --", 0},
		{"o'reilly", 1},
	}

	for _, tt := range tests {
		result, err := m.GetVacanciesWithKeyword(ctx, tt.keyword)
		if err != nil {
			t.Errorf("GetVacanciesWithKeyword(%q) returned SQL error: %v", tt.keyword, err)
			continue
		}
		if len(result) != tt.expected {
			t.Errorf("GetVacanciesWithKeyword(%q): expected %d rows, got %v", tt.keyword, tt.expected, result)
		}
	}

	// The table must survive the injection attempt
	all, err := m.GetVacanciesWithKeyword(ctx, "")
	if err != nil || len(all) != 2 {
		t.Errorf("Expected both vacancies intact, got %v (err %v)", all, err)
	}
}

func TestKeywordPattern(t *testing.T) {
	tests := []struct {
		keyword  string
		expected string
	}{
		{"DEV", "%dev%"},
		{"", "%%"},
		{"Go Dev", "%go dev%"},
		{"Разработчик", "%разработчик%"},
	}
	for _, tt := range tests {
		if got := keywordPattern(tt.keyword); got != tt.expected {
			t.Errorf("keywordPattern(%q) = %q, want %q", tt.keyword, got, tt.expected)
		}
	}
}

func TestDBManager_ConcurrentCallers(t *testing.T) {
	m, db := newTestManager(t)
	ctx := testContext(t)

	seedVacancies(t, db, models.Employer{ID: 1, Name: "Company A"}, 1000, 2000, 3000)

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 10; i++ {
		wg.Add(4)
		go func() {
			defer wg.Done()
			_, err := m.GetCompaniesAndVacanciesCount(ctx)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := m.GetAllVacancies(ctx)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := m.GetAvgSalary(ctx)
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := m.GetVacanciesWithKeyword(ctx, "vacancy")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent query failed: %v", err)
		}
	}

	stats := m.Stats()
	if stats.TotalQueries != 40 {
		t.Errorf("Expected 40 queries recorded, got %d", stats.TotalQueries)
	}
	if stats.FailedQueries != 0 {
		t.Errorf("Expected no failed queries, got %d", stats.FailedQueries)
	}
}
