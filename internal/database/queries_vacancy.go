// Package database provides the query facade over the hh vacancy database.
//
// FILE: queries_vacancy.go
// PURPOSE: Vacancy listings.
//
// KEY FUNCTIONS:
// - GetAllVacancies: Vacancies with a stated salary, joined with employer names
// - GetVacanciesWithKeyword: Case-insensitive substring search over vacancy names
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/willfong/hh-vacancies/internal/models"
)

// GetAllVacancies lists vacancies with their employer name, salary and URL,
// highest salary first. Vacancies whose salary is NULL or zero are not listed.
func (m *DBManager) GetAllVacancies(ctx context.Context) ([]models.VacancyListing, error) {
	query := `
		SELECT e.employer_name, v.vacancy_name, v.salary, v.vacancy_url
		FROM vacancies v
		INNER JOIN employers e ON e.employer_id = v.employer_id
		WHERE v.salary IS NOT NULL AND v.salary <> 0
		ORDER BY v.salary DESC`

	rows, err := m.pool.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("all vacancies: %w", err)
	}

	vacancies, err := collectRows(rows, scanVacancyListing)
	if err != nil {
		return nil, fmt.Errorf("all vacancies: %w", err)
	}
	return vacancies, nil
}

// GetVacanciesWithKeyword returns the names of vacancies containing keyword,
// ignoring case. The keyword is always bound as a parameter; an empty
// keyword matches every vacancy.
func (m *DBManager) GetVacanciesWithKeyword(ctx context.Context, keyword string) ([]string, error) {
	query := `
		SELECT vacancy_name
		FROM vacancies
		WHERE LOWER(vacancy_name) LIKE ?`

	rows, err := m.pool.QueryContext(ctx, query, keywordPattern(keyword))
	if err != nil {
		return nil, fmt.Errorf("vacancies with keyword: %w", err)
	}

	names, err := collectRows(rows, func(rows *sql.Rows) (string, error) {
		var name string
		err := rows.Scan(&name)
		return name, err
	})
	if err != nil {
		return nil, fmt.Errorf("vacancies with keyword: %w", err)
	}
	return names, nil
}

// keywordPattern turns a keyword into a LIKE pattern matching it anywhere
func keywordPattern(keyword string) string {
	return "%" + strings.ToLower(keyword) + "%"
}
