// Package database provides the query facade over the hh vacancy database.
//
// FILE: queries_employer.go
// PURPOSE: Employer-level aggregates.
//
// KEY FUNCTIONS:
// - GetCompaniesAndVacanciesCount: Vacancy count per employer, largest first
package database

import (
	"context"
	"fmt"

	"github.com/willfong/hh-vacancies/internal/models"
)

// GetCompaniesAndVacanciesCount lists every employer that has vacancies with
// the number of its vacancies, ordered by that number descending. Employers
// with equal counts are ordered by name.
func (m *DBManager) GetCompaniesAndVacanciesCount(ctx context.Context) ([]models.CompanyVacancies, error) {
	query := `
		SELECT e.employer_name, COUNT(v.vacancy_id) AS vacancy_count
		FROM employers e
		INNER JOIN vacancies v ON v.employer_id = e.employer_id
		GROUP BY e.employer_name
		ORDER BY vacancy_count DESC, e.employer_name ASC`

	rows, err := m.pool.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("companies and vacancies count: %w", err)
	}

	counts, err := collectRows(rows, scanCompanyVacancies)
	if err != nil {
		return nil, fmt.Errorf("companies and vacancies count: %w", err)
	}
	return counts, nil
}
