// Package database provides the query facade over the hh vacancy database.
//
// FILE: queries_salary.go
// PURPOSE: Salary statistics. Only vacancies with a non-NULL, non-zero
// salary take part, the same rule GetAllVacancies applies.
//
// KEY FUNCTIONS:
// - GetAvgSalary: Average salary as "1234.50"
// - GetAvgSalaryValue: Average salary as utils.Money
// - GetVacanciesWithHigherSalary: Vacancies paying strictly above the average
package database

import (
	"context"
	"fmt"

	"github.com/willfong/hh-vacancies/internal/models"
	"github.com/willfong/hh-vacancies/internal/utils"
)

// GetAvgSalary returns the average salary formatted with exactly two
// fractional digits, rounded half away from zero.
func (m *DBManager) GetAvgSalary(ctx context.Context) (string, error) {
	avg, err := m.GetAvgSalaryValue(ctx)
	if err != nil {
		return "", err
	}
	return avg.String(), nil
}

// GetAvgSalaryValue returns the average salary. ErrNoSalaryData is returned
// when no vacancy states a salary.
func (m *DBManager) GetAvgSalaryValue(ctx context.Context) (utils.Money, error) {
	query := `
		SELECT AVG(salary)
		FROM vacancies
		WHERE salary IS NOT NULL AND salary <> 0`

	var avg utils.NullMoney
	if err := m.pool.QueryRowContext(ctx, query).Scan(&avg); err != nil {
		return 0, fmt.Errorf("average salary: %w", err)
	}
	if !avg.Valid {
		return 0, fmt.Errorf("average salary: %w", ErrNoSalaryData)
	}
	return avg.Money, nil
}

// GetVacanciesWithHigherSalary lists vacancies whose salary is strictly
// greater than the average salary. The average is computed in the same
// statement, so both sides see one snapshot. Rows come back in storage order.
func (m *DBManager) GetVacanciesWithHigherSalary(ctx context.Context) ([]models.VacancySalary, error) {
	query := `
		SELECT vacancy_name, salary
		FROM vacancies
		WHERE salary > (
			SELECT AVG(salary)
			FROM vacancies
			WHERE salary IS NOT NULL AND salary <> 0
		)`

	rows, err := m.pool.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("vacancies with higher salary: %w", err)
	}

	vacancies, err := collectRows(rows, scanVacancySalary)
	if err != nil {
		return nil, fmt.Errorf("vacancies with higher salary: %w", err)
	}
	return vacancies, nil
}
