// Package database provides the query facade over the hh vacancy database.
//
// FILE: scanners.go
// PURPOSE: Row scanning helper functions for converting database rows to model structs.
//
// KEY FUNCTIONS:
// - collectRows: Drains a result set through a scan function
// - scanCompanyVacancies: Scans an employer/count row
// - scanVacancyListing: Scans a joined vacancy row
// - scanVacancySalary: Scans a vacancy name/salary row
//
// RELATED FILES:
// - queries_employer.go: Uses scanCompanyVacancies
// - queries_vacancy.go: Uses scanVacancyListing
// - queries_salary.go: Uses scanVacancySalary
package database

import (
	"database/sql"

	"github.com/willfong/hh-vacancies/internal/models"
)

// collectRows scans every row and closes rows. The result set is fully
// materialized before returning.
func collectRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanCompanyVacancies(rows *sql.Rows) (models.CompanyVacancies, error) {
	var c models.CompanyVacancies
	err := rows.Scan(&c.EmployerName, &c.VacancyCount)
	return c, err
}

func scanVacancyListing(rows *sql.Rows) (models.VacancyListing, error) {
	var v models.VacancyListing
	err := rows.Scan(&v.EmployerName, &v.VacancyName, &v.Salary, &v.URL)
	return v, err
}

func scanVacancySalary(rows *sql.Rows) (models.VacancySalary, error) {
	var v models.VacancySalary
	err := rows.Scan(&v.VacancyName, &v.Salary)
	return v, err
}
