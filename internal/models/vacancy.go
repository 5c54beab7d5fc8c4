package models

import (
	"github.com/willfong/hh-vacancies/internal/utils"
)

// Vacancy represents a single job posting belonging to one employer
type Vacancy struct {
	// Primary identifier (the job board's vacancy id)
	ID int64 `db:"vacancy_id" json:"vacancy_id"`

	// Owning employer (many vacancies to one employer)
	EmployerID int64 `db:"employer_id" json:"employer_id"`

	Name string `db:"vacancy_name" json:"vacancy_name"`

	// Salary is NULL or zero when the posting does not state one.
	// Such vacancies are left out of every salary query.
	Salary utils.NullMoney `db:"salary" json:"salary"`

	URL string `db:"vacancy_url" json:"vacancy_url"`
}

// VacancyListing is a vacancy joined with its employer's name
type VacancyListing struct {
	EmployerName string      `db:"employer_name" json:"employer_name"`
	VacancyName  string      `db:"vacancy_name" json:"vacancy_name"`
	Salary       utils.Money `db:"salary" json:"salary"`
	URL          string      `db:"vacancy_url" json:"vacancy_url"`
}

// VacancySalary is a vacancy name with its salary
type VacancySalary struct {
	VacancyName string      `db:"vacancy_name" json:"vacancy_name"`
	Salary      utils.Money `db:"salary" json:"salary"`
}
