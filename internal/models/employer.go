package models

// Employer represents a company posting vacancies on the job board
type Employer struct {
	// Primary identifier (the job board's employer id)
	ID int64 `db:"employer_id" json:"employer_id"`

	// Display name
	Name string `db:"employer_name" json:"employer_name"`
}

// CompanyVacancies is one row of the per-employer vacancy count report
type CompanyVacancies struct {
	EmployerName string `db:"employer_name" json:"employer_name"`
	VacancyCount int64  `db:"vacancy_count" json:"vacancy_count"`
}
