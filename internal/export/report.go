// Package export writes the results of every facade query to files:
// an xlsx workbook with one sheet per query, or one CSV file per query.
package export

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/willfong/hh-vacancies/internal/database"
	"github.com/willfong/hh-vacancies/internal/models"
	"github.com/willfong/hh-vacancies/internal/utils"
)

// Source is the part of the query facade an export reads from.
// *database.DBManager satisfies it.
type Source interface {
	GetCompaniesAndVacanciesCount(ctx context.Context) ([]models.CompanyVacancies, error)
	GetAllVacancies(ctx context.Context) ([]models.VacancyListing, error)
	GetAvgSalaryValue(ctx context.Context) (utils.Money, error)
	GetVacanciesWithHigherSalary(ctx context.Context) ([]models.VacancySalary, error)
	GetVacanciesWithKeyword(ctx context.Context, keyword string) ([]string, error)
}

// Report holds the results of all five queries taken together
type Report struct {
	GeneratedAt time.Time

	Companies    []models.CompanyVacancies
	Vacancies    []models.VacancyListing
	AboveAverage []models.VacancySalary

	// AverageSalary is only meaningful when HasAverage is true
	AverageSalary utils.Money
	HasAverage    bool

	Keyword string
	Matches []string
}

// Collect runs every query against src. A database without stated salaries
// is not an error here: the report simply has no average.
func Collect(ctx context.Context, src Source, keyword string) (*Report, error) {
	r := &Report{GeneratedAt: time.Now(), Keyword: keyword}

	var err error
	if r.Companies, err = src.GetCompaniesAndVacanciesCount(ctx); err != nil {
		return nil, err
	}
	if r.Vacancies, err = src.GetAllVacancies(ctx); err != nil {
		return nil, err
	}

	r.AverageSalary, err = src.GetAvgSalaryValue(ctx)
	switch {
	case err == nil:
		r.HasAverage = true
	case errors.Is(err, database.ErrNoSalaryData):
		// leave HasAverage false
	default:
		return nil, err
	}

	if r.AboveAverage, err = src.GetVacanciesWithHigherSalary(ctx); err != nil {
		return nil, err
	}
	if r.Matches, err = src.GetVacanciesWithKeyword(ctx, keyword); err != nil {
		return nil, err
	}
	return r, nil
}

// Sheet is one query's result laid out as a table
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// StringRows returns the rows with every cell formatted as text
func (s Sheet) StringRows() [][]string {
	rows := make([][]string, len(s.Rows))
	for i, row := range s.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = formatCell(cell)
		}
		rows[i] = cells
	}
	return rows
}

func formatCell(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', 2, 64)
	case utils.Money:
		return c.String()
	case time.Time:
		return c.Format(time.DateTime)
	default:
		return ""
	}
}

// Sheets lays the report out as tables, summary first
func (r *Report) Sheets() []Sheet {
	average := "n/a"
	if r.HasAverage {
		average = r.AverageSalary.String()
	}

	summary := Sheet{
		Name:    "Summary",
		Headers: []string{"Metric", "Value"},
		Rows: [][]any{
			{"Generated at", r.GeneratedAt.Format(time.DateTime)},
			{"Employers", int64(len(r.Companies))},
			{"Vacancies with salary", int64(len(r.Vacancies))},
			{"Average salary", average},
			{"Above average", int64(len(r.AboveAverage))},
			{"Keyword", r.Keyword},
			{"Keyword matches", int64(len(r.Matches))},
		},
	}

	companies := Sheet{Name: "Companies", Headers: []string{"Employer", "Vacancies"}}
	for _, c := range r.Companies {
		companies.Rows = append(companies.Rows, []any{c.EmployerName, c.VacancyCount})
	}

	vacancies := Sheet{Name: "Vacancies", Headers: []string{"Employer", "Vacancy", "Salary", "URL"}}
	for _, v := range r.Vacancies {
		vacancies.Rows = append(vacancies.Rows, []any{v.EmployerName, v.VacancyName, v.Salary, v.URL})
	}

	above := Sheet{Name: "Above average", Headers: []string{"Vacancy", "Salary"}}
	for _, v := range r.AboveAverage {
		above.Rows = append(above.Rows, []any{v.VacancyName, v.Salary})
	}

	search := Sheet{Name: "Search", Headers: []string{"Vacancy"}}
	for _, name := range r.Matches {
		search.Rows = append(search.Rows, []any{name})
	}

	return []Sheet{summary, companies, vacancies, above, search}
}
