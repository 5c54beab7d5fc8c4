package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// vacanciesCmd represents the vacancies command
var vacanciesCmd = &cobra.Command{
	Use:   "vacancies",
	Short: "List vacancies that state a salary",
	Long: `List every vacancy with a stated salary: employer, vacancy name,
salary and link, highest salary first. Vacancies without a salary
(NULL or 0) are left out.`,
	Args: cobra.NoArgs,
	RunE: runVacancies,
}

func init() {
	rootCmd.AddCommand(vacanciesCmd)
}

func runVacancies(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	vacancies, err := s.manager.GetAllVacancies(s.ctx)
	if err != nil {
		return fmt.Errorf("listing vacancies: %w", err)
	}

	rows := make([][]string, len(vacancies))
	for i, v := range vacancies {
		rows[i] = []string{v.EmployerName, v.VacancyName, s.display(v.Salary), v.URL}
	}
	fmt.Print(stdoutUI().Table([]string{"Employer", "Vacancy", "Salary", "URL"}, rows, 2))
	return nil
}
