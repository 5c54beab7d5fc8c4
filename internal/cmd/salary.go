package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/willfong/hh-vacancies/internal/database"
)

// avgSalaryCmd represents the avg-salary command
var avgSalaryCmd = &cobra.Command{
	Use:   "avg-salary",
	Short: "Print the average salary over vacancies that state one",
	Long: `Print the arithmetic mean salary of all vacancies with a stated
salary, rounded half-up to two decimal places (e.g. 1750.00).

Plain output is the bare number, for use in scripts.`,
	Args: cobra.NoArgs,
	RunE: runAvgSalary,
}

// aboveAvgCmd represents the above-avg command
var aboveAvgCmd = &cobra.Command{
	Use:   "above-avg",
	Short: "List vacancies paying more than the average",
	Long: `List vacancies whose salary is strictly greater than the average
salary. The average is computed in the same query, so the list is
consistent with it even while the collector is writing.`,
	Args: cobra.NoArgs,
	RunE: runAboveAvg,
}

func init() {
	rootCmd.AddCommand(avgSalaryCmd)
	rootCmd.AddCommand(aboveAvgCmd)
}

func runAvgSalary(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	avg, err := s.manager.GetAvgSalaryValue(s.ctx)
	if errors.Is(err, database.ErrNoSalaryData) {
		return fmt.Errorf("cannot compute an average: %w", err)
	}
	if err != nil {
		return fmt.Errorf("computing average salary: %w", err)
	}

	out := stdoutUI()
	if !out.IsTTY || out.NoColor {
		fmt.Println(avg.String())
		return nil
	}
	fmt.Println(out.KeyValue("Average salary", fmt.Sprintf("%s (%s)", avg.String(), s.display(avg))))
	return nil
}

func runAboveAvg(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	vacancies, err := s.manager.GetVacanciesWithHigherSalary(s.ctx)
	if err != nil {
		return fmt.Errorf("listing vacancies above average: %w", err)
	}

	rows := make([][]string, len(vacancies))
	for i, v := range vacancies {
		rows[i] = []string{v.VacancyName, s.display(v.Salary)}
	}
	fmt.Print(stdoutUI().Table([]string{"Vacancy", "Salary"}, rows, 1))
	return nil
}
