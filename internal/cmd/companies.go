package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// companiesCmd represents the companies command
var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List employers with their number of vacancies",
	Long: `List every employer that has at least one vacancy, with the number of
vacancies, busiest employers first. Employers with the same count are
listed alphabetically.`,
	Args: cobra.NoArgs,
	RunE: runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	companies, err := s.manager.GetCompaniesAndVacanciesCount(s.ctx)
	if err != nil {
		return fmt.Errorf("listing companies: %w", err)
	}

	rows := make([][]string, len(companies))
	for i, c := range companies {
		rows[i] = []string{c.EmployerName, strconv.FormatInt(c.VacancyCount, 10)}
	}
	fmt.Print(stdoutUI().Table([]string{"Employer", "Vacancies"}, rows, 1))
	return nil
}
