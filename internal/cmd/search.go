package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Find vacancies whose name contains a keyword",
	Long: `Print the names of vacancies whose name contains the keyword,
ignoring case. An empty keyword ("") matches every vacancy.

Example:
  hhq search python
  hhq search "data engineer"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	names, err := s.manager.GetVacanciesWithKeyword(s.ctx, args[0])
	if err != nil {
		return fmt.Errorf("searching vacancies: %w", err)
	}

	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{name}
	}
	fmt.Print(stdoutUI().Table([]string{"Vacancy"}, rows))
	return nil
}
