package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/willfong/hh-vacancies/internal/config"
	"github.com/willfong/hh-vacancies/internal/database"
	"github.com/willfong/hh-vacancies/internal/ui"
	"github.com/willfong/hh-vacancies/internal/utils"
)

// session is what every query command needs: validated config, an open
// facade and a context bounded by --timeout.
type session struct {
	cfg     *config.Config
	ui      *ui.UI
	manager *database.DBManager
	ctx     context.Context
	cancel  context.CancelFunc
}

// openSession loads config and connects. The caller must call close.
func openSession(cmd *cobra.Command) (*session, error) {
	if configErr != nil {
		return nil, configErr
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	u := newUI()

	connectCtx, cancelConnect := context.WithTimeout(cmd.Context(), config.ConnectTimeout)
	defer cancelConnect()

	var manager *database.DBManager
	err = u.Spin("Connecting to "+config.DatabaseName, func() error {
		var err error
		manager, err = database.NewDBManager(connectCtx, cfg.Database)
		return err
	})
	if err != nil {
		return nil, err
	}

	if cfg.Verbose {
		fmt.Fprintln(os.Stderr, u.KeyValue("DSN", manager.Pool().MaskedDSN()))
	}

	s := &session{cfg: cfg, ui: u, manager: manager}
	if cfg.QueryTimeout > 0 {
		s.ctx, s.cancel = context.WithTimeout(cmd.Context(), cfg.QueryTimeout)
	} else {
		s.ctx, s.cancel = context.WithCancel(cmd.Context())
	}
	return s, nil
}

func (s *session) close() {
	s.cancel()
	if s.cfg.Verbose {
		stats := s.manager.Stats()
		fmt.Fprintln(os.Stderr, s.ui.SummaryBox("Query statistics", []ui.KV{
			{Key: "Queries", Value: fmt.Sprintf("%d", stats.TotalQueries)},
			{Key: "Failed", Value: fmt.Sprintf("%d", stats.FailedQueries)},
			{Key: "Avg latency", Value: stats.AvgLatency.Round(time.Microsecond).String()},
			{Key: "Open conns", Value: fmt.Sprintf("%d", stats.OpenConnections)},
		}))
	}
	s.manager.Close()
}

// display renders a salary in the configured currency
func (s *session) display(m utils.Money) string {
	return m.Format(s.cfg.Output.Currency)
}

// stdoutUI styles results for stdout, which may be piped even when
// stderr is a terminal
func stdoutUI() *ui.UI {
	out := ui.New()
	if noColor {
		out.SetNoColor(true)
	}
	return out
}
