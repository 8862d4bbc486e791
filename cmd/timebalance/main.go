package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/api"
	"github.com/yourname/timebalance/internal/auth"
	"github.com/yourname/timebalance/internal/calendar"
	"github.com/yourname/timebalance/internal/config"
	"github.com/yourname/timebalance/internal/formatter"
	"github.com/yourname/timebalance/internal/service"
	"github.com/yourname/timebalance/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:           "timebalance",
	Short:         "Weekly time planning and reporting",
	Long:          "timebalance plans each week hour by hour across life categories, records what actually happened, and compares the two.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show planned vs actual hours for a week",
	RunE:  runSummary,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List logged hours per stored week",
	RunE:  runHistory,
}

var copyWeekCmd = &cobra.Command{
	Use:   "copy-week",
	Short: "Copy last week's plan into this week",
	RunE:  runCopyWeek,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a TOML config file (default $TIMEBALANCE_CONFIG)")
	rootCmd.PersistentFlags().String("user", "", "User ID (default: first configured user)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	summaryCmd.Flags().String("week", "current", "Any date of the week (YYYY-MM-DD) or 'current'")
	copyWeekCmd.Flags().String("week", "current", "Week to copy into (YYYY-MM-DD) or 'current'")
	historyCmd.Flags().Bool("trend", false, "Show the category trend table instead")
	historyCmd.Flags().StringSlice("weeks", nil, "Weeks to compare in the trend table (default: all)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(copyWeekCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is what every command needs: config, logger and an open store.
type env struct {
	cfg     *config.Config
	logger  *internal.ZapLogger
	store   storage.DocumentStore
	planner *service.Planner
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := internal.NewLogger(internal.LogOptions{Env: cfg.Env, Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, err
	}
	store, err := storage.New(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.StorageBackend, err)
	}
	return &env{cfg: cfg, logger: logger, store: store, planner: service.NewPlanner(store, logger)}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.logger.Errorf("closing storage: %v", err)
	}
	_ = e.logger.Sync()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Load(), nil
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// currentUser picks the --user account, falling back to the first
// configured user.
func currentUser(cmd *cobra.Command, cfg *config.Config) (*internal.User, error) {
	id, _ := cmd.Flags().GetString("user")
	for _, u := range cfg.Users {
		if id == "" || u.ID == id {
			return &internal.User{ID: u.ID, Name: u.Name, Token: u.Token}, nil
		}
	}
	if id == "" {
		return nil, errors.New("no user configured; pass --user")
	}
	return &internal.User{ID: id}, nil
}

func newFormatter(cmd *cobra.Command) *formatter.Formatter {
	noColor, _ := cmd.Flags().GetBool("no-color")
	fd := os.Stdout.Fd()
	color := !noColor && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	return formatter.New(color)
}

func weekFlag(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("week")
	return calendar.ResolveWeek(raw, time.Now())
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	app := api.NewServer(e.logger, e.planner)
	srv := &http.Server{
		Addr:              e.cfg.Addr,
		Handler:           api.NewRouter(app, auth.NewProvider(e.cfg, e.logger), e.cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		e.logger.Infof("Server running on %s (env=%s, storage=%s)", e.cfg.Addr, e.cfg.Env, e.cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	e.logger.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runSummary(cmd *cobra.Command, args []string) error {
	ws, err := weekFlag(cmd)
	if err != nil {
		return err
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	user, err := currentUser(cmd, e.cfg)
	if err != nil {
		return err
	}

	f := newFormatter(cmd)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	fmt.Fprint(out, f.Overview(e.planner.Overview(ctx, user, ws)))
	fmt.Fprintln(out)
	fmt.Fprint(out, f.Summary(calendar.FormatWeekRange(ws), e.planner.WeekSummary(ctx, user, ws)))
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	user, err := currentUser(cmd, e.cfg)
	if err != nil {
		return err
	}

	f := newFormatter(cmd)
	out := cmd.OutOrStdout()
	trend, _ := cmd.Flags().GetBool("trend")
	if !trend {
		fmt.Fprint(out, f.History(e.planner.History(cmd.Context(), user)))
		return nil
	}

	raw, _ := cmd.Flags().GetStringSlice("weeks")
	keys := make([]string, 0, len(raw))
	for _, r := range raw {
		ws, err := calendar.ResolveWeek(r, time.Now())
		if err != nil {
			return err
		}
		keys = append(keys, calendar.WeekKey(ws))
	}
	fmt.Fprint(out, f.Trend(e.planner.Trend(cmd.Context(), user, keys...)))
	return nil
}

func runCopyWeek(cmd *cobra.Command, args []string) error {
	ws, err := weekFlag(cmd)
	if err != nil {
		return err
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	user, err := currentUser(cmd, e.cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	grid, notes, ok := e.planner.CopyFromPreviousWeek(ctx, user, ws)
	if !ok {
		return fmt.Errorf("nothing to copy: the week of %s has no plan", calendar.FormatWeekRange(calendar.AddWeeks(ws, -1)))
	}
	if err := e.planner.SaveWeekPlan(ctx, user, ws, grid, notes); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Copied %d planned hours into the week of %s\n", len(grid), calendar.FormatWeekRange(ws))
	return nil
}
