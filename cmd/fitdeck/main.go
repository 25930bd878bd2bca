package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/fitdeck/internal/config"
	"github.com/mmcdole/fitdeck/internal/domain"
	"github.com/mmcdole/fitdeck/internal/log"
	"github.com/mmcdole/fitdeck/internal/refresh"
	"github.com/mmcdole/fitdeck/internal/service"
	"github.com/mmcdole/fitdeck/internal/store"
	"github.com/mmcdole/fitdeck/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	configPath string
	addMetric  string
	summary    bool
	initConfig bool
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&opts.configPath, "config", "", "path to config.yaml")
	flag.StringVar(&opts.addMetric, "add", "", "record a reading without the UI: -add <metric> <value>")
	flag.BoolVar(&opts.summary, "summary", false, "print today's summary and exit")
	flag.BoolVar(&opts.initConfig, "init-config", false, "write the current configuration to disk and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("fitdeck %s\n", Version)
		return
	}

	if err := run(opts, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.initConfig {
		if err := config.SaveConfig(cfg, opts.configPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Println("Configuration saved.")
		return nil
	}

	// Setup logger
	logger, closeLog, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
		closeLog = func() error { return nil }
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting fitdeck", "version", Version)

	// Open the store
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	seed := service.SeedOptions{Name: cfg.Profile.Name, StepGoal: cfg.Profile.StepGoal}
	if err := service.Seed(ctx, st, seed, time.Now(), logger); err != nil {
		return fmt.Errorf("failed to seed store: %w", err)
	}

	// Create services
	metricSvc := service.NewMetricService(st, logger, nil)
	activitySvc := service.NewActivityService(st, logger, nil, service.RefreshOptions{
		Latency:   cfg.Refresh.SimulatedLatency,
		FailEvery: cfg.Refresh.FailEvery,
	})
	profileSvc := service.NewProfileService(st, logger)

	if opts.addMetric != "" {
		return addReading(ctx, metricSvc, opts.addMetric, args, os.Stdout)
	}

	if opts.summary || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printSummary(ctx, activitySvc, metricSvc, os.Stdout)
	}

	// Create TUI model
	model := tui.NewModel(metricSvc, activitySvc, profileSvc, tui.Options{
		Dark:          darkScheme(cfg.UI.Theme),
		DefaultScreen: tui.ParseScreen(cfg.UI.DefaultScreen),
		Refresh: refresh.Config{
			TriggerDistance: cfg.Refresh.TriggerDistance,
			ParkedHeight:    cfg.Refresh.ParkedHeight,
		},
		RowHeight:      cfg.Refresh.RowHeight,
		RefreshTimeout: cfg.Refresh.Timeout,
		RefreshOnStart: true,
		Logger:         logger,
	})

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	final, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.LoggedOut {
		fmt.Println("Logged out.")
	}

	logger.Info("shutting down")
	return nil
}

// darkScheme resolves the configured scheme against the terminal
func darkScheme(scheme config.Scheme) bool {
	switch scheme {
	case config.SchemeDark:
		return true
	case config.SchemeLight:
		return false
	default:
		return lipgloss.HasDarkBackground()
	}
}

// addReading records one value for a metric named loosely on the command line
func addReading(ctx context.Context, svc *service.MetricService, query string, args []string, w io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: fitdeck -add <metric> <value>")
	}

	def, err := svc.Resolve(query)
	if err != nil {
		return fmt.Errorf("no metric matches %q: %w", query, err)
	}

	entry, err := svc.Add(ctx, def.ID, args[0], "")
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", def.Name, err)
	}

	fmt.Fprintf(w, "Added %s %s to %s\n", domain.FormatValue(entry.Value), entry.Unit, def.Name)
	return nil
}

// printSummary writes a plain-text dashboard for pipes and scripts
func printSummary(ctx context.Context, activity *service.ActivityService, metrics *service.MetricService, w io.Writer) error {
	dash, err := activity.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	list, err := metrics.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load metrics: %w", err)
	}

	s := dash.Summary
	p := dash.Profile
	now := dash.LoadedAt

	fmt.Fprintln(w, domain.DateHeader(now))
	fmt.Fprintf(w, "%s, %s\n\n", domain.Greeting(now.Hour()), p.Name)
	fmt.Fprintf(w, "Streak      %d days (best %d)\n", s.StreakDays, s.LongestStreak)
	fmt.Fprintf(w, "This week   %d min\n", s.WeeklyMinutes)
	fmt.Fprintf(w, "This month  %d min\n", s.MonthlyMinutes)
	fmt.Fprintf(w, "Steps       %s / %s (%.0f%%)\n", domain.Thousands(s.Steps), domain.Thousands(s.StepGoal), s.StepProgress)
	fmt.Fprintf(w, "Weight      %s kg, %s\n\n", domain.FormatValue(p.CurrentWeight), domain.WeightToGoal(p.CurrentWeight, p.GoalWeight))

	for _, m := range list {
		value := "-"
		if m.HasData {
			value = m.Display() + "  (" + domain.UpdatedLabel(m.UpdatedAt) + ")"
		}
		fmt.Fprintf(w, "  %-13s %s\n", m.Name, value)
	}
	if p.MissedAlert {
		fmt.Fprintln(w, "\nYou missed 1 workout from Saturday")
	}
	return nil
}
