package main

// Must be first import - fixes Warp terminal delay before lipgloss loads
import _ "github.com/wahlandcase/mergegate/internal/termfix"

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wahlandcase/mergegate/internal/app"
	"github.com/wahlandcase/mergegate/internal/config"
	"github.com/wahlandcase/mergegate/internal/gate"
	"github.com/wahlandcase/mergegate/internal/git"
	"github.com/wahlandcase/mergegate/internal/github"
	"github.com/wahlandcase/mergegate/internal/logger"
	"github.com/wahlandcase/mergegate/internal/models"
	"github.com/wahlandcase/mergegate/internal/ui"
)

// Process exit codes: 0 when the merge is confirmed, 2 when every phase
// passed but the platform reported the PR as not merged, 1 for any error.
const (
	exitMerged    = 0
	exitError     = 1
	exitNotMerged = 2
)

var (
	repoFlag      string
	prNumber      int
	methodFlag    string
	approvalsFlag int
	contextsFlag  []string
	intervalFlag  string
	timeoutFlag   string
	subjectFlag   string
	dryRun        bool
	watch         bool
	logLevel      string
)

// exitCode is set by run; Execute errors always map to exitError
var exitCode = exitMerged

func main() {
	rootCmd := &cobra.Command{
		Use:           "mergegate",
		Short:         "Decides whether a pull request is safe to merge and merges it",
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&repoFlag, "repo", "", "Target repository as owner/name (default: detect from the local clone)")
	rootCmd.Flags().IntVar(&prNumber, "pr", 0, "Pull request number")
	rootCmd.Flags().StringVar(&methodFlag, "method", "", "Merge method: merge, squash or rebase")
	rootCmd.Flags().IntVar(&approvalsFlag, "approvals", 0, "Required distinct approvals")
	rootCmd.Flags().StringSliceVar(&contextsFlag, "require-context", nil, "Status context that must be green (repeatable)")
	rootCmd.Flags().StringVar(&intervalFlag, "interval", "", "Delay between polling attempts, e.g. 5s")
	rootCmd.Flags().StringVar(&timeoutFlag, "timeout", "", "Budget of each polling phase, e.g. 5m")
	rootCmd.Flags().StringVar(&subjectFlag, "subject", "", "Merge commit title (default: platform default)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run every phase except the merge itself")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Render live phase progress in the terminal")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	_ = rootCmd.MarkFlagRequired("pr")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	os.Exit(exitCode)
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log, err := logger.New(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if prNumber <= 0 {
		return &config.ConfigError{Field: "pr", Reason: fmt.Sprintf("%d is not a positive pull request number", prNumber)}
	}

	owner, name, err := resolveRepository()
	if err != nil {
		return err
	}
	repo := owner + "/" + name

	creds, err := config.LoadCredentials()
	if err != nil {
		return err
	}
	broker, err := github.NewTokenBroker(creds.AppID, creds.PrivateKey, log)
	if err != nil {
		return err
	}
	token, err := broker.InstallationToken(ctx, owner, name)
	if err != nil {
		return err
	}
	client := github.NewClient(token, owner, name, log)

	g := gate.New(client, gate.Config{
		RequiredApprovals: settings.RequiredApprovals,
		RequiredContexts:  settings.RequiredContexts,
		Method:            settings.Method,
		Subject:           subjectFlag,
		PollInterval:      settings.PollInterval,
		PollTimeout:       settings.PollTimeout,
		DryRun:            dryRun,
	}, log)

	var outcome models.Outcome
	if watch && ui.Interactive() {
		outcome, err = runWatch(ctx, g, repo)
	} else {
		if watch {
			log.Infow("terminal cannot render watch mode, running headless")
		}
		outcome, err = runHeadless(ctx, g, repo)
	}
	if err != nil {
		return fmt.Errorf("%s#%d: %w", repo, prNumber, err)
	}

	if !models.IsMerged(outcome) && !models.IsDryRunPass(outcome) {
		exitCode = exitNotMerged
	}
	return nil
}

// loadSettings merges the config file with explicit flag overrides
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Gate.MergeMethod = methodFlag
	}
	if flags.Changed("approvals") {
		cfg.Gate.RequiredApprovals = approvalsFlag
	}
	if flags.Changed("require-context") {
		cfg.Gate.RequiredContexts = contextsFlag
	}
	if flags.Changed("interval") {
		cfg.Poll.Interval = intervalFlag
	}
	if flags.Changed("timeout") {
		cfg.Poll.Timeout = timeoutFlag
	}

	return cfg.Resolve()
}

func resolveRepository() (owner, name string, err error) {
	if repoFlag != "" {
		return config.ParseRepo(repoFlag)
	}
	return git.DetectRepository()
}

// runWatch drives the gate inside the bubbletea program
func runWatch(ctx context.Context, g *gate.Gate, repo string) (models.Outcome, error) {
	events := make(chan gate.Event, 8)
	g.WithProgress(func(ev gate.Event) { events <- ev })

	runner := func(ctx context.Context) (models.Outcome, error) {
		defer close(events)
		return g.Run(ctx, prNumber)
	}

	model := app.New(ctx, repo, prNumber, events, runner)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, fmt.Errorf("error running program: %w", err)
	}

	m := final.(app.Model)
	return m.Outcome(), m.Err()
}

// runHeadless runs the gate directly and prints a styled phase summary
func runHeadless(ctx context.Context, g *gate.Gate, repo string) (models.Outcome, error) {
	var passed []string
	var current string
	g.WithProgress(func(ev gate.Event) {
		if ev.Done {
			passed = append(passed, ev.Phase)
		} else {
			current = ev.Phase
		}
	})

	outcome, err := g.Run(ctx, prNumber)

	fmt.Println(ui.Title(repo, prNumber))
	for _, phase := range passed {
		fmt.Println(ui.PhaseDone(phase))
	}
	if err != nil {
		fmt.Println(ui.PhaseFailed(current, err.Error()))
		return nil, err
	}
	fmt.Println(ui.OutcomeLine(outcome))
	return outcome, nil
}
