package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshribakoff/bearing-dash/internal/app"
	"github.com/joshribakoff/bearing-dash/internal/app/services"
	"github.com/joshribakoff/bearing-dash/internal/buildinfo"
	"github.com/joshribakoff/bearing-dash/internal/config"
	"github.com/joshribakoff/bearing-dash/internal/log"
	"github.com/joshribakoff/bearing-dash/internal/theme"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when an interactive command runs without a TTY.
var ErrNotTerminal = errors.New("bearing-dash needs an interactive terminal")

var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec
}

// NewCommand returns the root command.
func NewCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "bearing-dash",
		Usage:   "A terminal dashboard for bearing worktrees and plans",
		Version: buildinfo.Version(),
		Flags:   globalFlags(),
		Commands: []*urfavecli.Command{
			stateCommand(),
			configCommand(),
		},
		Action: runTUI,
	}
}

// Run executes the command line.
func Run(ctx context.Context, args []string) error {
	return NewCommand().Run(ctx, args)
}

// setupDebugLog points the debug logger at the flag or config path. With
// neither set, buffered logs are discarded.
func setupDebugLog(flagPath, cfgPath string) {
	path := flagPath
	if path == "" {
		path = cfgPath
	}
	if path == "" {
		_ = log.SetFile("")
		return
	}
	if expanded, err := config.ExpandPath(path); err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}

// loadCLIConfig loads the configuration and applies flag overrides. The
// --config overrides win over the dedicated flags.
func loadCLIConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(cmd.String("config-file"))
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if v := strings.TrimSpace(cmd.String("api-url")); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v := cmd.String("theme"); v != "" {
		name := theme.NormalizeName(v)
		if name == "" {
			return nil, fmt.Errorf("unknown theme %q, available: %s", v, strings.Join(theme.AvailableThemes(), ", "))
		}
		cfg.Theme = name
	}
	if v := cmd.String("keymap"); v != "" {
		switch v {
		case config.KeymapPanels, config.KeymapViews:
			cfg.Keymap = v
		default:
			return nil, fmt.Errorf("unknown keymap %q, expected %s or %s", v, config.KeymapPanels, config.KeymapViews)
		}
	}
	if overrides := cmd.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}
	return cfg, nil
}

// runTUI is the default action that launches the dashboard.
func runTUI(ctx context.Context, cmd *urfavecli.Command) error {
	if !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	setupDebugLog(cmd.String("debug-log"), cfg.DebugLog)
	defer func() { _ = log.Close() }()

	var opts []app.Option
	storage, err := services.OpenStateStorage(cfg)
	if err != nil {
		log.Errorf("state storage unavailable, not persisting: %v", err)
	} else {
		defer func() { _ = storage.Close() }()
		opts = append(opts, app.WithPersister(services.NewStatePersister(storage)))
	}

	log.WithField("api", cfg.APIURL).Info("starting dashboard")
	model := app.NewModel(cfg, opts...)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

func output(cmd *urfavecli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
