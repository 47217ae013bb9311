package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/joshribakoff/bearing-dash/internal/app/services"
	"github.com/joshribakoff/bearing-dash/internal/config"
	urfavecli "github.com/urfave/cli/v3"
)

func stateCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "state",
		Usage: "Inspect or reset the persisted view state",
		Commands: []*urfavecli.Command{
			{
				Name:   "show",
				Usage:  "Print the persisted view state",
				Action: handleStateShow,
			},
			{
				Name:   "reset",
				Usage:  "Forget the persisted view state",
				Action: handleStateReset,
			},
			{
				Name:   "path",
				Usage:  "Print where the view state is stored",
				Action: handleStatePath,
			},
		},
	}
}

func configCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*urfavecli.Command{
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the configuration file",
				Action: handleConfigSchema,
			},
			{
				Name:  "init",
				Usage: "Create a configuration file interactively",
				Flags: []urfavecli.Flag{
					&urfavecli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Where to write the file (default: config directory)",
					},
				},
				Action: handleConfigInit,
			},
		},
	}
}

// openStatePersister opens the configured storage backend.
func openStatePersister(cmd *urfavecli.Command) (*services.StatePersister, func(), error) {
	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	storage, err := services.OpenStateStorage(cfg)
	if err != nil {
		return nil, nil, err
	}
	return services.NewStatePersister(storage), func() { _ = storage.Close() }, nil
}

func handleStateShow(_ context.Context, cmd *urfavecli.Command) error {
	p, closeFn, err := openStatePersister(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	blob, ok, err := p.Raw()
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	w := output(cmd)
	if !ok {
		_, err = fmt.Fprintln(w, "no saved state")
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(blob), "", "  "); err != nil {
		// show what is stored even when it does not parse
		_, err = fmt.Fprintln(w, blob)
		return err
	}
	_, err = fmt.Fprintln(w, pretty.String())
	return err
}

func handleStateReset(_ context.Context, cmd *urfavecli.Command) error {
	p, closeFn, err := openStatePersister(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := p.Reset(); err != nil {
		return fmt.Errorf("reset state: %w", err)
	}
	_, err = fmt.Fprintln(output(cmd), "state reset")
	return err
}

func handleStatePath(_ context.Context, cmd *urfavecli.Command) error {
	p, closeFn, err := openStatePersister(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	_, err = fmt.Fprintln(output(cmd), p.Location())
	return err
}

func handleConfigSchema(_ context.Context, cmd *urfavecli.Command) error {
	schema, err := config.Schema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	_, err = fmt.Fprintln(output(cmd), string(schema))
	return err
}

func configInitPath(flagPath string) (string, error) {
	if flagPath == "" {
		return filepath.Join(config.Dir(), "config.yaml"), nil
	}
	return config.ExpandPath(flagPath)
}
