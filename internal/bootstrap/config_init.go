package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/joshribakoff/bearing-dash/internal/config"
	"github.com/joshribakoff/bearing-dash/internal/theme"
	urfavecli "github.com/urfave/cli/v3"
)

const (
	initAPIURLKey = "init_api_url"
	initOwnerKey  = "init_github_owner"
	initThemeKey  = "init_theme"
	initKeymapKey = "init_keymap"
	initStoreKey  = "init_storage"
	initIconsKey  = "init_show_icons"
)

var runForm = func(f *huh.Form) error { return f.Run() }

func validateAPIURL(value string) error {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("enter a URL such as http://localhost:8374")
	}
	return nil
}

func newConfigForm(cfg *config.AppConfig) *huh.Form {
	themeOptions := make([]huh.Option[string], 0, len(theme.AvailableThemes()))
	for _, name := range theme.AvailableThemes() {
		themeOptions = append(themeOptions, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key(initAPIURLKey).
				Title("Bearing API URL").
				Value(&cfg.APIURL).
				Validate(validateAPIURL),
			huh.NewInput().
				Key(initOwnerKey).
				Title("GitHub owner for PR and issue links").
				Value(&cfg.GitHubOwner).
				Validate(func(value string) error {
					if strings.TrimSpace(value) == "" {
						return errors.New("owner is required")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(initThemeKey).
				Title("Theme").
				Options(themeOptions...).
				Value(&cfg.Theme),
			huh.NewSelect[string]().
				Key(initKeymapKey).
				Title("Keymap").
				Options(
					huh.NewOption("panels (0/1/2 focus panels)", config.KeymapPanels),
					huh.NewOption("views (1/2 switch views)", config.KeymapViews),
				).
				Value(&cfg.Keymap),
			huh.NewSelect[string]().
				Key(initStoreKey).
				Title("State storage").
				Options(
					huh.NewOption("JSON file", config.StorageFile),
					huh.NewOption("SQLite", config.StorageSQLite),
				).
				Value(&cfg.Storage),
			huh.NewConfirm().
				Key(initIconsKey).
				Title("Show Nerd Font icons?").
				Affirmative("Yes").
				Negative("No").
				Value(&cfg.ShowIcons),
		),
	).WithShowHelp(true)
}

func handleConfigInit(_ context.Context, cmd *urfavecli.Command) error {
	if !isTerminal(os.Stdin) {
		return ErrNotTerminal
	}
	path, err := configInitPath(cmd.String("output"))
	if err != nil {
		return err
	}

	overwrite := true
	if _, err := os.Stat(path); err == nil {
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s exists. Overwrite?", path)).
				Affirmative("Overwrite").
				Negative("Cancel").
				Value(&overwrite),
		))
		if err := runForm(confirm); err != nil {
			return err
		}
	}
	if !overwrite {
		_, err := fmt.Fprintln(output(cmd), "cancelled")
		return err
	}

	cfg := config.DefaultConfig()
	if err := runForm(newConfigForm(cfg)); err != nil {
		return err
	}
	return writeConfig(cmd, cfg, path)
}

func writeConfig(cmd *urfavecli.Command, cfg *config.AppConfig, path string) error {
	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	_, err := fmt.Fprintf(output(cmd), "wrote %s\n", path)
	return err
}
