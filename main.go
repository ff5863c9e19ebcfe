package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"twitch-monitor/internal/config"
	"twitch-monitor/internal/tui"
	"twitch-monitor/internal/twitch"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	styles := tui.NewThemeStyler(cfg.Theme)

	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, styles.Style(tui.RoleError, "Configuration Error: "+err.Error()))
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, styles.Style(tui.RoleWarning, "Please create a .env file with the following variables:"))
			fmt.Fprintln(os.Stderr, config.Hint())
			return 1
		}
		fmt.Fprintln(os.Stderr, styles.Style(tui.RoleError, "Error: "+err.Error()))
		return 1
	}

	logFile := setupLogging(cfg)
	if logFile != nil {
		defer logFile.Close()
	}

	if len(cfg.Channels) > twitch.MaxBatch {
		log.Printf("CONFIG: %d channels configured, Helix only answers for %d per request", len(cfg.Channels), twitch.MaxBatch)
	}

	client, err := twitch.New(cfg.Twitch)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.Style(tui.RoleError, "Error: "+err.Error()))
		return 1
	}

	model := tui.New(cfg, client)
	program := tea.NewProgram(&model, tea.WithAltScreen())
	code, err := exitCode(program.Run())
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.Style(tui.RoleError, "Error: "+err.Error()))
		return code
	}

	fmt.Println()
	fmt.Println(styles.Style(tui.RoleWarning, "Stopping monitor... Goodbye!"))
	fmt.Println()
	return code
}

// exitCode maps the outcome of the program to the process exit status and
// the error to report, if any. An interrupt is a normal stop.
func exitCode(final tea.Model, err error) (int, error) {
	if err != nil && !errors.Is(err, tea.ErrInterrupted) {
		return 1, err
	}

	if m, ok := final.(*tui.Model); ok && m.Err() != nil {
		return 1, m.Err()
	}

	return 0, nil
}

// setupLogging sends log output to a file when enabled, since the dashboard
// owns the terminal. Without a log file, output is discarded.
func setupLogging(cfg config.Config) *os.File {
	if !cfg.Log.Enable {
		log.SetOutput(io.Discard)
		return nil
	}

	path, err := cfg.LogPath()
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := tea.LogToFile(path, "monitor")
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	return f
}
