package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/willibrandon/vex/internal/config"
	"github.com/willibrandon/vex/internal/editor"
	"github.com/willibrandon/vex/internal/input"
	"github.com/willibrandon/vex/internal/logger"
	"github.com/willibrandon/vex/internal/terminal"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitFatal       = 1
	ExitConfigError = 2
)

var (
	// Version info (set by ldflags)
	version = "dev"

	// Flags
	configPath string
	debug      bool
	logFile    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(ExitFatal)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vex [filename]",
		Short: "A modal terminal text editor",
		Long: `vex is a small vi-like editor. It starts in Normal mode; press i to
insert text, Escape to return to Normal mode and :wq to save and quit.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			os.Exit(run(cmd, path))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/vex/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (default ~/.config/vex/vex.log)")

	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfigFromPath(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("debug") {
		cfg.Debug = debug
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

// editorOptions maps the configuration onto editor options.
func editorOptions(cfg *config.Config) editor.Options {
	return editor.Options{
		TabStop:       cfg.Editor.TabStop,
		LineNumbers:   cfg.Editor.LineNumbers,
		GutterWidth:   cfg.Editor.GutterWidth,
		StatusTimeout: cfg.Editor.StatusTimeout,
		Version:       version,
		Logger:        logger.With("component", "editor"),
	}
}

// run executes one editing session and returns the process exit code.
func run(cmd *cobra.Command, path string) int {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return ExitConfigError
	}

	if err := logger.Init(cfg.Debug, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		return ExitFatal
	}
	defer logger.Close()
	log := logger.With("component", "main")
	log.Info("vex starting", "version", version, "file", path, "config", configPath)

	tty, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return fatal(os.Stderr, fmt.Errorf("enable raw mode: %w", err))
	}
	// Guard for panics; the normal paths restore explicitly below.
	defer tty.Restore()

	err = session(tty, cfg, path)
	if rerr := tty.Restore(); rerr != nil && err == nil {
		err = fmt.Errorf("disable raw mode: %w", rerr)
	}
	if err != nil {
		return fatal(os.Stderr, err)
	}

	fmt.Fprint(os.Stdout, terminal.ClearScreen)
	log.Info("vex exiting")
	return ExitSuccess
}

// session runs the editor on tty until the user quits.
func session(tty *terminal.Terminal, cfg *config.Config, path string) error {
	rows, cols, err := tty.Size()
	if err != nil {
		return err
	}

	ed := editor.New(input.NewDecoder(tty), tty, rows, cols, editorOptions(cfg))
	if path != "" {
		ed.Open(path)
	}
	return ed.Run()
}

// fatal clears the screen and reports err on w. The terminal must already
// be restored.
func fatal(w io.Writer, err error) int {
	logger.With("component", "main").Error("Fatal error", "error", err)
	fmt.Fprint(w, terminal.ClearScreen)
	fmt.Fprintf(w, "vex: %v\n", err)
	return ExitFatal
}
