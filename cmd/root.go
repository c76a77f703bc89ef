package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/restyle/internal/config"
	"github.com/zjrosen/restyle/internal/log"
	"github.com/zjrosen/restyle/internal/ui"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "restyle <file>",
	Short:   "A syntax-highlighting file viewer for the terminal",
	Long:    `Renders a file with syntax highlighting and keeps the view in sync with the file on disk, re-styling only the spans that changed.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runViewer,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/restyle/config.yaml)")
	rootCmd.Flags().StringP("style", "s", "",
		"chroma style name (see 'restyle styles')")
	rootCmd.Flags().StringP("lexer", "l", "",
		"lexer name, overriding file name detection (see 'restyle lexers')")
	rootCmd.Flags().String("formatter", "",
		"formatter registry name (see 'restyle formatters')")
	rootCmd.Flags().Bool("no-follow", false,
		"do not re-style when the file changes on disk")
	rootCmd.Flags().Bool("debug", false,
		"write a structured debug log to restyle-debug.log")

	// Bind flags to viper
	_ = viper.BindPFlag("style", rootCmd.Flags().Lookup("style"))
	_ = viper.BindPFlag("lexer", rootCmd.Flags().Lookup("lexer"))
	_ = viper.BindPFlag("formatter", rootCmd.Flags().Lookup("formatter"))
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("style", defaults.Style)
	viper.SetDefault("formatter", defaults.Formatter)
	viper.SetDefault("follow", defaults.Follow)
	viper.SetDefault("follow_debounce", defaults.FollowDebounce)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("cache.cleanup_interval", defaults.Cache.CleanupInterval)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .restyle/config.yaml (current directory)
		// 2. ~/.config/restyle/config.yaml (user config)
		if _, err := os.Stat(".restyle/config.yaml"); err == nil {
			viper.SetConfigFile(".restyle/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "restyle"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .restyle/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".restyle/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runViewer(cmd *cobra.Command, args []string) error {
	if noFollow, _ := cmd.Flags().GetBool("no-follow"); noFollow {
		cfg.Follow = false
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if cfg.Debug || os.Getenv("RESTYLE_DEBUG") != "" {
		cleanup, err := log.InitWithTeaLog("restyle-debug.log", "restyle")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
		cfg.Debug = true
	}

	model, err := ui.New(args[0], cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
