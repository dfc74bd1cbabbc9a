package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mvrcunha/mx2md"
)

var (
	cfgFile string
	input   string
	output  string
)

// Flag names double as viper keys, so every flag can also come from the
// config file or an MX2MD_* environment variable (flag wins).
var boolFlags = []string{
	"safe-mode", "verbose", "watch",
	"ignore-trash", "ignore-archive", "ignore-attachments",
	"separate-trash", "separate-archive", "separate-attachments",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mx2md",
	Short: "Mirror a Memorix backup (*.mxbk) as a folder of Markdown files",
	Long: `mx2md extracts the notes from a Memorix backup file and mirrors them as
Markdown files under <output>/Memorix, organized by category. A manifest
persisted inside the mirror makes re-syncs incremental: only new, changed
or removed notes touch the disk.

When the input is a directory, the most recent *.mxbk file is used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		setupLogging()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []mx2md.Option{
			mx2md.WithSafeMode(viper.GetBool("safe-mode")),
			mx2md.WithIgnoreTrash(viper.GetBool("ignore-trash")),
			mx2md.WithIgnoreArchive(viper.GetBool("ignore-archive")),
			mx2md.WithIgnoreAttachments(viper.GetBool("ignore-attachments")),
			mx2md.WithSeparateTrash(viper.GetBool("separate-trash")),
			mx2md.WithSeparateArchive(viper.GetBool("separate-archive")),
			mx2md.WithSeparateAttachments(viper.GetBool("separate-attachments")),
			mx2md.WithPattern(viper.GetString("pattern")),
			mx2md.WithLogger(slog.Default()),
		}

		if viper.GetBool("watch") {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return mx2md.Watch(ctx, input, output, opts...)
		}

		report, err := mx2md.Sync(input, output, opts...)
		if err != nil {
			return err
		}
		fmt.Printf("Synced %d note(s): %d written, %d deleted, %d unchanged",
			report.Notes, report.Written, report.Deleted, report.Unchanged)
		if report.SkippedDeletes > 0 {
			fmt.Printf(", %d deletion(s) skipped (safe mode)", report.SkippedDeletes)
		}
		fmt.Println()
		return nil
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&input, "input", "i", "", "Backup file or folder containing *.mxbk files (required)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Destination folder (required)")
	_ = rootCmd.MarkFlagRequired("input")
	_ = rootCmd.MarkFlagRequired("output")

	rootCmd.Flags().Bool("safe-mode", false, "Never delete files from disk")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output with debug information")
	rootCmd.Flags().Bool("watch", false, "Keep running and re-sync when backup files change")
	rootCmd.Flags().Bool("ignore-trash", false, "Don't extract notes from the trash")
	rootCmd.Flags().Bool("ignore-archive", false, "Don't extract archived notes")
	rootCmd.Flags().Bool("ignore-attachments", false, "Don't extract note attachments")
	rootCmd.Flags().Bool("separate-trash", false, "Place trashed notes in a separate 'Trash' folder")
	rootCmd.Flags().Bool("separate-archive", false, "Place archived notes in a separate 'Archive' folder")
	rootCmd.Flags().Bool("separate-attachments", false, "Place attachments in a separate 'Attachments' folder")
	rootCmd.Flags().String("pattern", "", "Glob for picking backup files out of a folder (default \"*.mxbk\")")
	rootCmd.Flags().String("log-file", "", "Also write logs to this file (rotated)")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/mx2md/config.yaml)")
}

// loadConfig layers viper under the flags: flag > env > config file.
func loadConfig(cmd *cobra.Command) error {
	for _, name := range boolFlags {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	for _, name := range []string{"pattern", "log-file"} {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	viper.SetEnvPrefix("MX2MD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil // no config dir, flags and env still work
		}
		viper.AddConfigPath(filepath.Join(configDir, "mx2md"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && (errors.As(err, &notFound) || os.IsNotExist(err)) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func setupLogging() {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if logFile := viper.GetString("log-file"); logFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
		}
		w = io.MultiWriter(os.Stderr, rotated)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
