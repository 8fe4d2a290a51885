package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/wizard"
	"github.com/iw2rmb/wizard/internal/app"
	"github.com/iw2rmb/wizard/internal/config"
	"github.com/iw2rmb/wizard/internal/fetch"
	"github.com/iw2rmb/wizard/internal/log"
	"github.com/iw2rmb/wizard/internal/recent"
	"github.com/iw2rmb/wizard/internal/session"
	"github.com/iw2rmb/wizard/internal/tracing"
	"github.com/iw2rmb/wizard/internal/watcher"
)

func init() {
	// Query the terminal background before the program starts so the OSC 11
	// reply does not race the input loop.
	_ = lipgloss.HasDarkBackground()
}

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:           "wizard [file]",
	Short:         "A terminal HTML editor with live markup coloring",
	Long:          `wizard edits an HTML document in the terminal and colors tags, doctypes, comments and quoted strings after every change.`,
	Version:       wizard.Version(),
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE:          runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/wizard/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "write a debug log (also WIZARD_DEBUG=1)")
	rootCmd.Flags().StringP("file", "f", "", "document to edit (default: ~/index.html)")
	rootCmd.Flags().StringP("url", "u", "", "page loaded into an empty document on start")
	rootCmd.Flags().Bool("read-only", false, "start in read-only mode")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("file", rootCmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("url", rootCmd.Flags().Lookup("url"))
	_ = viper.BindPFlag("read_only", rootCmd.Flags().Lookup("read-only"))

	rootCmd.AddCommand(classifyCmd, recentCmd, versionCmd, configCmd)
}

// configPath returns the config file in use, or the default location.
func configPath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(config.DefaultConfigDir(), "config.yaml")
}

func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("file", d.File)
	v.SetDefault("url", d.URL)
	v.SetDefault("read_only", d.ReadOnly)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("editor.show_line_numbers", d.Editor.ShowLineNumbers)
	v.SetDefault("editor.history_limit", d.Editor.HistoryLimit)
	v.SetDefault("theme.tag", d.Theme.Tag)
	v.SetDefault("theme.doctype", d.Theme.Doctype)
	v.SetDefault("theme.comment", d.Theme.Comment)
	v.SetDefault("theme.string", d.Theme.String)
	v.SetDefault("theme.bold", d.Theme.Bold)
	v.SetDefault("theme.help", d.Theme.Help)
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("fetch.max_bytes", d.Fetch.MaxBytes)
	v.SetDefault("fetch.cache_ttl", d.Fetch.CacheTTL)
	v.SetDefault("watch.enabled", d.Watch.Enabled)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("recent.enabled", d.Recent.Enabled)
	v.SetDefault("recent.db_path", d.Recent.DBPath)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

func initConfig() {
	setDefaults(viper.GetViper(), config.Defaults())

	viper.SetEnvPrefix("WIZARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir := config.DefaultConfigDir(); dir != "" {
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file anywhere: write the default one.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" && config.DefaultConfigDir() != "" {
			defaultPath := filepath.Join(config.DefaultConfigDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// startLogging opens the debug log when --debug or WIZARD_DEBUG is set.
func startLogging() func() {
	if !cfg.Debug && os.Getenv("WIZARD_DEBUG") == "" {
		return func() {}
	}
	cleanup, err := log.Init(log.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: debug log unavailable: %v\n", err)
		return func() {}
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetMinLevel(level)
	}
	log.Info(log.CatConfig, "starting", "version", wizard.Version(), "config", viper.ConfigFileUsed())
	return cleanup
}

func runApp(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg.File = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	stopLog := startLogging()
	defer stopLog()

	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	sess := session.New(cfg.File, session.WithReadOnly(cfg.ReadOnly), session.WithTracer(tp.Tracer()))
	text, err := sess.Load()
	if err != nil {
		return err
	}

	opts := app.Options{
		Config:  cfg,
		Session: sess,
		Text:    text,
		Fetcher: fetch.NewClient(fetch.Options{
			Timeout:  cfg.Fetch.Timeout,
			MaxBytes: cfg.Fetch.MaxBytes,
			CacheTTL: cfg.Fetch.CacheTTL,
			Tracer:   tp.Tracer(),
		}),
		Opener: session.BrowserOpener{},
		Tracer: tp.Tracer(),
	}

	if cfg.Recent.Enabled {
		store, err := recent.Open(cfg.Recent.DBPath)
		if err != nil {
			log.ErrorErr(log.CatRecent, "recent documents disabled", err, "path", cfg.Recent.DBPath)
		} else {
			defer func() { _ = store.Close() }()
			opts.Recorder = store
		}
	}

	if cfg.Watch.Enabled {
		w, err := watcher.New(watcher.Config{Path: sess.Path, DebounceDur: cfg.Watch.Debounce})
		if err == nil {
			if ch, err := w.Start(); err == nil {
				opts.Changes = ch
			} else {
				log.ErrorErr(log.CatWatcher, "watch disabled", err, "path", sess.Path)
			}
			defer func() { _ = w.Stop() }()
		} else {
			log.ErrorErr(log.CatWatcher, "watch disabled", err, "path", sess.Path)
		}
	}

	p := tea.NewProgram(app.New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
