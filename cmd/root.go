package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizwise/internal/config"
	"github.com/abhisek/quizwise/internal/documents"
	"github.com/abhisek/quizwise/internal/llm"
	"github.com/abhisek/quizwise/internal/logging"
	"github.com/abhisek/quizwise/internal/metrics"
	"github.com/abhisek/quizwise/internal/quizgen"
	"github.com/abhisek/quizwise/internal/quizzes"
	"github.com/abhisek/quizwise/internal/recommend"
	"github.com/abhisek/quizwise/internal/storage"
	"github.com/abhisek/quizwise/internal/store"
	"github.com/abhisek/quizwise/internal/templates"
)

var rootCmd = &cobra.Command{
	Use:   "quizwise",
	Short: "Turn documents into quizzes",
	Long: "Quizwise recommends a quiz template for a document and generates a quiz from it.\n" +
		"Run without arguments to browse templates in the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a quizwise.yaml config file")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZWISE_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then database.path from config, then QUIZWISE_DB and the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Database.Path != "" {
		return cfg.Database.Path, store.EnsureDir(cfg.Database.Path)
	}
	return store.DefaultDBPath()
}

// env is what every command that touches state needs.
type env struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *store.Store
	catalog *templates.Catalog
	rec     *recommend.Recommender

	closers []func() error
}

// loadConfig reads configuration honouring --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openEnv loads config, sets up logging and opens the store. The TUI
// passes a nil console so log lines never draw over the screen.
func openEnv(cmd *cobra.Command, console io.Writer) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	if console == nil {
		logCfg.Console = false
	}
	log, closeLog, err := logging.New(logCfg, console)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	e := &env{
		cfg:     cfg,
		log:     log,
		catalog: templates.Default(),
		rec:     recommend.NewDefault(),
		closers: []func() error{closeLog},
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, st.Close)

	if cfg.File != "" {
		log.Debug("loaded config", zap.String("file", cfg.File))
	}
	return e, nil
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil && !errors.Is(err, os.ErrClosed) {
			fmt.Fprintln(os.Stderr, "close:", err)
		}
	}
}

// objectStore returns MinIO when an endpoint is configured and an
// in-memory store otherwise.
func (e *env) objectStore(ctx context.Context) (storage.ObjectStore, error) {
	if e.cfg.Storage.Endpoint == "" {
		e.log.Warn("storage.endpoint not set; using in-memory object storage")
		return storage.NewMemoryStore(), nil
	}
	ms, err := storage.NewMinioStore(e.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("connect object storage: %w", err)
	}
	if err := ms.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket %q: %w", e.cfg.Storage.Bucket, err)
	}
	return ms, nil
}

func (e *env) documents(objects storage.ObjectStore) *documents.Service {
	return documents.NewService(e.store.DocumentRepo(), objects, e.rec, e.cfg.Quiz.MaxUploadBytes, e.log)
}

// generator builds the LLM-backed quiz generator.
func (e *env) generator(ctx context.Context) (quizgen.Generator, error) {
	provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.store.EventRepo(), e.log)
	if err != nil {
		return nil, err
	}
	qcfg := quizgen.DefaultConfig()
	qcfg.MaxAttempts = e.cfg.Quiz.MaxAttempts
	qcfg.MaxContentChars = e.cfg.Quiz.MaxContentChars
	return quizgen.New(provider, qcfg), nil
}

func (e *env) quizService(docs *documents.Service, gen quizgen.Generator, m *metrics.Metrics) *quizzes.Service {
	return quizzes.NewService(quizzes.Options{
		Catalog:              e.catalog,
		Documents:            docs,
		Generator:            gen,
		Events:               e.store.EventRepo(),
		Metrics:              m,
		Logger:               e.log,
		MaxReadBytes:         e.cfg.Quiz.MaxUploadBytes,
		DefaultQuestionCount: e.cfg.Quiz.DefaultQuestions,
	})
}
