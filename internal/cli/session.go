package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/scriptfs/internal/config"
	"github.com/vvka-141/scriptfs/internal/download"
	"github.com/vvka-141/scriptfs/internal/files/filesystem"
	"github.com/vvka-141/scriptfs/internal/files/filter"
	"github.com/vvka-141/scriptfs/internal/files/scanner"
	"github.com/vvka-141/scriptfs/internal/logging"
	"github.com/vvka-141/scriptfs/internal/operations"
	"github.com/vvka-141/scriptfs/internal/provider"
	"github.com/vvka-141/scriptfs/internal/retry"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// session wires the providers and operations used by one invocation.
type session struct {
	cfg      *config.Config
	logger   scriptfs.Logger
	fs       filesystem.WritableFileSystem
	scanner  *scanner.Scanner
	registry *provider.Registry
	ops      *operations.ScriptOperations
	out      io.Writer
}

// loadConfig resolves configuration with precedence flags > env > yaml >
// defaults. A missing scriptfs.yaml is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	_ = godotenv.Load()

	cfg := config.Defaults()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// the yaml lives in the home chosen by flag or env
	home := cfg.Storage.Home
	if v, _ := cmd.Flags().GetString("home"); v != "" {
		home = v
	}
	fileCfg, err := config.Load(home)
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to load %s: %w", scriptfs.ConfigFileName, err)
	default:
		cfg.Merge(fileCfg)
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
	}

	if v, _ := cmd.Flags().GetString("home"); v != "" {
		cfg.Storage.Home = v
	}
	if v, _ := cmd.Flags().GetString("external-root"); v != "" {
		cfg.Storage.ExternalRoot = v
	}
	if cmd.Flags().Changed("cache-capacity") {
		n, _ := cmd.Flags().GetInt("cache-capacity")
		cfg.Storage.CacheCapacity = &n
	}

	for _, p := range []*string{&cfg.Storage.Home, &cfg.Storage.ExternalRoot} {
		abs, err := filepath.Abs(*p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", *p, scriptfs.ErrInvalidConfig)
		}
		*p = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSession builds the session for cmd. The script home is created when
// missing.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	verbose := getVerboseFlag(cmd)
	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), verbose)
	fsys := filesystem.NewOSFileSystem()

	if err := fsys.MkdirAll(cfg.Storage.Home); err != nil {
		return nil, fmt.Errorf("failed to create script home %s: %w", cfg.Storage.Home, err)
	}

	sc := scanner.NewScannerWithFS(fsys)
	scripts := filter.NewExtensionFilter(cfg.Storage.Extensions...)
	defaultCfg := provider.Config{
		InitialDirectory: cfg.Storage.Home,
		CacheCapacity:    cfg.CacheCapacity(),
		Filter:           scripts,
	}
	externalCfg := provider.Config{
		InitialDirectory: cfg.Storage.ExternalRoot,
		CacheCapacity:    cfg.ExternalCacheCapacity(),
		Filter:           filter.AcceptAll,
	}
	registry, err := provider.NewRegistry(defaultCfg, externalCfg, sc, logger)
	if err != nil {
		return nil, err
	}

	downloader, err := newDownloader(cfg, fsys, logger)
	if err != nil {
		return nil, err
	}

	ops := operations.New(fsys, registry.Default(), workingDir(cmd, cfg.Storage.Home),
		operations.WithDownloader(downloader),
		operations.WithLogger(logger),
		operations.WithTempDir(filepath.Join(os.TempDir(), "scriptfs")),
	)

	logger.Verbose("script home %s, cache capacity %d, extensions %s",
		cfg.Storage.Home, cfg.CacheCapacity(), strings.Join(scripts.Extensions(), " "))

	return &session{
		cfg:      cfg,
		logger:   logger,
		fs:       fsys,
		scanner:  sc,
		registry: registry,
		ops:      ops,
		out:      cmd.OutOrStdout(),
	}, nil
}

func newDownloader(cfg *config.Config, fsys filesystem.WritableFileSystem, logger scriptfs.Logger) (*download.Downloader, error) {
	delay, err := cfg.InitialDelay()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.DownloadTimeout()
	if err != nil {
		return nil, err
	}
	executor := retry.NewExecutor(
		retry.NewHTTPErrorClassifier(),
		retry.NewExponentialBackoff(cfg.MaxAttempts(), retry.WithInitialDelay(delay)),
	)
	return download.New(fsys,
		download.WithRetry(executor),
		download.WithTimeout(timeout),
		download.WithLogger(logger),
	), nil
}

// workingDir resolves --dir against the script home.
func workingDir(cmd *cobra.Command, home string) string {
	dir, _ := cmd.Flags().GetString("dir")
	return resolvePath(home, dir)
}

// resolvePath makes p absolute, relative paths being taken from base.
func resolvePath(base, p string) string {
	if p == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// provider returns the provider serving dir: the default one for the script
// home, the external storage one elsewhere or when all is set.
func (s *session) provider(dir string, all bool) *provider.StorageFileProvider {
	home := s.cfg.Storage.Home
	rel, err := filepath.Rel(home, dir)
	inHome := err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
	if all || !inHome {
		return s.registry.ExternalStorage()
	}
	return s.registry.Default()
}

// entry resolves a path argument to an Entry.
func (s *session) entry(arg string) (scriptfs.Entry, error) {
	path := resolvePath(s.ops.CurrentDirectory(), arg)
	e, err := s.scanner.Stat(path)
	if err != nil {
		return scriptfs.Entry{}, fmt.Errorf("%s: %w", arg, err)
	}
	return e, nil
}

// watchDir caches dir's listing, so notifications about it are applied,
// and echoes change events to the session output until the returned func
// is called.
func (s *session) watchDir(dir string) func() {
	p := s.registry.Default()
	p.Entries(dir)

	printer := scriptfs.NewObserverFunc(func(ev scriptfs.ChangeEvent) {
		fmt.Fprintln(s.out, ev)
	})
	p.Subscribe(printer)
	return func() { p.Unsubscribe(printer) }
}

// watch is watchDir for the working directory.
func (s *session) watch() func() {
	return s.watchDir(s.ops.CurrentDirectory())
}
