package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/tsawler/reviewsense"
	"github.com/tsawler/reviewsense/internal/config"
	"github.com/tsawler/reviewsense/internal/logging"
)

type commandContext struct {
	configFlag   *string
	modelDirFlag *string
	clock        clockwork.Clock

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, modelDirFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		modelDirFlag: modelDirFlag,
		clock:        clockwork.NewRealClock(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.modelDirFlag != nil && strings.TrimSpace(*c.modelDirFlag) != "" {
			cfg.ModelDir = strings.TrimSpace(*c.modelDirFlag)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds a logger at the configured level that writes to w, or to the
// configured log_output destinations when w is nil.
func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := logging.Options{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Writer:      w,
		Development: cfg.LogSource,
	}
	if w == nil {
		opts.OutputPaths = cfg.LogOutput
	}
	return logging.New(opts)
}

func (c *commandContext) loadArtifacts(logger *slog.Logger) (*reviewsense.Artifacts, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return reviewsense.ArtifactsFromDisk(cfg.ModelDir, cfg.ArtifactFiles(), logger), nil
}

// newAnalyzer builds an Analyzer over artifacts. An external lexicon that
// cannot be read is logged and the built-in lists are used.
func (c *commandContext) newAnalyzer(artifacts *reviewsense.Artifacts, logger *slog.Logger, opts ...reviewsense.AnalyzerOpt) (*reviewsense.Analyzer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	opts = append([]reviewsense.AnalyzerOpt{reviewsense.WithLogger(logger), reviewsense.WithClock(c.clock)}, opts...)
	if path := cfg.LexiconPath(); path != "" {
		lexicon, err := reviewsense.LexiconFromFS(os.DirFS(filepath.Dir(path)), filepath.Base(path), cfg.LexiconLanguage)
		if err != nil {
			logger.Error("Failed to load lexicon, using built-in word lists", "path", path, "error", err)
		} else {
			logger.Info("Loaded lexicon", "path", path, "language", cfg.LexiconLanguage, "words", lexicon.Size())
			opts = append(opts, reviewsense.WithLexicon(lexicon))
		}
	}
	return reviewsense.NewAnalyzer(artifacts, cfg.AnalyzerConfig(), opts...), nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
