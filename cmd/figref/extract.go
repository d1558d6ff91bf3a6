package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/figref"
	"github.com/tsawler/figref/captions"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract image contexts for every book in a corpus",
		Long: `Extract walks <input>/markdown for zero-padded book files (000001.md),
pairs each with its <input>/images/<book_id> directory, and writes one
context file per book to <input>/context/<book_id>.json.

Books that already have a non-empty context file are skipped unless
--force is given.

Example:
  figref extract --input ./corpus
  figref extract --input ./corpus --search-range 8 --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}

			if dir, _ := cmd.Flags().GetString("input"); dir != "" {
				cfg.InputDir = dir
			}
			if cmd.Flags().Changed("search-range") {
				cfg.SearchRange, _ = cmd.Flags().GetInt("search-range")
			}
			if force, _ := cmd.Flags().GetBool("force"); force {
				cfg.Force = true
			}

			log, err := newLogger(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			return runExtract(cfg, log)
		},
	}

	cmd.Flags().StringP("input", "i", "", "corpus directory containing markdown/ and images/")
	cmd.Flags().Int("search-range", 5, "line distance searched around each image marker")
	cmd.Flags().Bool("force", false, "reprocess books that already have a context file")
	return cmd
}

// book pairs a markdown file with its identifier.
type book struct {
	id     string
	mdPath string
}

// discoverBooks lists the processable books under inputDir: markdown files
// named <6 digits>.md with a matching images/<book_id> directory. The result
// is sorted by book id.
func discoverBooks(inputDir string, log *zap.Logger) ([]book, error) {
	markdownDir := filepath.Join(inputDir, "markdown")
	imagesDir := filepath.Join(inputDir, "images")

	entries, err := os.ReadDir(markdownDir)
	if err != nil {
		return nil, fmt.Errorf("reading markdown directory: %w", err)
	}
	if fi, err := os.Stat(imagesDir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("images directory not found at %s", imagesDir)
	}

	var books []book
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		id := strings.TrimSuffix(name, ".md")
		if len(id) != 6 || !isDigits(id) {
			continue
		}

		if fi, err := os.Stat(filepath.Join(imagesDir, id)); err != nil || !fi.IsDir() {
			log.Warn("no image directory for book, skipping", zap.String("book_id", id))
			continue
		}

		books = append(books, book{id: id, mdPath: filepath.Join(markdownDir, name)})
	}

	// os.ReadDir returns entries sorted by name, so books is already in id
	// order.
	return books, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func runExtract(cfg fileConfig, log *zap.Logger) error {
	books, err := discoverBooks(cfg.InputDir, log)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		log.Warn("no books found", zap.String("input_dir", cfg.InputDir))
		return nil
	}
	log.Info("discovered books", zap.Int("count", len(books)))

	contextDir := filepath.Join(cfg.InputDir, "context")
	if err := os.MkdirAll(contextDir, 0o755); err != nil {
		return fmt.Errorf("creating context directory: %w", err)
	}

	captCfg := captions.DefaultConfig()
	captCfg.SearchRange = cfg.SearchRange

	for _, b := range books {
		outPath := filepath.Join(contextDir, b.id+".json")

		if !cfg.Force {
			if fi, err := os.Stat(outPath); err == nil && fi.Size() > 0 {
				log.Info("skipping already processed book", zap.String("book_id", b.id))
				continue
			}
		}

		start := time.Now()
		err := figref.Open(b.mdPath).
			BookID(b.id).
			Config(captCfg).
			Logger(log).
			WriteJSON(outPath)
		if err != nil {
			log.Error("book failed", zap.String("book_id", b.id), zap.Error(err))
			continue
		}

		log.Info("book processed",
			zap.String("book_id", b.id),
			zap.String("context", outPath),
			zap.Duration("elapsed", time.Since(start)))
	}

	return nil
}
