package stats

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/figref/model"
)

// Counts tallies image classifications across a corpus.
type Counts struct {
	Normal          int `json:"normal"`
	Abnormal        int `json:"abnormal"`
	ExtremeAbnormal int `json:"extreme_abnormal"`
}

// Total returns the number of classified images counted.
func (c Counts) Total() int {
	return c.Normal + c.Abnormal + c.ExtremeAbnormal
}

// SampledFile describes one context file selected by SampleAbnormal.
type SampledFile struct {
	Filename      string `json:"filename"`
	Path          string `json:"file_path"`
	AbnormalCount int    `json:"abnormal_count"`
}

// SampleSummary records the outcome of an abnormal-context sampling run. It
// is also serialized as sample_summary.json next to the copied files.
type SampleSummary struct {
	SamplePercentage       float64       `json:"sample_percentage"`
	TotalFilesWithAbnormal int           `json:"total_files_with_abnormal"`
	SampledFilesCount      int           `json:"sampled_files_count"`
	TotalAbnormalInSample  int           `json:"total_abnormal_in_sample"`
	SampledFiles           []SampledFile `json:"sampled_files"`
}

// Reporter reads serialized context files and produces diagnostics.
type Reporter struct {
	log *zap.Logger
	rng *rand.Rand
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithLogger sets the logger for per-file warnings. Default is no-op.
func WithLogger(log *zap.Logger) Option {
	return func(r *Reporter) {
		r.log = log
	}
}

// WithRand sets the random source used for sampling. The default is seeded
// from the clock; tests inject a fixed source.
func WithRand(rng *rand.Rand) Option {
	return func(r *Reporter) {
		r.rng = rng
	}
}

// NewReporter creates a reporter with the default configuration.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{
		log: zap.NewNop(),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ClassificationCounts tallies the classification field of every image entry
// in every .json file under contextDir. Files that fail to parse are logged
// and skipped; unknown classification values are ignored.
func (r *Reporter) ClassificationCounts(contextDir string) (Counts, error) {
	entries, err := os.ReadDir(contextDir)
	if err != nil {
		return Counts{}, fmt.Errorf("reading context directory: %w", err)
	}

	var counts Counts
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		images, err := r.readContextFile(filepath.Join(contextDir, entry.Name()))
		if err != nil {
			r.log.Warn("skipping unreadable context file",
				zap.String("file", entry.Name()),
				zap.Error(err))
			continue
		}

		for _, img := range images {
			switch strings.ToLower(string(img.Classification)) {
			case "normal":
				counts.Normal++
			case "abnormal":
				counts.Abnormal++
			case "extreme abnormal":
				counts.ExtremeAbnormal++
			}
		}
	}

	return counts, nil
}

// SampleAbnormal randomly samples context files containing at least one
// abnormal image and copies them into <inputDir>/abnormal_sample for manual
// review. percentage is a percentage of the eligible files, with a minimum
// sample of one. A sample_summary.json describing the run is written
// alongside the copies.
func (r *Reporter) SampleAbnormal(inputDir string, percentage float64) (*SampleSummary, error) {
	contextDir := filepath.Join(inputDir, "context")
	sampleDir := filepath.Join(inputDir, "abnormal_sample")

	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating sample directory: %w", err)
	}

	entries, err := os.ReadDir(contextDir)
	if err != nil {
		return nil, fmt.Errorf("reading context directory: %w", err)
	}

	var eligible []SampledFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(contextDir, entry.Name())
		images, err := r.readContextFile(path)
		if err != nil {
			r.log.Warn("skipping unreadable context file",
				zap.String("file", entry.Name()),
				zap.Error(err))
			continue
		}

		abnormal := 0
		for _, img := range images {
			if strings.EqualFold(string(img.Classification), "abnormal") {
				abnormal++
			}
		}
		if abnormal > 0 {
			eligible = append(eligible, SampledFile{
				Filename:      entry.Name(),
				Path:          path,
				AbnormalCount: abnormal,
			})
		}
	}

	sampleSize := int(float64(len(eligible)) * percentage / 100)
	if sampleSize < 1 {
		sampleSize = 1
	}
	if sampleSize > len(eligible) {
		sampleSize = len(eligible)
	}

	r.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	sampled := eligible[:sampleSize]

	summary := &SampleSummary{
		SamplePercentage:       percentage,
		TotalFilesWithAbnormal: len(eligible),
		SampledFiles:           sampled,
	}

	for _, sf := range sampled {
		dst := uniquePath(sampleDir, sf.Filename)
		if err := copyFile(sf.Path, dst); err != nil {
			r.log.Warn("could not copy sampled file",
				zap.String("file", sf.Filename),
				zap.Error(err))
			continue
		}
		summary.SampledFilesCount++
		summary.TotalAbnormalInSample += sf.AbnormalCount
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sample summary: %w", err)
	}
	summaryPath := filepath.Join(sampleDir, "sample_summary.json")
	if err := os.WriteFile(summaryPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing sample summary: %w", err)
	}

	r.log.Info("abnormal sample complete",
		zap.Int("eligible", len(eligible)),
		zap.Int("sampled", summary.SampledFilesCount),
		zap.String("summary", summaryPath))

	return summary, nil
}

func (r *Reporter) readContextFile(path string) ([]model.ImageContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var images []model.ImageContext
	if err := json.Unmarshal(data, &images); err != nil {
		return nil, err
	}
	return images, nil
}

// uniquePath returns a path under dir for name, appending _1, _2, ... if the
// name is already taken.
func uniquePath(dir, name string) string {
	dst := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for counter := 1; ; counter++ {
		if _, err := os.Stat(dst); os.IsNotExist(err) {
			return dst
		}
		dst = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, counter, ext))
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
