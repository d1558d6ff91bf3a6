package stats

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/figref/model"
)

func writeContextFile(t *testing.T, dir, name string, images []model.ImageContext) {
	t.Helper()
	data, err := json.Marshal(images)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestClassificationCounts(t *testing.T) {
	dir := t.TempDir()

	writeContextFile(t, dir, "000001.json", []model.ImageContext{
		{Classification: model.ClassNormal},
		{Classification: model.ClassAbnormal},
		{Classification: model.ClassExtremeAbnormal},
	})
	writeContextFile(t, dir, "000002.json", []model.ImageContext{
		{Classification: model.ClassNormal},
		{Classification: model.ClassNormal},
	})
	// Not a context file, must be ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	counts, err := NewReporter().ClassificationCounts(dir)
	if err != nil {
		t.Fatalf("ClassificationCounts: %v", err)
	}

	want := Counts{Normal: 3, Abnormal: 1, ExtremeAbnormal: 1}
	if counts != want {
		t.Errorf("counts = %+v, want %+v", counts, want)
	}
	if counts.Total() != 5 {
		t.Errorf("total = %d, want 5", counts.Total())
	}
}

func TestClassificationCounts_SkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()

	writeContextFile(t, dir, "000001.json", []model.ImageContext{
		{Classification: model.ClassNormal},
	})
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	counts, err := NewReporter().ClassificationCounts(dir)
	if err != nil {
		t.Fatalf("ClassificationCounts: %v", err)
	}
	if counts.Normal != 1 || counts.Total() != 1 {
		t.Errorf("counts = %+v, want only the valid file counted", counts)
	}
}

func TestClassificationCounts_MissingDirectory(t *testing.T) {
	_, err := NewReporter().ClassificationCounts(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestSampleAbnormal(t *testing.T) {
	root := t.TempDir()
	contextDir := filepath.Join(root, "context")
	if err := os.MkdirAll(contextDir, 0o755); err != nil {
		t.Fatal(err)
	}

	writeContextFile(t, contextDir, "000001.json", []model.ImageContext{
		{Classification: model.ClassAbnormal},
		{Classification: model.ClassAbnormal},
	})
	writeContextFile(t, contextDir, "000002.json", []model.ImageContext{
		{Classification: model.ClassNormal},
	})
	writeContextFile(t, contextDir, "000003.json", []model.ImageContext{
		{Classification: model.ClassAbnormal},
	})

	r := NewReporter(WithRand(rand.New(rand.NewSource(1))))
	summary, err := r.SampleAbnormal(root, 100)
	if err != nil {
		t.Fatalf("SampleAbnormal: %v", err)
	}

	if summary.TotalFilesWithAbnormal != 2 {
		t.Errorf("eligible files = %d, want 2", summary.TotalFilesWithAbnormal)
	}
	if summary.SampledFilesCount != 2 {
		t.Errorf("sampled files = %d, want 2", summary.SampledFilesCount)
	}
	if summary.TotalAbnormalInSample != 3 {
		t.Errorf("abnormal in sample = %d, want 3", summary.TotalAbnormalInSample)
	}

	sampleDir := filepath.Join(root, "abnormal_sample")
	for _, name := range []string{"000001.json", "000003.json", "sample_summary.json"} {
		if _, err := os.Stat(filepath.Join(sampleDir, name)); err != nil {
			t.Errorf("expected %s in sample directory: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(sampleDir, "000002.json")); !os.IsNotExist(err) {
		t.Error("file without abnormal images must not be sampled")
	}

	// Summary on disk round-trips.
	data, err := os.ReadFile(filepath.Join(sampleDir, "sample_summary.json"))
	if err != nil {
		t.Fatal(err)
	}
	var onDisk SampleSummary
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("decoding sample_summary.json: %v", err)
	}
	if onDisk.SampledFilesCount != summary.SampledFilesCount {
		t.Errorf("on-disk sampled count = %d, want %d", onDisk.SampledFilesCount, summary.SampledFilesCount)
	}
}

func TestSampleAbnormal_MinimumOneFile(t *testing.T) {
	root := t.TempDir()
	contextDir := filepath.Join(root, "context")
	if err := os.MkdirAll(contextDir, 0o755); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"000001.json", "000002.json", "000003.json"} {
		writeContextFile(t, contextDir, name, []model.ImageContext{
			{Classification: model.ClassAbnormal},
		})
	}

	r := NewReporter(WithRand(rand.New(rand.NewSource(7))))
	summary, err := r.SampleAbnormal(root, 1)
	if err != nil {
		t.Fatalf("SampleAbnormal: %v", err)
	}
	if summary.SampledFilesCount != 1 {
		t.Errorf("sampled files = %d, want minimum of 1", summary.SampledFilesCount)
	}
}

func TestSampleAbnormal_MissingContextDir(t *testing.T) {
	if _, err := NewReporter().SampleAbnormal(t.TempDir(), 100); err == nil {
		t.Fatal("expected error when context directory is missing")
	}
}
