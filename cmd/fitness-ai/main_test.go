package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smith3v/fitness-ai/pkg/profile"
)

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "fitness.db"))
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	base := []string{"--config", filepath.Join(dir, "missing.json"), "--env-file", filepath.Join(dir, "missing.env")}
	root.SetArgs(append(base, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRunCLI(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, dir, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func TestRegistrationFlow(t *testing.T) {
	dir := setupCLI(t)

	if out := mustRunCLI(t, dir, "migrate"); !strings.Contains(out, "schema is up to date") {
		t.Fatalf("unexpected migrate output %q", out)
	}
	if out := mustRunCLI(t, dir, "resolve", "genders", "female"); strings.TrimSpace(out) != "1" {
		t.Fatalf("expected gender id 1, got %q", out)
	}

	out := mustRunCLI(t, dir, "register",
		"--age", "30", "--height", "165", "--weight", "65", "--target-weight", "58",
		"--gender", "female", "--diet", "vegetarian", "--fitness-level", "intermediate",
		"--goal", "Lose weight", "--goal", "Lose weight")
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("expected user id 1, got %q", out)
	}

	out = mustRunCLI(t, dir, "progress", "1")
	var progress profile.Progress
	if err := json.Unmarshal([]byte(out), &progress); err != nil {
		t.Fatalf("progress output is not JSON: %v\n%s", err, out)
	}
	if progress != (profile.Progress{UserID: 1, CurrentWeight: 65, TargetWeight: 58, KgToLose: 7}) {
		t.Fatalf("unexpected progress %+v", progress)
	}

	if _, err := runCLI(t, dir, "progress", "2"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRegisterRejectsInvalidProfile(t *testing.T) {
	dir := setupCLI(t)
	mustRunCLI(t, dir, "migrate")

	_, err := runCLI(t, dir, "register", "--age", "0", "--height", "165", "--weight", "65",
		"--target-weight", "58", "--gender", "female", "--diet", "vegan", "--fitness-level", "beginner")
	if err == nil || !strings.Contains(err.Error(), "invalid age") {
		t.Fatalf("expected age validation error, got %v", err)
	}
}

func TestSeedIsRepeatable(t *testing.T) {
	dir := setupCLI(t)

	first := mustRunCLI(t, dir, "seed")
	if !strings.Contains(first, "genders: 3 inserted") || !strings.Contains(first, "goals: 4 inserted") {
		t.Fatalf("unexpected first seed output %q", first)
	}
	second := mustRunCLI(t, dir, "seed")
	for _, table := range profile.ReferenceTables() {
		if !strings.Contains(second, string(table)+": 0 inserted") {
			t.Fatalf("expected nothing inserted into %s, got %q", table, second)
		}
	}
}

func TestSeedFromDataset(t *testing.T) {
	dir := setupCLI(t)
	csvPath := filepath.Join(dir, "nutrition.csv")
	data := "Gender,Dietary Preference,Fitness Goal\nmale,omnivore,muscle gain\nFemale,Vegan,Weight Loss\n"
	if err := os.WriteFile(csvPath, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}

	out := mustRunCLI(t, dir, "seed", "--dataset", csvPath)
	if !strings.Contains(out, "genders: 5 inserted") || !strings.Contains(out, "diet_types: 6 inserted") || !strings.Contains(out, "goals: 6 inserted") {
		t.Fatalf("unexpected seed output %q", out)
	}
}

func TestResetRequiresForce(t *testing.T) {
	dir := setupCLI(t)
	if _, err := runCLI(t, dir, "reset"); err == nil {
		t.Fatal("expected reset without --force to fail")
	}
	mustRunCLI(t, dir, "seed")
	mustRunCLI(t, dir, "reset", "--force")
	out := mustRunCLI(t, dir, "seed")
	if !strings.Contains(out, "genders: 3 inserted") {
		t.Fatalf("expected empty tables after reset, got %q", out)
	}
}

func TestDatasetCleanAndStats(t *testing.T) {
	dir := setupCLI(t)
	raw := filepath.Join(dir, "raw.csv")
	cleaned := filepath.Join(dir, "processed", "cleaned.csv")
	stats := filepath.Join(dir, "processed", "stats.csv")
	data := "Age,Gender,Height,Weight,Fitness Goal,Daily Calorie Target\n" +
		"25,male,180,80,weight maintenance,2500\n" +
		"200,female,170,60,weight loss,2000\n"
	if err := os.WriteFile(raw, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write raw dataset: %v", err)
	}

	out := mustRunCLI(t, dir, "dataset", "clean", "--in", raw, "--out", cleaned)
	if !strings.Contains(out, "cleaned 2 -> 1 rows") || !strings.Contains(out, "recorded run") {
		t.Fatalf("unexpected clean output %q", out)
	}
	content, err := os.ReadFile(cleaned)
	if err != nil {
		t.Fatalf("failed to read cleaned file: %v", err)
	}
	if !strings.Contains(string(content), "25,Male,180,80,Maintenance,2500") {
		t.Fatalf("unexpected cleaned content:\n%s", content)
	}

	out = mustRunCLI(t, dir, "dataset", "stats", "--in", cleaned, "--out", stats)
	if !strings.Contains(out, "Male: 1") {
		t.Fatalf("expected category counts, got %q", out)
	}
	if _, err := os.Stat(stats); err != nil {
		t.Fatalf("expected stats file: %v", err)
	}

	out = mustRunCLI(t, dir, "dataset", "imports")
	if !strings.Contains(out, `"rows_out": 1`) {
		t.Fatalf("expected recorded import in %q", out)
	}
}

func TestStructureCommand(t *testing.T) {
	dir := setupCLI(t)
	project := filepath.Join(dir, "project")
	if err := os.MkdirAll(filepath.Join(project, "pkg"), 0o755); err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	out := mustRunCLI(t, dir, "structure", "--root", project, "--out", filepath.Join(dir, "docs"))
	if !strings.Contains(out, "version_001.md") {
		t.Fatalf("unexpected structure output %q", out)
	}
}

func TestS3RequiresBucket(t *testing.T) {
	dir := setupCLI(t)
	t.Setenv("S3_BUCKET", "")
	if _, err := runCLI(t, dir, "s3", "list"); err == nil || !strings.Contains(err.Error(), "bucket") {
		t.Fatalf("expected missing bucket error, got %v", err)
	}
}
