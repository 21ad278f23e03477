package structure

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/smith3v/fitness-ai/pkg/logger"
)

func init() {
	logger.SetLogLevel(logger.ERROR)
}

func TestTree(t *testing.T) {
	fsys := fstest.MapFS{
		"go.mod":                 {},
		"README.md":              {},
		"pkg/db/models.go":       {},
		"pkg/db/repository.go":   {},
		"cmd/fitness-ai/main.go": {},
		".git/HEAD":              {},
	}

	lines, err := Tree(fsys, DefaultIgnore)
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	want := []string{
		"├── cmd/",
		"│   └── fitness-ai/",
		"│       └── main.go",
		"├── pkg/",
		"│   └── db/",
		"│       ├── models.go",
		"│       └── repository.go",
		"├── go.mod",
		"└── README.md",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestDiff(t *testing.T) {
	added, removed := Diff(
		[]string{"├── a.go", "├── b.go", "└── c.go"},
		[]string{"├── a.go", "├── c.go", "└── d.go"},
	)
	if diff := cmp.Diff([]string{"├── c.go", "└── d.go"}, added); diff != "" {
		t.Fatalf("unexpected added (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"├── b.go", "└── c.go"}, removed); diff != "" {
		t.Fatalf("unexpected removed (-want +got):\n%s", diff)
	}
}

func TestGenerateWritesVersionsAndChanges(t *testing.T) {
	out := t.TempDir()
	gen := &Generator{
		OutDir: out,
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}

	first, err := gen.Generate(fstest.MapFS{"a.go": {}, "b.go": {}})
	if err != nil {
		t.Fatalf("first generate failed: %v", err)
	}
	if first.Version != 1 || first.ChangesPath != "" {
		t.Fatalf("unexpected first snapshot: %+v", first)
	}
	data, err := os.ReadFile(first.TreePath)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	want := "# Project Structure - Version 1\n_Generated on 2026-01-02 03:04:05_\n\n├── a.go\n└── b.go\n"
	if string(data) != want {
		t.Fatalf("unexpected snapshot:\n%s", data)
	}

	second, err := gen.Generate(fstest.MapFS{"a.go": {}, "b.go": {}, "c.go": {}})
	if err != nil {
		t.Fatalf("second generate failed: %v", err)
	}
	if second.Version != 2 || !strings.HasSuffix(second.ChangesPath, "changes_from_v001_to_v002.md") {
		t.Fatalf("unexpected second snapshot: %+v", second)
	}
	changes, err := os.ReadFile(second.ChangesPath)
	if err != nil {
		t.Fatalf("failed to read changes: %v", err)
	}
	if !strings.Contains(string(changes), "## Added\n- `├── b.go`\n- `└── c.go`\n") {
		t.Fatalf("unexpected added section:\n%s", changes)
	}
	if !strings.Contains(string(changes), "## Removed\n- `└── b.go`\n") {
		t.Fatalf("unexpected removed section:\n%s", changes)
	}

	third, err := gen.Generate(fstest.MapFS{"a.go": {}, "b.go": {}, "c.go": {}})
	if err != nil {
		t.Fatalf("third generate failed: %v", err)
	}
	changes, err = os.ReadFile(third.ChangesPath)
	if err != nil {
		t.Fatalf("failed to read changes: %v", err)
	}
	if !strings.Contains(string(changes), "No changes detected.") {
		t.Fatalf("expected no-change report, got:\n%s", changes)
	}
}
