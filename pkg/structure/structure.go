// Package structure renders a project tree as markdown and keeps numbered
// snapshots of it together with change reports between consecutive snapshots.
package structure

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/smith3v/fitness-ai/pkg/logger"
)

var DefaultIgnore = []string{".git", "vendor", "node_modules", ".idea", ".DS_Store", "versions", "changes"}

const timestampLayout = "2006-01-02 15:04:05"

var versionFile = regexp.MustCompile(`^version_(\d+)\.md$`)

// Tree walks fsys from its root and returns one line per entry, directories
// first, each level sorted case-insensitively.
func Tree(fsys fs.FS, ignore []string) ([]string, error) {
	skip := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		skip[name] = struct{}{}
	}
	var lines []string
	if err := walk(fsys, ".", "", skip, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func walk(fsys fs.FS, dir, prefix string, skip map[string]struct{}, lines *[]string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if _, ok := skip[e.Name()]; !ok {
			kept = append(kept, e)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].IsDir() != kept[j].IsDir() {
			return kept[i].IsDir()
		}
		return strings.ToLower(kept[i].Name()) < strings.ToLower(kept[j].Name())
	})

	for i, e := range kept {
		last := i == len(kept)-1
		connector := "├── "
		extension := "│   "
		if last {
			connector = "└── "
			extension = "    "
		}
		if !e.IsDir() {
			*lines = append(*lines, prefix+connector+e.Name())
			continue
		}
		*lines = append(*lines, prefix+connector+e.Name()+"/")
		if err := walk(fsys, pathJoin(dir, e.Name()), prefix+extension, skip, lines); err != nil {
			return err
		}
	}
	return nil
}

func pathJoin(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}

// Diff reports lines present only in next (added) and only in prev (removed),
// each in its original order.
func Diff(prev, next []string) (added, removed []string) {
	remaining := make(map[string]int, len(prev))
	for _, line := range prev {
		remaining[line]++
	}
	for _, line := range next {
		if remaining[line] > 0 {
			remaining[line]--
			continue
		}
		added = append(added, line)
	}
	for i := len(prev) - 1; i >= 0; i-- {
		if remaining[prev[i]] > 0 {
			remaining[prev[i]]--
			removed = append(removed, prev[i])
		}
	}
	for i, j := 0, len(removed)-1; i < j; i, j = i+1, j-1 {
		removed[i], removed[j] = removed[j], removed[i]
	}
	return added, removed
}

type Snapshot struct {
	Version     int
	TreePath    string
	ChangesPath string
}

// Generator writes snapshots under OutDir/versions and change reports under
// OutDir/changes.
type Generator struct {
	OutDir string
	Ignore []string
	Now    func() time.Time
}

func (g *Generator) versionsDir() string { return filepath.Join(g.OutDir, "versions") }
func (g *Generator) changesDir() string  { return filepath.Join(g.OutDir, "changes") }

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// LatestVersion returns the highest snapshot number on disk, or 0.
func (g *Generator) LatestVersion() (int, error) {
	entries, err := os.ReadDir(g.versionsDir())
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	latest := 0
	for _, e := range entries {
		m := versionFile.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > latest {
			latest = n
		}
	}
	return latest, nil
}

// Generate snapshots the tree of fsys. When a previous snapshot exists a
// change report against it is written as well.
func (g *Generator) Generate(fsys fs.FS) (*Snapshot, error) {
	ignore := g.Ignore
	if ignore == nil {
		ignore = DefaultIgnore
	}
	lines, err := Tree(fsys, ignore)
	if err != nil {
		return nil, fmt.Errorf("render tree: %w", err)
	}
	for _, dir := range []string{g.versionsDir(), g.changesDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	prev, err := g.LatestVersion()
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Version:  prev + 1,
		TreePath: filepath.Join(g.versionsDir(), fmt.Sprintf("version_%03d.md", prev+1)),
	}
	stamp := g.now().Format(timestampLayout)

	var b strings.Builder
	fmt.Fprintf(&b, "# Project Structure - Version %d\n", snap.Version)
	fmt.Fprintf(&b, "_Generated on %s_\n\n", stamp)
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	if err := os.WriteFile(snap.TreePath, []byte(b.String()), 0o644); err != nil {
		return nil, err
	}
	logger.Info("project structure saved", "path", snap.TreePath)

	if prev == 0 {
		return snap, nil
	}

	prevLines, err := readTreeLines(filepath.Join(g.versionsDir(), fmt.Sprintf("version_%03d.md", prev)))
	if err != nil {
		return nil, err
	}
	added, removed := Diff(prevLines, lines)

	b.Reset()
	fmt.Fprintf(&b, "# Changes from Version %d to %d\n", prev, snap.Version)
	fmt.Fprintf(&b, "_Generated on %s_\n\n", stamp)
	if len(added) > 0 {
		b.WriteString("## Added\n")
		for _, line := range added {
			fmt.Fprintf(&b, "- `%s`\n", line)
		}
	}
	if len(removed) > 0 {
		b.WriteString("\n## Removed\n")
		for _, line := range removed {
			fmt.Fprintf(&b, "- `%s`\n", line)
		}
	}
	if len(added) == 0 && len(removed) == 0 {
		b.WriteString("No changes detected.\n")
	}

	snap.ChangesPath = filepath.Join(g.changesDir(), fmt.Sprintf("changes_from_v%03d_to_v%03d.md", prev, snap.Version))
	if err := os.WriteFile(snap.ChangesPath, []byte(b.String()), 0o644); err != nil {
		return nil, err
	}
	logger.Info("structure changes saved", "path", snap.ChangesPath, "added", len(added), "removed", len(removed))
	return snap, nil
}

// readTreeLines returns the tree lines of a snapshot, skipping its title,
// timestamp and blank lines.
func readTreeLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "_") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
