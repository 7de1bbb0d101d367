package snapshot

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultFixtureDir is the fixture root used when a Resolver has none.
const DefaultFixtureDir = "snapshots"

// Resolver maps call sites to fixture locations. It never touches the store
// or the file system.
type Resolver struct {
	// SourceRoot is the directory that source paths are made relative to.
	SourceRoot string
	// FixtureRoot is the directory fixtures live under.
	FixtureRoot string
}

// Identity is where the fixtures of one test (and optional case) live.
type Identity struct {
	Dir  string
	Test string
	Case string
}

// Resolve computes <FixtureRoot>/<source path relative to SourceRoot>/<test>[/<case>].
// testName may be a full subtest path; only its last segment is used.
func (r Resolver) Resolve(sourcePath, testName, caseLabel string) (Identity, error) {
	rel, err := filepath.Rel(filepath.Clean(r.SourceRoot), filepath.Clean(sourcePath))
	if err != nil {
		return Identity{}, fmt.Errorf("source %s: %w", sourcePath, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Identity{}, fmt.Errorf("source %s is not under %s", sourcePath, r.SourceRoot)
	}

	test := testName
	if i := strings.LastIndexByte(test, '/'); i >= 0 {
		test = test[i+1:]
	}
	if test == "" {
		return Identity{}, fmt.Errorf("empty test name in %q", testName)
	}
	if strings.ContainsAny(caseLabel, `/\`) || caseLabel == "." || caseLabel == ".." {
		return Identity{}, fmt.Errorf("invalid case label %q", caseLabel)
	}

	root := r.FixtureRoot
	if root == "" {
		root = DefaultFixtureDir
	}
	dir := filepath.Join(root, rel, test)
	if caseLabel != "" {
		dir = filepath.Join(dir, caseLabel)
	}
	return Identity{Dir: dir, Test: test, Case: caseLabel}, nil
}

// Path returns the fixture file of the named record.
func (id Identity) Path(name string) string {
	return filepath.Join(id.Dir, name+".snap")
}
