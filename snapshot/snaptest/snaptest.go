// Package snaptest compares index snapshots against stored fixtures from Go tests.
//
// Fixtures live under snapshots/<test file>/<test name>[/<case>]/<name>.snap,
// relative to the package directory. Set IDXSNAP_UPDATE=true to (re)write them,
// and IDXSNAP_FULL_SNAPS=true to also keep the verbatim text of snapshots that
// are stored as hashes.
package snaptest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andreyvit/idxsnap"
	"github.com/andreyvit/idxsnap/snapshot"
)

// Harness binds a resolver and a configuration. The zero value is not
// usable; call New or build one explicitly.
type Harness struct {
	Resolver snapshot.Resolver
	Config   snapshot.Config
	// Source is the test file fixtures are grouped under.
	Source string
}

// New returns a harness for the test file that called it, with configuration
// loaded from the environment. Invalid configuration fails the test.
func New(t testing.TB) *Harness {
	t.Helper()
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatalf("snaptest: cannot determine caller")
	}
	cfg, err := snapshot.LoadConfig()
	if err != nil {
		t.Fatalf("snaptest: %v", err)
	}
	return &Harness{
		Resolver: snapshot.Resolver{
			SourceRoot:  filepath.Dir(file),
			FixtureRoot: snapshot.DefaultFixtureDir,
		},
		Config: cfg,
		Source: file,
	}
}

// AssertSubject snapshots subject s of idx and compares it against its
// fixture file. caseLabel may be empty.
func (h *Harness) AssertSubject(t testing.TB, idx *idxsnap.Index, s snapshot.Subject, caseLabel string) {
	t.Helper()
	text, err := snapshot.Snap(idx, s)
	if err != nil {
		t.Fatalf("%v", err)
	}
	h.AssertText(t, caseLabel, s.String(), text)
}

// AssertIndex snapshots every subject f allows, each into its own fixture.
func (h *Harness) AssertIndex(t testing.TB, idx *idxsnap.Index, f snapshot.Filter, caseLabel string) {
	t.Helper()
	snaps, err := snapshot.SnapIndex(idx, f)
	if err != nil {
		t.Fatalf("%v", err)
	}
	for _, snap := range snaps {
		h.AssertText(t, caseLabel, snap.Name(), snap.Text)
	}
}

// AssertText compares arbitrary snapshot text against fixture files.
func (h *Harness) AssertText(t testing.TB, caseLabel, name, text string) {
	t.Helper()
	id := h.identity(t, caseLabel)
	for _, rec := range snapshot.Reduce(name, text, snapshot.FileMode, h.Config) {
		path := id.Path(rec.Name)
		if h.Config.Update || strings.HasSuffix(rec.Name, snapshot.FullSuffix) {
			writeFixture(t, path, rec.Content)
			continue
		}
		want, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("missing fixture %s, rerun with %sUPDATE=true to create it", path, snapshot.EnvPrefix)
		} else if err != nil {
			t.Fatalf("%v", err)
		}
		require.Equal(t, string(want), rec.Content, "fixture %s", path)
	}
}

// AssertInline snapshots subject s and compares it against expected, which
// holds either the verbatim text or, for long snapshots, its digest.
func (h *Harness) AssertInline(t testing.TB, idx *idxsnap.Index, s snapshot.Subject, expected string) {
	t.Helper()
	text, err := snapshot.Snap(idx, s)
	if err != nil {
		t.Fatalf("%v", err)
	}
	recs := snapshot.Reduce(s.String(), text, snapshot.InlineMode, h.Config)
	for _, rec := range recs[:len(recs)-1] {
		writeFixture(t, h.identity(t, "").Path(rec.Name), rec.Content)
	}
	last := recs[len(recs)-1]
	require.Equal(t, expected, last.Content, "inline snapshot %s", last.Name)
}

func (h *Harness) identity(t testing.TB, caseLabel string) snapshot.Identity {
	t.Helper()
	id, err := h.Resolver.Resolve(h.Source, t.Name(), caseLabel)
	if err != nil {
		t.Fatalf("snaptest: %v", err)
	}
	return id
}

func writeFixture(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("%v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("%v", err)
	}
}
