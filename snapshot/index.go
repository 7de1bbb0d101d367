package snapshot

import (
	"fmt"
	"regexp"

	"github.com/andreyvit/idxsnap"
)

// Filter picks subjects by name. A nil Include accepts everything; Exclude
// wins over Include. Individual settings are matched as "settings.<name>".
type Filter struct {
	Include *regexp.Regexp
	Exclude *regexp.Regexp
}

// NewFilter compiles include and exclude patterns. Empty patterns are unset.
func NewFilter(include, exclude string) (Filter, error) {
	var f Filter
	var err error
	if include != "" {
		if f.Include, err = regexp.Compile(include); err != nil {
			return Filter{}, fmt.Errorf("include: %w", err)
		}
	}
	if exclude != "" {
		if f.Exclude, err = regexp.Compile(exclude); err != nil {
			return Filter{}, fmt.Errorf("exclude: %w", err)
		}
	}
	return f, nil
}

func (f Filter) Allows(name string) bool {
	if f.Include != nil && !f.Include.MatchString(name) {
		return false
	}
	if f.Exclude != nil && f.Exclude.MatchString(name) {
		return false
	}
	return true
}

// Snapshot is the rendered text of one subject.
type Snapshot struct {
	Subject Subject
	Text    string
}

func (s Snapshot) Name() string {
	return s.Subject.String()
}

// SnapshotIndex renders every subject the filter allows, in registry order,
// from a single read transaction. The settings block is kept only when at
// least one of its lines passes the filter.
func SnapshotIndex(tx *idxsnap.Tx, f Filter) ([]Snapshot, error) {
	var result []Snapshot
	for _, s := range Subjects() {
		var text string
		var err error
		if s == Settings {
			text, err = FormatSettings(tx, func(name string) bool {
				return f.Allows(Settings.String() + "." + name)
			})
			if err == nil && text == "" {
				continue
			}
		} else {
			if !f.Allows(s.String()) {
				continue
			}
			text, err = Render(tx, s)
		}
		if err != nil {
			return nil, fmt.Errorf("snapshot %v: %w", s, err)
		}
		result = append(result, Snapshot{s, text})
	}
	return result, nil
}

// SnapIndex is SnapshotIndex over a fresh read transaction.
func SnapIndex(idx *idxsnap.Index, f Filter) ([]Snapshot, error) {
	var result []Snapshot
	err := idx.Read(func(tx *idxsnap.Tx) error {
		var err error
		result, err = SnapshotIndex(tx, f)
		return err
	})
	return result, err
}
