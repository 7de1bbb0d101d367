package snapshot

import (
	"crypto/md5"
	"encoding/hex"
	"log/slog"
)

// Mode says how a snapshot is compared against its fixture.
type Mode int

const (
	// FileMode compares against a separate fixture file.
	FileMode Mode = iota
	// InlineMode compares against a literal embedded in the test source.
	InlineMode
)

// Size thresholds, in bytes, at and above which a snapshot is reduced to a hash.
const (
	InlineThreshold = 256
	FileThreshold   = 2048
)

const (
	HashSuffix = ".hash"
	FullSuffix = ".full"
)

func (m Mode) Threshold() int {
	if m == InlineMode {
		return InlineThreshold
	}
	return FileThreshold
}

func (m Mode) String() string {
	if m == InlineMode {
		return "inline"
	}
	return "file"
}

// Record is one named fixture value to compare.
type Record struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

// Reduce decides what to store for a snapshot. Snapshots shorter than the
// mode's threshold are kept verbatim. Longer ones are replaced by their
// digest under name+".hash", preceded by the verbatim text under
// name+".full" when cfg.FullSnapshots is set.
func Reduce(name, text string, mode Mode, cfg Config) []Record {
	if len(text) < mode.Threshold() {
		return []Record{{name, text}}
	}
	slog.Debug("snapshot reduced to hash", "name", name, "len", len(text), "mode", mode.String(), "full", cfg.FullSnapshots)
	r := make([]Record, 0, 2)
	if cfg.FullSnapshots {
		r = append(r, Record{name + FullSuffix, text})
	}
	r = append(r, Record{name + HashSuffix, Digest(text)})
	return r
}

// Digest returns the lowercase hex MD5 of text.
func Digest(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
