// idxsnap prints deterministic text snapshots of an index stored in a Bolt file.
//
// Usage:
//
//	idxsnap --db index.db --subject word_docids
//	idxsnap --db index.db --all --exclude '^settings\.' --format yaml
//	idxsnap --db index.db --dump
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/andreyvit/idxsnap"
	"github.com/andreyvit/idxsnap/snapshot"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		slog.Error("idxsnap failed", "err", err)
		os.Exit(1)
	}
}

type options struct {
	db      string
	subject string
	all     bool
	include string
	exclude string
	reduce  bool
	inline  bool
	format  string
	dump    bool
	verbose bool
}

func run(args []string, out io.Writer) error {
	var opt options
	fs := pflag.NewFlagSet("idxsnap", pflag.ContinueOnError)
	fs.StringVar(&opt.db, "db", "", "path to the Bolt index file")
	fs.StringVarP(&opt.subject, "subject", "s", "", "subject to snapshot, e.g. word_docids or settings")
	fs.BoolVar(&opt.all, "all", false, "snapshot every subject")
	fs.StringVar(&opt.include, "include", "", "with --all, only subjects matching this regexp (settings match as settings.<name>)")
	fs.StringVar(&opt.exclude, "exclude", "", "with --all, skip subjects matching this regexp")
	fs.BoolVar(&opt.reduce, "reduce", false, "replace long snapshots by their digest like the test harness does")
	fs.BoolVar(&opt.inline, "inline", false, "with --reduce, use the inline size threshold")
	fs.StringVar(&opt.format, "format", "text", "output format: text or yaml")
	fs.BoolVar(&opt.dump, "dump", false, "print every table as raw hex instead of snapshots")
	fs.BoolVarP(&opt.verbose, "verbose", "v", false, "log every record read")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	if opt.db == "" {
		return errors.New("--db is required")
	}
	if !opt.dump && opt.all == (opt.subject != "") {
		return errors.New("exactly one of --subject and --all is required")
	}
	if opt.format != "text" && opt.format != "yaml" {
		return fmt.Errorf("invalid --format %q", opt.format)
	}

	if opt.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	cfg, err := snapshot.LoadConfig()
	if err != nil {
		return err
	}

	idx, err := idxsnap.Open(opt.db, idxsnap.Options{ReadOnly: true, Verbose: opt.verbose})
	if err != nil {
		return err
	}
	defer idx.Close()

	if opt.dump {
		return idx.Read(func(tx *idxsnap.Tx) error {
			text, err := tx.Dump(idxsnap.DumpAll)
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, text)
			return err
		})
	}

	snaps, err := collect(idx, &opt)
	if err != nil {
		return err
	}

	mode := snapshot.FileMode
	if opt.inline {
		mode = snapshot.InlineMode
	}
	var recs []snapshot.Record
	for _, snap := range snaps {
		if opt.reduce {
			recs = append(recs, snapshot.Reduce(snap.Name(), snap.Text, mode, cfg)...)
		} else {
			recs = append(recs, snapshot.Record{Name: snap.Name(), Content: snap.Text})
		}
	}
	return write(out, opt.format, recs)
}

func collect(idx *idxsnap.Index, opt *options) ([]snapshot.Snapshot, error) {
	if !opt.all {
		s, err := snapshot.ParseSubject(opt.subject)
		if err != nil {
			return nil, err
		}
		text, err := snapshot.Snap(idx, s)
		if err != nil {
			return nil, err
		}
		return []snapshot.Snapshot{{Subject: s, Text: text}}, nil
	}
	f, err := snapshot.NewFilter(opt.include, opt.exclude)
	if err != nil {
		return nil, err
	}
	return snapshot.SnapIndex(idx, f)
}

func write(out io.Writer, format string, recs []snapshot.Record) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return err
		}
		return enc.Close()
	}
	if len(recs) == 1 {
		_, err := io.WriteString(out, recs[0].Content)
		return err
	}
	for _, rec := range recs {
		if _, err := fmt.Fprintf(out, "--- %s\n%s", rec.Name, rec.Content); err != nil {
			return err
		}
	}
	return nil
}
