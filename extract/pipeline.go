// Package extract drives an extraction run: it feeds the candidate classes of
// a runtime image through the introspector and writes the resulting records.
package extract

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/jdkapi/classinfo"
	"github.com/dhamidi/jdkapi/introspect"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jdkapi.extract")

// Introspector turns a class name into a record. *introspect.Introspector is
// the production implementation.
type Introspector interface {
	Introspect(name string) (*classinfo.Record, error)
}

// RecordWriter receives the records of a run. *classinfo.Writer is the
// production implementation.
type RecordWriter interface {
	Write(rec *classinfo.Record) error
}

// Stats summarises a pipeline run.
type Stats struct {
	Candidates int
	Written    int
	Filtered   int
	NotFound   int
	Failed     int
}

// Skipped returns the number of classes that produced a diagnostic.
func (s Stats) Skipped() int {
	return s.NotFound + s.Failed
}

type Pipeline struct {
	Introspector Introspector
	// Diagnostics receives one line per class that could not be loaded.
	// Nil discards them.
	Diagnostics io.Writer
	// Log defaults to the jdkapi.extract logger.
	Log commonlog.Logger
}

// Run introspects every name in order and writes the records to w. Classes
// that cannot be loaded are reported and skipped; a write error ends the run.
func (p *Pipeline) Run(names []string, w RecordWriter) (Stats, error) {
	logger := p.Log
	if logger == nil {
		logger = log
	}
	diag := p.Diagnostics
	if diag == nil {
		diag = io.Discard
	}

	stats := Stats{Candidates: len(names)}
	for _, name := range names {
		rec, err := p.Introspector.Introspect(name)
		switch {
		case err == nil:
		case errors.Is(err, introspect.ErrFiltered):
			stats.Filtered++
			logger.Debugf("filtered %v", err)
			continue
		case errors.Is(err, introspect.ErrNotFound):
			stats.NotFound++
			fmt.Fprintf(diag, "Class not found: %s! Skipping...\n", name)
			logger.Warningf("skipping %v", err)
			continue
		default:
			stats.Failed++
			fmt.Fprintf(diag, "Failed to load class %s: %v\n", name, cause(err))
			logger.Warningf("skipping %v", err)
			continue
		}

		if err := w.Write(rec); err != nil {
			return stats, fmt.Errorf("write %s: %w", name, err)
		}
		stats.Written++
	}
	return stats, nil
}

// cause strips the class name a ResolveError adds, since the diagnostic
// already names the class.
func cause(err error) error {
	var re *introspect.ResolveError
	if errors.As(err, &re) {
		return re.Err
	}
	return err
}
