package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/jdkapi/classinfo"
	"github.com/dhamidi/jdkapi/image"
	"github.com/dhamidi/jdkapi/introspect"
	"github.com/dhamidi/jdkapi/listing"
	"github.com/dhamidi/jdkapi/modgraph"
)

type Options struct {
	// Image is the runtime image, usually $JAVA_HOME/lib/modules.
	Image string

	// Output is the classinfo file written by Extract.
	Output string

	Tool image.Tool

	// ExtractDir names a tree extracted earlier with `jimage extract`. When
	// empty the image is extracted into a temporary directory.
	ExtractDir string

	// KeepExtracted leaves the temporary extraction on disk.
	KeepExtracted bool

	Graph          modgraph.Options
	NoModuleFilter bool
	NoLinkCheck    bool

	// Diagnostics receives per-class load failures.
	Diagnostics io.Writer
}

// Session holds the image source and boot graph shared by the steps of a run.
type Session struct {
	Image  string
	Tool   image.Tool
	Source image.Source
	Graph  *modgraph.Graph

	opts      Options
	extracted *image.Extracted
}

// Open prepares the class source and loads the boot module graph. The caller
// must Close the session.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.Image == "" {
		return nil, errors.New("no runtime image given")
	}

	var ex *image.Extracted
	if opts.ExtractDir != "" {
		log.Infof("using classes extracted in %s", opts.ExtractDir)
		ex = image.Existing(opts.ExtractDir)
	} else {
		var err error
		ex, err = opts.Tool.ExtractTemp(ctx, opts.Image)
		if err != nil {
			return nil, err
		}
		if opts.KeepExtracted {
			ex.Keep()
			log.Noticef("keeping extracted classes in %s", ex.Root)
		}
	}

	g, err := modgraph.Load(ex, opts.Graph)
	if err != nil {
		ex.Close()
		return nil, fmt.Errorf("load boot module graph: %w", err)
	}

	return &Session{
		Image:     opts.Image,
		Tool:      opts.Tool,
		Source:    ex,
		Graph:     g,
		opts:      opts,
		extracted: ex,
	}, nil
}

// Candidates lists the image and returns the exported classes of the graph.
func (s *Session) Candidates(ctx context.Context) ([]string, error) {
	var out bytes.Buffer
	if err := s.Tool.List(ctx, s.Image, &out); err != nil {
		return nil, err
	}
	names, stats, err := listing.ParseStats(&out, s.Graph)
	if err != nil {
		return nil, err
	}
	log.Infof("listing: %d modules (%d outside the boot graph), %d candidate classes, %d in concealed packages",
		stats.Modules, stats.SkippedModules, stats.Kept, stats.Dropped)
	return names, nil
}

func (s *Session) Introspector() *introspect.Introspector {
	return introspect.New(s.Graph, s.Source,
		introspect.WithModuleFilter(!s.opts.NoModuleFilter),
		introspect.WithLinkCheck(!s.opts.NoLinkCheck))
}

// Pipeline returns a pipeline over the session's introspector.
func (s *Session) Pipeline() *Pipeline {
	return &Pipeline{Introspector: s.Introspector(), Diagnostics: s.opts.Diagnostics}
}

func (s *Session) Close() error {
	return s.extracted.Close()
}

// Extract runs a complete extraction of opts.Image into opts.Output.
func Extract(ctx context.Context, opts Options) (stats Stats, err error) {
	if opts.Output == "" {
		return stats, errors.New("no output file given")
	}
	s, err := Open(ctx, opts)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			log.Warningf("remove extracted classes: %s", cerr)
		}
	}()

	names, err := s.Candidates(ctx)
	if err != nil {
		return stats, err
	}

	p := s.Pipeline()
	err = WriteFile(opts.Output, func(w io.Writer) error {
		cw := classinfo.NewWriter(w)
		var err error
		if stats, err = p.Run(names, cw); err != nil {
			return err
		}
		return cw.Flush()
	})
	if err != nil {
		return stats, err
	}

	log.Infof("wrote %d of %d classes to %s (%d filtered, %d skipped)",
		stats.Written, stats.Candidates, opts.Output, stats.Filtered, stats.Skipped())
	return stats, nil
}
