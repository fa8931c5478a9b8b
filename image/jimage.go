package image

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jdkapi.image")

// Tool runs the JDK's jimage utility.
type Tool struct {
	// Path of the jimage binary. Empty means "jimage" on PATH.
	Path string
}

func (t Tool) binary() string {
	if t.Path == "" {
		return "jimage"
	}
	return t.Path
}

// List runs `jimage list <image>` and copies its standard output to w.
func (t Tool) List(ctx context.Context, image string, w io.Writer) error {
	return t.run(ctx, w, "list", image)
}

// Extract runs `jimage extract --dir <dir> <image>`.
func (t Tool) Extract(ctx context.Context, image, dir string) error {
	return t.run(ctx, io.Discard, "extract", "--dir", dir, image)
}

func (t Tool) run(ctx context.Context, stdout io.Writer, args ...string) error {
	bin := t.binary()
	log.Debugf("running %s %s", bin, strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("jimage %s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("jimage %s: %w", args[0], err)
	}
	return nil
}

// Extracted is a Dir backed by a temporary extraction that Close removes.
type Extracted struct {
	Dir
	temporary bool
}

// ExtractTemp unpacks image into a fresh temporary directory.
func (t Tool) ExtractTemp(ctx context.Context, image string) (*Extracted, error) {
	dir, err := os.MkdirTemp("", "jdkapi-image-")
	if err != nil {
		return nil, fmt.Errorf("create extraction directory: %w", err)
	}
	log.Infof("extracting %s into %s", image, dir)
	if err := t.Extract(ctx, image, dir); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return &Extracted{Dir: Dir{Root: dir}, temporary: true}, nil
}

// Existing wraps a directory extracted earlier. Close leaves it in place.
func Existing(dir string) *Extracted {
	return &Extracted{Dir: Dir{Root: dir}}
}

// Keep turns a temporary extraction into a permanent one.
func (e *Extracted) Keep() {
	e.temporary = false
}

func (e *Extracted) Close() error {
	if !e.temporary {
		return nil
	}
	log.Debugf("removing %s", e.Root)
	return os.RemoveAll(e.Root)
}
