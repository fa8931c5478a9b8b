// Package listing turns the output of `jimage list` into the names of the
// classes that make up the exported API of the boot module graph.
package listing

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dhamidi/jdkapi/classfile"
	"github.com/dhamidi/jdkapi/modgraph"
)

const (
	moduleHeader = "Module: "
	classSuffix  = ".class"
)

// Stats counts what Parse saw in a listing.
type Stats struct {
	Modules        int // module blocks in the listing
	SkippedModules int // blocks of modules outside the graph
	Kept           int // class names returned
	Dropped        int // class lines of graph modules filtered out
}

// Parse reads a listing and returns the internal names of all classes that
// belong to an exported package of a module in g, in listing order.
func Parse(r io.Reader, g *modgraph.Graph) ([]string, error) {
	names, _, err := ParseStats(r, g)
	return names, err
}

// ParseStats is Parse that also reports counters.
func ParseStats(r io.Reader, g *modgraph.Graph) ([]string, Stats, error) {
	var (
		names   []string
		stats   Stats
		current *modgraph.Module
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if name, ok := strings.CutPrefix(line, moduleHeader); ok {
			stats.Modules++
			m, found := g.Lookup(strings.TrimSpace(name))
			if !found {
				stats.SkippedModules++
				current = nil
				continue
			}
			current = m
			continue
		}

		if current == nil {
			continue
		}
		className, ok := strings.CutSuffix(line, classSuffix)
		if !ok || className == "" {
			continue
		}
		if path.Base(className) == classfile.ModuleInfoName {
			continue
		}
		if !current.ExportsClass(className) {
			stats.Dropped++
			continue
		}
		names = append(names, className)
		stats.Kept++
	}
	if err := scanner.Err(); err != nil {
		return names, stats, fmt.Errorf("read listing: %w", err)
	}
	return names, stats, nil
}
