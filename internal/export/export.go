// Package export writes converted sheets to per-type files.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/bjaus/attackcsv"
)

// ErrUnsafeType reports an object type that cannot be used as a file name
// inside the output directory.
var ErrUnsafeType = errors.New("unsafe object type for file name")

// Exporter writes one file per sheet under Dir/v<Version>.
type Exporter struct {
	Dir     string
	Version string
	Format  attackcsv.Format
	// DerivedID adds the "-w-id" suffix to file names.
	DerivedID bool
	// Workers bounds how many sheets are written at once. Values below one
	// mean one.
	Workers int
	Logger  *log.Logger
}

// VersionDir returns the directory files are written to.
func (e Exporter) VersionDir() string {
	return filepath.Join(e.Dir, "v"+e.Version)
}

// Path returns the output file for an object type.
func (e Exporter) Path(typ string) string {
	name := typ
	if e.DerivedID {
		name += "-w-id"
	}
	return filepath.Join(e.VersionDir(), name+e.Format.Ext())
}

// Export writes every sheet and returns the paths in sheet order. The first
// failure cancels the remaining writes.
func (e Exporter) Export(ctx context.Context, sheets []attackcsv.Sheet) ([]string, error) {
	for _, s := range sheets {
		if err := checkType(s.Type); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(e.VersionDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	logger := e.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	paths := make([]string, len(sheets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.Workers))
	for i, s := range sheets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := e.Path(s.Type)
			logger.Info("generating file", "type", s.Type, "rows", s.Len(), "path", path)
			if err := writeFile(path, e.Format, s); err != nil {
				return fmt.Errorf("write %s: %w", s.Type, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// checkType accepts only a single local path element.
func checkType(typ string) error {
	if typ == "" || typ != filepath.Base(typ) || !filepath.IsLocal(typ) || strings.ContainsAny(typ, `/\\`) {
		return fmt.Errorf("%w: %q", ErrUnsafeType, typ)
	}
	return nil
}

func writeFile(path string, f attackcsv.Format, s attackcsv.Sheet) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := attackcsv.Write(tmp, f, s); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
