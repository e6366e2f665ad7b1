package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/okian/nameprep/pkg/logger"
	"github.com/okian/nameprep/pkg/metrics"
)

const (
	rawNameHeader   = "raw_name"
	nameGroupHeader = "name_group"
)

// FileStore implements Store on a two-column CSV file.
type FileStore struct {
	path   string
	logger logger.Logger
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:   path,
		logger: logger.Get().Named("lookup-store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the artifact file into a raw_name -> name_group map.
func (s *FileStore) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("open lookup artifact: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	if header[0] != rawNameHeader || header[1] != nameGroupHeader {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrMalformed, header)
	}

	groups := make(map[string]string)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if _, dup := groups[row[0]]; dup {
			return nil, fmt.Errorf("%w: duplicate raw name %q", ErrMalformed, row[0])
		}
		groups[row[0]] = row[1]
	}

	s.logger.Debug(ctx, "lookup artifact loaded",
		logger.String("path", s.path),
		logger.Int("pairs", len(groups)))
	metrics.UpdateTableSize(len(groups))
	return groups, nil
}

// Save writes all pairs sorted by raw name, then renames the temp file over
// the target so a crash mid-write never leaves a truncated artifact.
func (s *FileStore) Save(ctx context.Context, groups map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{rawNameHeader, nameGroupHeader}); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact header: %w", err)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.Write([]string{name, groups[name]}); err != nil {
			tmp.Close()
			return fmt.Errorf("write artifact row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace lookup artifact: %w", err)
	}

	s.logger.Info(ctx, "lookup artifact saved",
		logger.String("path", s.path),
		logger.Int("pairs", len(groups)))
	metrics.UpdateTableSize(len(groups))
	return nil
}
