package persistence

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/bitvec/bitvec"
	"github.com/spacemeshos/bitvec/config"
	"github.com/spacemeshos/bitvec/shared"
)

// Info describes a stored vector.
type Info struct {
	Name    string
	NumBits uint64
	Size    int64
}

type storeOpts struct {
	logger             *zap.Logger
	maxBits            uint64
	disableSpaceChecks bool
	parallelism        int
}

type StoreOptionFunc func(*storeOpts)

func WithLogger(logger *zap.Logger) StoreOptionFunc {
	return func(opts *storeOpts) {
		opts.logger = logger
	}
}

// WithMaxBits caps the length of the vectors the store accepts and loads.
func WithMaxBits(maxBits uint64) StoreOptionFunc {
	return func(opts *storeOpts) {
		opts.maxBits = maxBits
	}
}

// WithoutSpaceChecks disables the available disk space check done before
// each write.
func WithoutSpaceChecks() StoreOptionFunc {
	return func(opts *storeOpts) {
		opts.disableSpaceChecks = true
	}
}

// WithParallelism sets the number of files LoadAll reads concurrently.
func WithParallelism(n int) StoreOptionFunc {
	return func(opts *storeOpts) {
		opts.parallelism = n
	}
}

// Store keeps named bit vectors as files in a directory.
type Store struct {
	dir  string
	opts storeOpts
}

// NewStore opens the store in dir, creating the directory if needed.
func NewStore(dir string, opts ...StoreOptionFunc) (*Store, error) {
	options := storeOpts{
		logger:      zap.NewNop(),
		maxBits:     config.DefaultMaxBits,
		parallelism: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.parallelism < 1 {
		return nil, fmt.Errorf("invalid parallelism; expected: >= 1, given: %d", options.parallelism)
	}

	if err := os.MkdirAll(dir, shared.OwnerReadWriteExec); err != nil {
		return nil, fmt.Errorf("dir creation failure: %w", err)
	}

	return &Store{dir: dir, opts: options}, nil
}

// NewStoreFromConfig opens the store described by cfg.
func NewStoreFromConfig(cfg *config.Config, opts ...StoreOptionFunc) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	all := []StoreOptionFunc{WithMaxBits(cfg.MaxBits)}
	if cfg.DisableSpaceChecks {
		all = append(all, WithoutSpaceChecks())
	}
	return NewStore(cfg.DataDir, append(all, opts...)...)
}

// Dir returns the directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

// Put stores v under name, replacing any previous vector of that name.
func (s *Store) Put(name string, v *bitvec.BitVec) error {
	if err := validateName(name); err != nil {
		return err
	}
	if uint64(v.Len()) > s.opts.maxBits {
		return fmt.Errorf("%w: %d bits, max %d", ErrTooLarge, v.Len(), s.opts.maxBits)
	}

	var w bytes.Buffer
	if err := Encode(&w, v); err != nil {
		return err
	}

	size := w.Len()
	if !s.opts.disableSpaceChecks {
		if err := shared.CheckSpace(s.dir, uint64(size)); err != nil {
			return err
		}
	}

	filename := Filename(s.dir, name)
	if err := writeFile(filename, &w); err != nil {
		return err
	}

	s.opts.logger.Debug("stored bit vector",
		zap.String("name", name),
		zap.Int("bits", v.Len()),
		zap.Int("size", size),
	)
	return nil
}

// Get loads the vector stored under name.
func (s *Store) Get(name string) (*bitvec.BitVec, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	v, err := Load(Filename(s.dir, name), s.opts.maxBits)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	s.opts.logger.Debug("loaded bit vector", zap.String("name", name), zap.Int("bits", v.Len()))
	return v, nil
}

// Delete removes the vector stored under name.
func (s *Store) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	err := os.Remove(Filename(s.dir, name))
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("delete %q: %w", name, ErrNotFound)
	case err != nil:
		return fmt.Errorf("delete %q: %w", name, err)
	}
	s.opts.logger.Debug("deleted bit vector", zap.String("name", name))
	return nil
}

// List returns the names of the stored vectors, ordered by name with numeric
// suffixes compared as numbers.
func (s *Store) List() ([]string, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("store directory not found: %w", err)
	}

	var names []string
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if name, ok := nameOf(file.Name()); ok {
			names = append(names, name)
		}
	}

	sort.Sort(numericalSorter(names))
	return names, nil
}

// Stat returns the length and file size of the vector stored under name,
// reading only the record header.
func (s *Store) Stat(name string) (*Info, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	filename := Filename(s.dir, name)
	h, err := readHeader(filename)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", name, err)
	}
	fi, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", name, err)
	}
	return &Info{Name: name, NumBits: h.NumBits, Size: fi.Size()}, nil
}

// LoadAll loads the named vectors concurrently. It fails on the first
// vector that can't be loaded.
func (s *Store) LoadAll(ctx context.Context, names []string) (map[string]*bitvec.BitVec, error) {
	loaded := make([]*bitvec.BitVec, len(names))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.opts.parallelism)
	for i, name := range names {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			v, err := s.Get(name)
			if err != nil {
				return err
			}
			loaded[i] = v
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]*bitvec.BitVec, len(names))
	for i, name := range names {
		result[name] = loaded[i]
	}
	return result, nil
}
