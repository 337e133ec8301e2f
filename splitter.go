package splitter

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/beevik/etree"
	"github.com/juju/ratelimit"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DoneFunc is called once for each written file. Calls never overlap.
type DoneFunc func(Result)

type Splitter struct {
	Config
	limit *ratelimit.Bucket
}

func New(cfg Config) (*Splitter, error) {
	if cfg.Dir == "" {
		cfg.Dir = os.TempDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := Splitter{Config: cfg}
	if cfg.Rate > 0 {
		s.limit = ratelimit.NewBucketWithRate(float64(cfg.Rate), cfg.Rate)
	}
	return &s, nil
}

// Split reads the catalog in file and writes its devices into the base and
// patch files of the output directory. Results are ordered by file index.
//
// Split stops at the first error. Files already written are left in place.
func (s *Splitter) Split(file string, done DoneFunc) ([]Result, error) {
	if done == nil {
		done = func(_ Result) {}
	}
	cat, err := ReadCatalog(file)
	if err != nil {
		return nil, err
	}
	generic, rest := Isolate(cat.Devices())
	slices, err := Partition(rest, s.Files)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutput, err)
	}
	if s.Jobs <= 1 {
		return s.emitSequential(generic, slices, done)
	}
	return s.emitParallel(generic, slices, done)
}

func (s *Splitter) options() WriteOptions {
	return WriteOptions{
		Gzip:  s.Gzip,
		Level: s.Level,
		Limit: s.limit,
	}
}

func (s *Splitter) emitSequential(generic *etree.Element, slices [][]*etree.Element, done DoneFunc) ([]Result, error) {
	rs := make([]Result, 0, len(slices))
	for i := range slices {
		r, err := emit(s.Dir, i, generic, slices[i], s.options())
		if err != nil {
			return rs, err
		}
		rs = append(rs, r)
		done(r)
	}
	return rs, nil
}

func (s *Splitter) emitParallel(generic *etree.Element, slices [][]*etree.Element, done DoneFunc) ([]Result, error) {
	var (
		rs       = make([]Result, len(slices))
		sema     = semaphore.NewWeighted(int64(s.Jobs))
		grp, ctx = errgroup.WithContext(context.Background())
		mu       sync.Mutex
	)
	for i := range slices {
		if err := sema.Acquire(ctx, 1); err != nil {
			break
		}
		i := i
		grp.Go(func() error {
			defer sema.Release(1)
			r, err := emit(s.Dir, i, generic, slices[i], s.options())
			if err != nil {
				return err
			}
			rs[i] = r

			mu.Lock()
			defer mu.Unlock()
			done(r)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return rs, nil
}
