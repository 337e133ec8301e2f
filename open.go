package splitter

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/juju/ratelimit"
	"go.uber.org/multierr"
)

const ExtGZ = ".gz"

// OpenFile opens file for reading. Content of files having the .gz extension
// is transparently decompressed.
func OpenFile(file string) (io.ReadCloser, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}

	rc := readcloser{
		Reader: f,
		file:   file,
		closer: f,
	}
	if filepath.Ext(file) == ExtGZ {
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrCodec, file, err)
		}
		rc.Reader, rc.gz = z, z
	}
	return &rc, nil
}

type readcloser struct {
	io.Reader
	file   string
	gz     *gzip.Reader
	closer io.Closer
}

func (r *readcloser) Read(b []byte) (int, error) {
	n, err := r.Reader.Read(b)
	if err == nil || errors.Is(err, io.EOF) {
		return n, err
	}
	kind := ErrInput
	if r.gz != nil {
		kind = ErrCodec
	}
	return n, fmt.Errorf("%w: %s: %v", kind, r.file, err)
}

func (r *readcloser) Close() error {
	var err error
	if r.gz != nil {
		err = r.gz.Close()
	}
	return multierr.Append(err, r.closer.Close())
}

type WriteOptions struct {
	Gzip  bool
	Level int
	// Limit, when set, throttles the bytes written to disk. It can be shared
	// between files to bound their aggregated throughput.
	Limit *ratelimit.Bucket
}

// File is an output file, optionally gzip compressed.
type File struct {
	io.Writer

	name    string
	file    *os.File
	gz      *gzip.Writer
	counter *counter
}

func CreateFile(file string, opts WriteOptions) (*File, error) {
	if opts.Gzip && !validLevel(opts.Level) {
		return nil, fmt.Errorf("%w: %s: invalid compression level %d", ErrUsage, file, opts.Level)
	}
	w, err := os.Create(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutput, err)
	}
	f := File{
		name:    file,
		file:    w,
		counter: new(counter),
	}
	f.Writer = io.MultiWriter(w, f.counter)
	if opts.Limit != nil {
		f.Writer = ratelimit.Writer(f.Writer, opts.Limit)
	}
	if opts.Gzip {
		z, err := gzip.NewWriterLevel(f.Writer, opts.Level)
		if err != nil {
			w.Close()
			os.Remove(file)
			return nil, fmt.Errorf("%w: %s: %v", ErrUsage, file, err)
		}
		f.Writer, f.gz = z, z
	}
	return &f, nil
}

func (f *File) Write(b []byte) (int, error) {
	n, err := f.Writer.Write(b)
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrOutput, f.name, err)
	}
	return n, err
}

// Close flushes the gzip trailer, if any, before closing the underlying file.
func (f *File) Close() error {
	var err error
	if f.gz != nil {
		if e := f.gz.Close(); e != nil {
			err = fmt.Errorf("%w: %s: %v", ErrCodec, f.name, e)
		}
	}
	if e := f.file.Close(); e != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %s: %v", ErrOutput, f.name, e))
	}
	return err
}

func (f *File) Name() string {
	return f.name
}

// Size gives the number of bytes written to disk so far.
func (f *File) Size() int64 {
	return f.counter.size
}

func validLevel(level int) bool {
	return level >= gzip.HuffmanOnly && level <= gzip.BestCompression
}

type counter struct {
	size int64
}

func (c *counter) Write(b []byte) (int, error) {
	c.size += int64(len(b))
	return len(b), nil
}
