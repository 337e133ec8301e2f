package trace

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/busoc/splitter"
)

type Tracer struct {
	logger *log.Logger

	err     uint64
	files   uint64
	devices uint64
	size    int64
	when    time.Time
}

func New(name string, w io.Writer) *Tracer {
	name = fmt.Sprintf("[%s] ", name)
	t := Tracer{
		logger: log.New(w, name, log.LstdFlags),
		when:   time.Now(),
	}
	return &t
}

func (t *Tracer) Start(file, dir string, count int) {
	t.when = time.Now()
	t.Trace("start splitting %s into %d files (output directory: %s)", file, count, dir)
}

func (t *Tracer) Done(r splitter.Result) {
	t.files++
	t.devices += uint64(r.Devices)
	t.size += r.Size
	t.Trace("done writing %s (%d devices - %d bytes)", r.File, r.Devices, r.Size)
}

func (t *Tracer) Error(file string, err error) {
	t.err++
	t.Trace("error while splitting %s: %s", file, err)
}

func (t *Tracer) Summarize() {
	elapsed := time.Since(t.when)
	t.Trace("%d files written (%s - %d devices - %d bytes - %d errors)", t.files, elapsed, t.devices, t.size, t.err)
}

func (t *Tracer) Trace(msg string, args ...interface{}) {
	t.logger.Printf(msg, args...)
}
