package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/busoc/splitter"
	"github.com/busoc/splitter/cmd/internal/trace"
	"github.com/midbel/cli"
	"github.com/midbel/wip"
)

const usage = `splitter [options] <wurfl.xml[.gz]>

split a wurfl catalog into a base file (wurfl.xml) and patch files
(wurfl_patch_<n>.xml).

options:

  -n, -nfiles      number of files to produce (default: 24)
  -o, -output-dir  directory where files are written (default: temp directory)
  -z, -gzip        compress output files
  -c, -config      load settings from a toml file
  -l, -level       gzip compression level
  -j, -jobs        number of files written concurrently
  -r, -rate        maximum number of bytes written per second
  -q, -quiet       suppress trace messages
  -p, -progress    show a progress bar instead of trace messages
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the splitter with args and gives the exit status: 0 on success,
// 1 for usage errors and 2 for any other failure.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := cli.Command{
		Usage: "splitter [options] <wurfl.xml[.gz]>",
		Short: "split a wurfl catalog into a base file and patch files",
		Run: func(cmd *cli.Command, args []string) error {
			return runSplit(cmd, args, stdout)
		},
	}
	cmd.Flag.Init("splitter", flag.ContinueOnError)
	cmd.Flag.SetOutput(io.Discard)
	if err := cmd.Run(&cmd, args); err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, splitter.ErrUsage) {
			fmt.Fprint(stderr, usage)
			return 1
		}
		return 2
	}
	return 0
}

func runSplit(cmd *cli.Command, args []string, stdout io.Writer) error {
	opts, err := parseOptions(&cmd.Flag, args)
	if err != nil {
		return err
	}
	s, err := splitter.New(opts.Config)
	if err != nil {
		return err
	}

	var (
		out   = stdout
		bar   *wip.Bar
		count int64
	)
	if opts.Quiet || opts.Progress {
		out = io.Discard
	}
	if opts.Progress {
		bar = wip.Default(filepath.Base(opts.File), int64(s.Files))
	}
	tracer := trace.New(cmd.Flag.Name(), out)
	tracer.Start(opts.File, s.Dir, s.Files)
	defer tracer.Summarize()

	_, err = s.Split(opts.File, func(r splitter.Result) {
		tracer.Done(r)
		if bar != nil {
			count++
			bar.Update(count)
		}
	})
	if err != nil {
		tracer.Error(opts.File, err)
	}
	return err
}

type options struct {
	splitter.Config

	File     string
	Settings string
	Quiet    bool
	Progress bool
}

// parseOptions gives precedence to the flags explicitly set on the command
// line over the settings of the config file, if any.
func parseOptions(set *flag.FlagSet, args []string) (options, error) {
	opts := options{
		Config: splitter.Default(),
	}
	set.IntVar(&opts.Files, "n", opts.Files, "number of files")
	set.IntVar(&opts.Files, "nfiles", opts.Files, "number of files")
	set.StringVar(&opts.Dir, "o", opts.Dir, "output directory")
	set.StringVar(&opts.Dir, "output-dir", opts.Dir, "output directory")
	set.BoolVar(&opts.Gzip, "z", opts.Gzip, "gzip")
	set.BoolVar(&opts.Gzip, "gzip", opts.Gzip, "gzip")
	set.StringVar(&opts.Settings, "c", "", "config")
	set.StringVar(&opts.Settings, "config", "", "config")
	set.IntVar(&opts.Level, "l", opts.Level, "compression level")
	set.IntVar(&opts.Level, "level", opts.Level, "compression level")
	set.IntVar(&opts.Jobs, "j", opts.Jobs, "jobs")
	set.IntVar(&opts.Jobs, "jobs", opts.Jobs, "jobs")
	set.Int64Var(&opts.Rate, "r", opts.Rate, "rate")
	set.Int64Var(&opts.Rate, "rate", opts.Rate, "rate")
	set.BoolVar(&opts.Quiet, "q", false, "quiet")
	set.BoolVar(&opts.Quiet, "quiet", false, "quiet")
	set.BoolVar(&opts.Progress, "p", false, "progress")
	set.BoolVar(&opts.Progress, "progress", false, "progress")

	if err := set.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %v", splitter.ErrUsage, err)
	}
	switch set.NArg() {
	case 0:
		return opts, fmt.Errorf("%w: missing wurfl catalog file", splitter.ErrUsage)
	case 1:
		opts.File = set.Arg(0)
	default:
		return opts, fmt.Errorf("%w: too many arguments given (%d)", splitter.ErrUsage, set.NArg())
	}
	if opts.Settings == "" {
		return opts, opts.Validate()
	}

	cfg, err := splitter.LoadConfig(opts.Settings)
	if err != nil {
		return opts, err
	}
	set.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n", "nfiles":
			cfg.Files = opts.Files
		case "o", "output-dir":
			cfg.Dir = opts.Dir
		case "z", "gzip":
			cfg.Gzip = opts.Gzip
		case "l", "level":
			cfg.Level = opts.Level
		case "j", "jobs":
			cfg.Jobs = opts.Jobs
		case "r", "rate":
			cfg.Rate = opts.Rate
		}
	})
	opts.Config = cfg
	return opts, opts.Validate()
}
