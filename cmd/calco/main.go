package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"

	"github.com/zephyrtronium/calco"
	"github.com/zephyrtronium/calco/grammar"
	"github.com/zephyrtronium/calco/internal/config"
	"github.com/zephyrtronium/calco/internal/logging"
)

const version = "0.1.0"

// Exit statuses.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFail)
	}
	c := cli{
		stdout: os.Stdout,
		stderr: os.Stderr,
		fs:     osfs.New("/"),
		dir:    wd,
		getenv: os.Getenv,
	}
	os.Exit(c.main(os.Args[1:]))
}

// cli holds the command's environment.
type cli struct {
	stdout io.Writer
	stderr io.Writer
	// fs is rooted at /; relative paths are resolved against dir.
	fs     billy.Filesystem
	dir    string
	getenv func(string) string

	conf config.Config
	log  *slog.Logger
}

func (c *cli) main(args []string) int {
	var (
		confname, level, format string
	)
	fl := flag.NewFlagSet("calco", flag.ContinueOnError)
	fl.SetOutput(c.stderr)
	fl.StringVar(&confname, "config", "calco.yaml", "configuration file (optional)")
	fl.StringVar(&level, "log-level", "", "log level: debug, info, warn, error")
	fl.StringVar(&format, "log-format", "", "log format: text or json")
	fl.Usage = func() {
		fmt.Fprintln(fl.Output(), "usage: calco [flags] run|tokens|grammar|version [args]")
		fl.PrintDefaults()
	}
	if err := fl.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	conf, err := config.Load(c.fs, c.path(confname), c.getenv)
	if err != nil {
		fmt.Fprintln(c.stderr, "calco:", err)
		return exitUsage
	}
	if level != "" {
		conf.Log.Level = level
	}
	if format != "" {
		conf.Log.Format = format
	}
	if err := conf.Validate(); err != nil {
		fmt.Fprintln(c.stderr, "calco:", err)
		return exitUsage
	}
	c.conf = conf
	c.log = logging.New(c.stderr, logging.Config{Level: conf.Log.Level, Format: conf.Log.Format})

	if fl.NArg() == 0 {
		fmt.Fprintln(c.stderr, "calco: no subcommand was provided")
		fl.Usage()
		return exitUsage
	}
	sub, rest := fl.Arg(0), fl.Args()[1:]
	switch sub {
	case "run":
		return c.run(rest)
	case "tokens":
		return c.tokens(rest)
	case "grammar":
		fmt.Fprintln(c.stdout, grammar.EBNF())
		return exitOK
	case "version":
		fmt.Fprintln(c.stdout, version)
		return exitOK
	default:
		fmt.Fprintf(c.stderr, "calco: cannot recognize %s as an available subcommand\n", sub)
		return exitUsage
	}
}

// path resolves a file name against the working directory.
func (c *cli) path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.dir, name)
}

func (c *cli) run(args []string) int {
	var (
		src, file              string
		lines, echo, parsetree bool
	)
	fl := flag.NewFlagSet("run", flag.ContinueOnError)
	fl.SetOutput(c.stderr)
	fl.StringVar(&src, "x", "", "source to execute")
	fl.StringVar(&src, "execute", "", "source to execute (same as -x)")
	fl.StringVar(&file, "f", "", "file containing the source to execute")
	fl.BoolVar(&lines, "lines", false, "evaluate separate lines as separate sources")
	fl.BoolVar(&echo, "echo", false, "print expression trees")
	fl.BoolVar(&parsetree, "parse-tree", false, "print parse trees")
	if err := fl.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	// An empty -x is a valid source; only the presence of the flags counts.
	set := make(map[string]bool)
	fl.Visit(func(f *flag.Flag) { set[f.Name] = true })
	fromfile := set["f"]
	if (set["x"] || set["execute"]) == fromfile {
		fmt.Fprintln(c.stderr, "calco run: exactly one of -x or -f is required")
		return exitUsage
	}

	var opts []calco.ParseOption
	if fromfile {
		b, err := util.ReadFile(c.fs, c.path(file))
		if err != nil {
			fmt.Fprintln(c.stderr, "calco run:", err)
			return exitFail
		}
		src = string(b)
		opts = append(opts, calco.Filename(file))
	} else {
		// The shell hands over negative numbers as they are; give them a left
		// operand.
		opts = append(opts, calco.ZeroPrefixDash())
	}

	srcs := []string{src}
	if lines {
		srcs = srcs[:0]
		for _, l := range strings.Split(src, "\n") {
			if strings.TrimSpace(l) != "" {
				srcs = append(srcs, l)
			}
		}
	}
	status := exitOK
	for _, s := range srcs {
		if !c.eval(s, opts, echo, parsetree) {
			status = exitFail
		}
	}
	return status
}

// eval evaluates one source and prints its result or error. It reports
// whether evaluation succeeded.
func (c *cli) eval(src string, opts []calco.ParseOption, echo, parsetree bool) bool {
	log := c.log.With(slog.String("run", uuid.NewString()))
	log.Debug("parsing", slog.String("source", src))
	g, err := calco.ParseTree(src, opts...)
	if err != nil {
		log.Debug("parse failed", slog.Any("err", err))
		printError(c.stdout, c.conf.Color, message(err))
		return false
	}
	if parsetree {
		fmt.Fprintln(c.stdout, repr.String(g, repr.Indent("  "), repr.OmitEmpty(true)))
	}
	p := calco.Lower(g)
	log.Debug("parsed", slog.Int("exprs", len(p.Exprs)))
	if echo {
		fmt.Fprintln(c.stdout, p)
	}
	r, err := p.Eval()
	if err != nil {
		log.Debug("evaluation failed", slog.Any("err", err))
		printError(c.stdout, c.conf.Color, message(err))
		return false
	}
	log.Debug("evaluated", slog.Float64("result", r))
	success(c.stdout, r)
	return true
}

func (c *cli) tokens(args []string) int {
	var src string
	fl := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fl.SetOutput(c.stderr)
	fl.StringVar(&src, "x", "", "source to scan")
	if err := fl.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	toks, err := grammar.Tokenize("", src)
	for _, tok := range toks {
		fmt.Fprintln(c.stdout, tok)
	}
	if err != nil {
		printError(c.stdout, c.conf.Color, err.Error())
		return exitFail
	}
	return exitOK
}
