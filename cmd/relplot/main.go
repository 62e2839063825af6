package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/zephyrtronium/relplot"
)

func main() {
	log.SetFlags(0)
	var (
		inname, confname, level     string
		nl, echo, fold, interactive bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&confname, "config", "", "YAML configuration file")
	flag.StringVar(&level, "log", "", "log level (debug, info, warn, error)")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate relations")
	flag.BoolVar(&echo, "echo", false, "print each relation's source before its structure")
	flag.BoolVar(&fold, "fold", false, "evaluate constant sub-expressions")
	flag.BoolVar(&interactive, "i", false, "start an interactive session")
	flag.Parse()

	conf, err := loadConfig(confname)
	if err != nil {
		log.Fatal(err)
	}
	if level != "" {
		conf.Logging.LogLevel = level
	}
	slog.SetDefault(initLogger(conf.Logging))
	opts, err := conf.parseOptions()
	if err != nil {
		log.Fatal(err)
	}
	p := printer{echo: echo, fold: fold, opts: opts}

	if interactive {
		repl(&conf, p)
		return
	}

	srcs, err := readInput(inname, flag.NArg() == 0, nl)
	if err != nil {
		log.Fatal(err)
	}
	srcs = append(srcs, flag.Args()...)

	failed := 0
	for _, src := range srcs {
		if err := p.relation(os.Stdout, src); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed++
		}
	}
	if failed != 0 {
		slog.Warn("some relations failed to parse", "failed", failed, "total", len(srcs))
		os.Exit(1)
	}
}

// readInput reads the relation sources named by inname, or standard input
// if inname is "-" or std is set.
func readInput(inname string, std, nl bool) ([]string, error) {
	in, err := infile(inname, std)
	if err != nil || in == nil {
		return nil, err
	}
	defer in.Close()
	b, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	return splitInput(string(b), nl), nil
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		return f, nil
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}

// splitInput divides file contents into relation sources. With nl, each
// non-blank line is a relation. Otherwise the whole input is one.
func splitInput(s string, nl bool) []string {
	if !nl {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return []string{s}
	}
	var r []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			r = append(r, line)
		}
	}
	return r
}

type printer struct {
	echo, fold bool
	opts       []relplot.ParseOption
}

// relation parses src and writes its structure to w.
func (p printer) relation(w io.Writer, src string) error {
	start := time.Now()
	r, err := relplot.Parse(src, p.opts...)
	if err != nil {
		return err
	}
	slog.Debug("parsed relation", "nodes", r.Tree.Len(), "vars", r.Vars().String(), "elapsed", time.Since(start))
	if p.echo {
		fmt.Fprintf(w, "%s : ", strings.TrimSpace(src))
	}
	fmt.Fprintln(w, r.DumpStructure())
	if p.fold {
		foldConstants(w, r.Tree)
	}
	return nil
}

// foldConstants writes the value of every maximal constant sub-expression
// of t that is not already a literal.
func foldConstants(w io.Writer, t *relplot.Tree) {
	vals := make([]*relplot.Value, t.Len())
	covered := make([]bool, t.Len())
	for i := range vals {
		e := relplot.ExprID(i)
		n := t.Node(e)
		if n.Kind == relplot.KindConstant {
			continue
		}
		if v, ok := t.Eval(e); ok {
			vals[i] = &v
			for _, x := range operands(n) {
				covered[x] = true
				// Elements of a list argument are covered too.
				for _, y := range operands(t.Node(x)) {
					covered[y] = true
				}
			}
		}
	}
	for i, v := range vals {
		if v == nil || covered[i] {
			continue
		}
		fmt.Fprintf(w, "\t%s = %s\n", t.DumpStructure(relplot.ExprID(i)), formatValue(*v))
	}
}

func operands(n *relplot.Node) []relplot.ExprID {
	switch n.Kind {
	case relplot.KindUnary, relplot.KindPown, relplot.KindRootn:
		return []relplot.ExprID{n.X}
	case relplot.KindBinary:
		return []relplot.ExprID{n.X, n.Y}
	case relplot.KindList:
		return n.List
	}
	return nil
}

func formatValue(v relplot.Value) string {
	if v.Q != nil {
		return v.Q.RatString() + " in " + v.X.String()
	}
	return v.X.String()
}
