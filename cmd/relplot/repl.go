package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/relplot"
)

const prompt = "relplot> "

func repl(conf *config, p printer) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := conf.historyPath()
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(hist)
			if err != nil {
				slog.Warn("couldn't save history", "path", hist, "err", err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, liner.ErrPromptAborted) {
				slog.Error("reading input", "err", err)
			}
			fmt.Println()
			return
		}
		src := strings.TrimSpace(line)
		switch src {
		case "":
			continue
		case ":quit", ":q":
			return
		}
		ln.AppendHistory(src)
		if err := p.line(os.Stdout, src); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// line handles one line of interactive input. Relations print their
// structure; constant expressions print their value.
func (p printer) line(w io.Writer, src string) error {
	err := p.relation(w, src)
	if err == nil {
		return nil
	}
	t, e, xerr := relplot.ParseExpr(src, p.opts...)
	if xerr != nil {
		// Report the relation error, since that is the usual intent.
		return err
	}
	v, ok := t.Eval(e)
	if !ok {
		fmt.Fprintf(w, "%s : not constant in %v\n", t.DumpStructure(e), t.Vars(e))
		return nil
	}
	fmt.Fprintln(w, formatValue(v))
	return nil
}
