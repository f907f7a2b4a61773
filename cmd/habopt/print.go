package main

import (
	"fmt"
	"io"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
)

// printer writes the report sections, optionally with ANSI color on the
// section headers. Report bodies stay plain so they can be piped anywhere.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer, color bool) *printer {
	return &printer{w: w, color: color}
}

func (p *printer) header(title string) {
	if p.color {
		fmt.Fprintf(p.w, "\n%s%s== %s ==%s\n", ansiBold, ansiCyan, title, ansiReset)
		return
	}
	fmt.Fprintf(p.w, "\n== %s ==\n", title)
}

func (p *printer) block(text string) {
	fmt.Fprintln(p.w, text)
}
