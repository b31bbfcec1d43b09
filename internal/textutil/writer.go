// Package textutil provides buffered line writers for command output, and
// preview text helpers.
package textutil

import (
	"bytes"
	"fmt"
	"io"
)

// LineBuffer buffers writes bound for To, so that output can be released a
// whole line at a time:
//
// 	var buf LineBuffer
// 	buf.To = os.Stdout
// 	for _, lr := range res.Lines {
// 		fmt.Fprintf(&buf, "%v\n", lr.Marker)
// 		if err := buf.FlushLines(); err != nil {
// 			return err
// 		}
// 	}
// 	return buf.Flush()
type LineBuffer struct {
	bytes.Buffer
	To io.Writer
}

// Flush writes everything buffered, including any partial final line.
func (buf *LineBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// FlushLines writes buffered bytes through the last newline, keeping any
// partial line.
func (buf *LineBuffer) FlushLines() error {
	b := buf.Bytes()
	n := bytes.LastIndexByte(b, '\n') + 1
	if n == 0 {
		return nil
	}
	m, err := buf.To.Write(b[:n])
	buf.Next(m)
	return err
}

// atLineStart returns true if nothing is buffered, or the buffer ends a
// line.
func (buf *LineBuffer) atLineStart() bool {
	b := buf.Bytes()
	return len(b) == 0 || b[len(b)-1] == '\n'
}

// ErrWriter keeps the first error returned by Writer, after which every
// write fails with it. Callers can format many lines and check Err once.
type ErrWriter struct {
	io.Writer
	Err error
}

func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err != nil {
		return 0, ew.Err
	}
	n, ew.Err = ew.Writer.Write(p)
	return n, ew.Err
}

// Printf formats to the writer, dropping output after the first error.
func (ew *ErrWriter) Printf(format string, args ...interface{}) {
	if ew.Err == nil {
		fmt.Fprintf(ew, format, args...)
	}
}

// Prefixer prepends Prefix to every line written through it. Close flushes
// any partial final line.
type Prefixer struct {
	Prefix string

	// Skip suppresses the prefix on the first line, for output that
	// continues a line already started by the caller.
	Skip bool

	buf LineBuffer
}

// PrefixWriter returns a Prefixer writing to w.
func PrefixWriter(prefix string, w io.Writer) *Prefixer {
	p := &Prefixer{Prefix: prefix}
	p.buf.To = w
	return p
}

// Close flushes any buffered partial line.
func (p *Prefixer) Close() error { return p.buf.Flush() }

func (p *Prefixer) Write(b []byte) (n int, err error) {
	for len(b) > 0 {
		if p.buf.atLineStart() {
			if p.Skip {
				p.Skip = false
			} else {
				p.buf.WriteString(p.Prefix)
			}
		}
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = b[:i+1]
		}
		b = b[len(line):]
		m, _ := p.buf.Write(line)
		n += m
		if err := p.buf.FlushLines(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// WriteLines calls next with a buffered writer until it returns false or a
// write fails, releasing complete lines after every call. The flush function
// passed to next also releases any partial line.
func WriteLines(to io.Writer, next func(w io.Writer, flush func()) bool) error {
	ew, _ := to.(*ErrWriter)
	if ew == nil {
		ew = &ErrWriter{Writer: to}
	}
	buf := LineBuffer{To: ew}
	for ew.Err == nil && next(&buf, func() { buf.Flush() }) {
		buf.FlushLines()
	}
	buf.Flush()
	return ew.Err
}
