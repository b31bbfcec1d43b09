package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/google/renameio"
)

var (
	errStoreNotExists = errors.New("stream does not exist")
	errBufferClosed   = errors.New("write to closed buffer")
)

// store is a named stream that can be read, and replaced wholesale.
type store interface {
	open() (io.ReadCloser, error)
	replace() (cleanupWriteCloser, error)
}

// cleanupWriteCloser is a pending replacement: Close commits it, while
// Cleanup discards it if not yet committed.
type cleanupWriteCloser interface {
	io.WriteCloser
	Cleanup() error
}

func readStore(st store) (string, error) {
	r, err := st.open()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	_, err = io.Copy(&sb, r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	return sb.String(), err
}

func writeStore(st store, content string) error {
	w, err := st.replace()
	if err != nil {
		return err
	}
	defer w.Cleanup()
	if _, err := io.WriteString(w, content); err != nil {
		return err
	}
	return w.Close()
}

// pendingBuffer holds a replacement in memory until Close hands it to sink.
type pendingBuffer struct {
	buf    bytes.Buffer
	closed bool
	sink   func(string) error
}

func (pb *pendingBuffer) Write(p []byte) (int, error) {
	if pb.closed {
		return 0, errBufferClosed
	}
	return pb.buf.Write(p)
}

func (pb *pendingBuffer) Close() error {
	if !pb.closed {
		pb.closed = true
		return pb.sink(pb.buf.String())
	}
	return nil
}

func (pb *pendingBuffer) Cleanup() error {
	pb.closed = true
	return nil
}

// fsStore is a file, replaced atomically: readers see either the old
// content or the new, never a partial write.
type fsStore struct {
	filename string
}

func (fst fsStore) open() (io.ReadCloser, error) {
	f, err := os.Open(fst.filename)
	if os.IsNotExist(err) {
		return nil, errStoreNotExists
	}
	return f, err
}

func (fst fsStore) replace() (cleanupWriteCloser, error) {
	pf, err := renameio.TempFile("", fst.filename)
	if err != nil {
		return nil, err
	}
	return pendingFile{pf}, nil
}

type pendingFile struct {
	*renameio.PendingFile
}

func (pf pendingFile) Close() error { return pf.CloseAtomicallyReplace() }

// stdStore reads from stdin and writes to stdout, for the "-" file name.
type stdStore struct {
	in  io.Reader
	out io.Writer
}

func (ss stdStore) open() (io.ReadCloser, error) { return io.NopCloser(ss.in), nil }

func (ss stdStore) replace() (cleanupWriteCloser, error) {
	return &pendingBuffer{sink: func(s string) error {
		_, err := io.WriteString(ss.out, s)
		return err
	}}, nil
}
