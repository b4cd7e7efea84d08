package mcpserver

import (
	"context"
	"io"
	"os"
)

// stdioDialer implements jsonrpc2.Dialer for stdin/stdout communication.
// It uses an io.Pipe intermediary so that Close reliably interrupts a
// blocked read on all platforms (closing os.Stdin from another goroutine
// does not unblock a concurrent read on macOS).
type stdioDialer struct{}

func (stdioDialer) Dial(_ context.Context) (io.ReadWriteCloser, error) {
	pr, pw := io.Pipe()
	go io.Copy(pw, os.Stdin) //nolint:errcheck // exits when pipe or stdin closes
	return &stdioRWC{pr: pr, pw: pw}, nil
}

// stdioRWC reads from an io.Pipe (fed by os.Stdin) and writes to os.Stdout.
// stdout is reserved exclusively for JSON-RPC traffic; logs never touch it.
type stdioRWC struct {
	pr *io.PipeReader
	pw *io.PipeWriter
}

func (s *stdioRWC) Read(p []byte) (int, error)  { return s.pr.Read(p) }
func (s *stdioRWC) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (s *stdioRWC) Close() error {
	_ = s.pw.Close()
	return s.pr.Close()
}
