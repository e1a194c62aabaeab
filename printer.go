package vtengine

import (
	"bytes"
	"os/exec"
)

// PrinterSink receives the bytes captured between "CSI 5 i" and "CSI 4 i"
// (media copy, §4.4). Write returning an error disables nothing on its own;
// the Window logs the failure, stops sending to that sink, and keeps
// parsing, it never aborts the stream.
type PrinterSink interface {
	Write(data []byte) error
}

// NoopPrinterSink discards media-copy output. It is the default sink so a
// Window works without any external process wired in.
type NoopPrinterSink struct{}

// Write discards data and always succeeds.
func (NoopPrinterSink) Write(data []byte) error { return nil }

// CommandPrinterSink pipes media-copy output to an external command's
// stdin, e.g. a real lp(1) pipeline, the way Config.PrintCmd names one.
type CommandPrinterSink struct {
	Command string
	Args    []string
}

// NewCommandPrinterSink creates a sink that runs command with args and
// writes captured bytes to its stdin each time the printer closes.
func NewCommandPrinterSink(command string, args ...string) *CommandPrinterSink {
	return &CommandPrinterSink{Command: command, Args: args}
}

// Write runs the configured command once per call, piping data to its
// stdin and discarding its stdout.
func (s *CommandPrinterSink) Write(data []byte) error {
	if s.Command == "" {
		return nil
	}
	cmd := exec.Command(s.Command, s.Args...)
	cmd.Stdin = bytes.NewReader(data)
	return cmd.Run()
}

// BufferPrinterSink accumulates every media-copy buffer it receives, useful
// for tests and for programs that want to inspect output after the fact
// instead of piping it live.
type BufferPrinterSink struct {
	Buffers [][]byte
}

// Write appends a copy of data to Buffers.
func (s *BufferPrinterSink) Write(data []byte) error {
	s.Buffers = append(s.Buffers, append([]byte(nil), data...))
	return nil
}
