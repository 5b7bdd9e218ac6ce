package mock

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// lineReader yields newline-delimited lines of any length. A final line
// without a trailing newline is still returned before io.EOF.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

func (l *lineReader) ReadLine() ([]byte, error) {
	line, err := l.r.ReadBytes('\n')
	if len(line) > 0 {
		return bytes.TrimRight(line, "\r\n"), nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

// lineWriter writes one JSON document per line and flushes after each, so a
// reader blocked on the other end of a pipe sees every reply immediately.
type lineWriter struct {
	w *bufio.Writer
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{w: bufio.NewWriter(w)}
}

func (l *lineWriter) WriteLine(data []byte) error {
	if bytes.IndexByte(data, '\n') >= 0 {
		return errors.New("line contains a newline")
	}
	if _, err := l.w.Write(data); err != nil {
		return err
	}
	if err := l.w.WriteByte('\n'); err != nil {
		return err
	}
	return l.w.Flush()
}
