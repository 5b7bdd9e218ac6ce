package mock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/davebream/mcpmock/internal/protocol"
	"github.com/google/uuid"
)

// maxLoggedLine bounds how much of a rejected line ends up in the diagnostic log.
const maxLoggedLine = 256

// Stats counts what happened to the lines of one Serve run.
type Stats struct {
	Lines         int
	Replied       int
	Notifications int
	Skipped       int
}

// Server runs the dispatcher over a pair of line streams.
type Server struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewServer creates a server for the given catalog. A nil logger keeps the
// server completely silent apart from its protocol output.
func NewServer(catalog *Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		dispatcher: NewDispatcher(catalog, logger),
		logger:     logger,
	}
}

// Serve answers requests read from r on w, strictly one line at a time, until
// r is exhausted. Lines that cannot be decoded or processed are dropped
// without a reply. Only a failure to read r or write w ends Serve early.
// ctx is checked between lines; a blocked read is not interrupted.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	logger := s.logger.With("session", uuid.New().String())
	reader := newLineReader(r)
	writer := newLineWriter(w)
	var stats Stats

	logger.Info("serve started", "protocol", protocol.MCPVersion)

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("serve cancelled", "lines", stats.Lines, "replied", stats.Replied)
			return stats, err
		}

		line, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			logger.Info("serve finished", "lines", stats.Lines, "replied", stats.Replied,
				"notifications", stats.Notifications, "skipped", stats.Skipped)
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("read request: %w", err)
		}
		stats.Lines++

		data, method, err := s.handleLine(line)
		if err != nil {
			stats.Skipped++
			logger.Debug("skipping line", "line", truncate(line), "error", err)
			continue
		}
		if data == nil {
			stats.Notifications++
			logger.Debug("notification received", "method", method)
			continue
		}

		if err := writer.WriteLine(data); err != nil {
			return stats, fmt.Errorf("write response: %w", err)
		}
		stats.Replied++
		logger.Debug("request answered", "method", method)
	}
}

// handleLine turns one input line into the encoded reply, or nil data for a
// notification. Any fault, including a panic, comes back as an error.
func (s *Server) handleLine(line []byte) (data []byte, method string, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = fmt.Errorf("panic while handling request: %v", r)
		}
	}()

	req, err := protocol.ParseRequest(line)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.dispatcher.Dispatch(req)
	if err != nil {
		return nil, req.Method, err
	}
	if resp == nil {
		return nil, req.Method, nil
	}
	data, err = resp.Serialize()
	if err != nil {
		return nil, req.Method, err
	}
	return data, req.Method, nil
}

func truncate(line []byte) string {
	if len(line) <= maxLoggedLine {
		return string(line)
	}
	return string(line[:maxLoggedLine]) + "..."
}
