package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"

	"github.com/google/uuid"

	dberrors "github.com/leengari/minidb/internal/domain/errors"
	"github.com/leengari/minidb/internal/domain/schema"
	"github.com/leengari/minidb/internal/engine"
)

type Request struct {
	Query string `json:"query"`
}

// Response carries either a result or an error for one query
type Response struct {
	Result    *engine.Result `json:"result,omitempty"`
	Text      string         `json:"text,omitempty"` // formatted rendering of Result
	Error     string         `json:"error,omitempty"`
	ErrorKind string         `json:"error_kind,omitempty"`
}

// Start listens on port and serves connections until ctx is cancelled
func Start(ctx context.Context, port int, catalog *schema.Catalog) error {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", port, err)
	}

	slog.Info("Running on port", "port", port)
	return Serve(ctx, listener, catalog)
}

// Serve accepts connections on listener; every connection gets its own engine over the shared catalog
func Serve(ctx context.Context, listener net.Listener, catalog *schema.Catalog) error {
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			slog.Error("Failed to accept connection", "error", err)
			continue
		}
		go handleConnection(ctx, conn, catalog)
	}
}

func handleConnection(ctx context.Context, conn net.Conn, catalog *schema.Catalog) {
	defer conn.Close()

	session := uuid.NewString()
	logger := slog.Default().With("session", session, "remote", conn.RemoteAddr().String())
	logger.Info("Connection opened")
	defer logger.Info("Connection closed")

	// Unblock the decoder when the server shuts down
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	dbEngine := engine.New(catalog)
	dbEngine.AddObserver(engine.NewLoggingObserver(logger))
	dbEngine.AddObserver(engine.NewMetricsObserver())

	// Use Decoder instead of Scanner for network streams
	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		var req Request
		if err := decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return // Connection closed gracefully
			}
			if ctx.Err() != nil {
				return
			}
			logger.Error("decode error", "error", err)
			_ = encoder.Encode(&Response{Error: fmt.Sprintf("Invalid request format: %v", err)})
			return
		}

		query := strings.TrimSpace(req.Query)
		if query == "exit" || query == "\\q" {
			return
		}

		if err := encoder.Encode(execute(ctx, dbEngine, query)); err != nil {
			logger.Error("encode error", "error", err)
			return
		}
	}
}

func execute(ctx context.Context, eng *engine.Engine, query string) *Response {
	result, err := eng.ExecuteCommand(ctx, query)
	if err != nil {
		return &Response{Error: err.Error(), ErrorKind: dberrors.Kind(err)}
	}

	return &Response{Result: result, Text: result.Text()}
}
