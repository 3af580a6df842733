package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Timeouts applied to every listener of the service. The intake payload is a
// small JSON document, so reads and writes are bounded tightly.
const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// listener owns one net/http server and logs its lifecycle under name.
type listener struct {
	name   string
	srv    *http.Server
	logger *slog.Logger
}

func newListener(name, host string, port int, logger *slog.Logger) *listener {
	return &listener{
		name: name,
		srv: &http.Server{
			Addr:         net.JoinHostPort(host, strconv.Itoa(port)),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		logger: logger,
	}
}

// serve blocks until the listener is shut down. A shutdown is not an error.
func (l *listener) serve(handler http.Handler) error {
	l.srv.Handler = handler
	l.logger.Info("starting "+l.name, slog.String("addr", l.srv.Addr))

	if err := l.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s: %w", l.name, err)
	}
	return nil
}

func (l *listener) shutdown(ctx context.Context) error {
	l.logger.Info("shutting down " + l.name)
	return l.srv.Shutdown(ctx)
}
