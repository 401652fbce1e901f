// Package server runs the HTTP API and tears down its dependencies on exit.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

const (
	readTimeout       = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// Hook releases one dependency during shutdown.
type Hook struct {
	Name  string
	Close func(ctx context.Context) error
}

type Server struct {
	Handler http.Handler
	server  *http.Server

	mu    sync.Mutex
	hooks []Hook
}

func New(handler http.Handler) *Server {
	return &Server{Handler: handler}
}

// OnShutdown registers fn to run after the listener stops. Hooks run in
// reverse registration order.
func (svr *Server) OnShutdown(name string, fn func(ctx context.Context) error) {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	svr.hooks = append(svr.hooks, Hook{Name: name, Close: fn})
}

func (svr *Server) httpServer(addr string) *http.Server {
	svr.mu.Lock()
	defer svr.mu.Unlock()
	if svr.server == nil {
		svr.server = &http.Server{
			Addr:              addr,
			Handler:           svr.Handler,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		}
	}
	return svr.server
}

// Run blocks until the server stops. A graceful Shutdown makes it return nil.
func (svr *Server) Run(addr string) error {
	err := svr.httpServer(addr).ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Serve is Run on an existing listener.
func (svr *Server) Serve(l net.Listener) error {
	err := svr.httpServer(l.Addr().String()).Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests, then runs every hook even when an
// earlier step fails. All failures come back as one error.
func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var result *multierror.Error
	svr.mu.Lock()
	srv, hooks := svr.server, svr.hooks
	svr.mu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			result = multierror.Append(result, err)
		}
	}
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		if err := hook.Close(ctx); err != nil {
			logrus.WithError(err).WithField("hook", hook.Name).Error("shutdown hook failed")
			result = multierror.Append(result, err)
			continue
		}
		logrus.WithField("hook", hook.Name).Debug("shutdown hook done")
	}
	return result.ErrorOrNil()
}
