// EstateIQ - Real Estate Valuation, Recommendation, and Geo Search Analytics
// Copyright 2026 The EstateIQ Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/estateiq/estateiq

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

// mockHTTPServer implements HTTPServer for testing.
type mockHTTPServer struct {
	listenErr    error
	shutdownErr  error
	listenCalled chan struct{}
	shutdown     chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		listenCalled: make(chan struct{}),
		shutdown:     make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	close(m.listenCalled)
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.shutdown
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(ctx context.Context) error {
	close(m.shutdown)
	return m.shutdownErr
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	server := newMockHTTPServer()
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Serve(ctx)
	}()

	select {
	case <-server.listenCalled:
	case <-time.After(time.Second):
		t.Fatal("ListenAndServe was never called")
	}

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestHTTPServerServiceListenFailure(t *testing.T) {
	server := newMockHTTPServer()
	server.listenErr = errors.New("address already in use")
	svc := NewHTTPServerService(server, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, server.listenErr) {
		t.Errorf("Serve returned %v, want wrapped listen error", err)
	}
}

func TestHTTPServerServiceDefaults(t *testing.T) {
	svc := NewHTTPServerService(newMockHTTPServer(), 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want 10s default", svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}

type mockPinger struct {
	err   error
	pings chan struct{}
}

func (m *mockPinger) Ping(ctx context.Context) error {
	select {
	case m.pings <- struct{}{}:
	default:
	}
	return m.err
}

func TestDBPingServiceStopsOnCancel(t *testing.T) {
	pinger := &mockPinger{pings: make(chan struct{}, 1)}
	svc := NewDBPingService(pinger, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Serve(ctx)
	}()

	select {
	case <-pinger.pings:
	case <-time.After(time.Second):
		t.Fatal("service never pinged")
	}

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestDBPingServiceFailsOnPingError(t *testing.T) {
	pinger := &mockPinger{err: errors.New("connection lost"), pings: make(chan struct{}, 1)}
	svc := NewDBPingService(pinger, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- svc.Serve(context.Background())
	}()

	select {
	case err := <-done:
		if err == nil || !errors.Is(err, pinger.err) {
			t.Errorf("Serve returned %v, want wrapped ping error", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not surface the ping failure")
	}
}
