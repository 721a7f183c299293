package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	calls *[]string
	err   error
}

func (f *fakeServer) ListenAndServe() error { return http.ErrServerClosed }

func (f *fakeServer) Shutdown(context.Context) error {
	*f.calls = append(*f.calls, "shutdown")
	return f.err
}

func TestShutdownDrainsServerBeforeCleanup(t *testing.T) {
	var calls []string
	a := &App{
		server: &fakeServer{calls: &calls},
		cleanupFuncs: []func(){
			func() { calls = append(calls, "cleanup") },
		},
	}

	require.NoError(t, a.shutdown())
	assert.Equal(t, []string{"shutdown", "cleanup"}, calls)
}

func TestShutdownStillRunsCleanupOnError(t *testing.T) {
	var calls []string
	a := &App{
		server: &fakeServer{calls: &calls, err: context.DeadlineExceeded},
		cleanupFuncs: []func(){
			func() { calls = append(calls, "cleanup") },
		},
	}

	err := a.shutdown()
	assert.Error(t, err)
	assert.Equal(t, []string{"shutdown", "cleanup"}, calls)
}
