package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pawhaven/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeService struct {
	name     string
	startErr error
	stopped  chan struct{}
	once     sync.Once
}

func newFakeService(name string, startErr error) *fakeService {
	return &fakeService{name: name, startErr: startErr, stopped: make(chan struct{})}
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	select {
	case <-ctx.Done():
	case <-s.stopped:
	}
	return nil
}

func (s *fakeService) Stop(context.Context) error {
	s.once.Do(func() { close(s.stopped) })
	return nil
}

func TestRunnerStopsOnContextCancel(t *testing.T) {
	svc := newFakeService("api", nil)
	runner := NewRunner(svc)
	var order []string
	runner.OnShutdown("database", func() error {
		order = append(order, "database")
		return nil
	})
	runner.OnShutdown("container", func() error {
		order = append(order, "container")
		return errors.New("already closed")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, time.Second, nil) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
	assert.Equal(t, []string{"container", "database"}, order)
}

func TestRunnerReturnsStartError(t *testing.T) {
	boom := errors.New("listen failed")
	healthy := newFakeService("worker", nil)
	runner := NewRunner(newFakeService("api", boom), healthy)

	err := runner.Run(context.Background(), time.Second, nil)
	assert.ErrorIs(t, err, boom)
	select {
	case <-healthy.stopped:
	default:
		t.Fatal("healthy service was not stopped")
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	assert.Error(t, NewRunner().Run(context.Background(), time.Second, nil))
	assert.Error(t, RunWithOptions(nil, Options{}))
}

func TestBuildRunnerRejectsUnknownMode(t *testing.T) {
	_, err := BuildRunner(&config.Config{}, nil, "cron")
	assert.ErrorContains(t, err, "unknown mode")
}

func TestNormalizeOptions(t *testing.T) {
	opts := normalizeOptions(Options{})
	assert.Equal(t, ModeAll, opts.Mode)
	assert.Equal(t, 10*time.Second, opts.ShutdownTimeout)
	assert.NotNil(t, opts.Logger)
}
