package proofing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuntimeConcurrentInitLoadsOnce(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int64
	rt := NewRuntime(func(ctx context.Context) (CMM, error) {
		calls.Add(1)
		<-release
		return &fakeCMM{}, nil
	})

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = rt.Init(context.Background())
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, 1, rt.Loads())

	require.NoError(t, rt.Init(context.Background()))
	assert.Equal(t, 1, rt.Loads(), "Init after success must not reload")
}

func TestRuntimeFailureIsSharedAndRetried(t *testing.T) {
	var calls atomic.Int64
	fail := true
	rt := NewRuntime(func(ctx context.Context) (CMM, error) {
		calls.Add(1)
		if fail {
			return nil, errors.New("module missing")
		}
		return &fakeCMM{}, nil
	})

	err := rt.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module missing")

	_, err = rt.CMM()
	assert.ErrorIs(t, err, ErrRuntimeNotLoaded)

	fail = false
	require.NoError(t, rt.Init(context.Background()))
	assert.Equal(t, int64(2), calls.Load())

	cmm, err := rt.CMM()
	require.NoError(t, err)
	assert.NotNil(t, cmm)
}

func TestRuntimeLoaderPanicBecomesError(t *testing.T) {
	rt := NewRuntime(func(ctx context.Context) (CMM, error) {
		panic("boom")
	})
	err := rt.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRuntimeWaiterHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	rt := NewRuntime(func(ctx context.Context) (CMM, error) {
		<-release
		return &fakeCMM{}, nil
	})

	go rt.Init(context.Background())
	require.Eventually(t, func() bool { return rt.Loads() == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, rt.Init(ctx), context.DeadlineExceeded)
}
