package proofing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWorker(t *testing.T) (*Worker, *fakeCMM, context.CancelFunc) {
	t.Helper()
	p, cmm := newTestProofer()
	w := NewWorker(p)
	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	t.Cleanup(cancel)
	return w, cmm, cancel
}

func TestWorkerProtocol(t *testing.T) {
	w, cmm, _ := startWorker(t)
	ctx := context.Background()

	resp, err := w.Post(ctx, Request{ID: "1", Type: MsgInit, InputProfileData: fakeProfile("srgb"), OutputProfileData: fakeProfile("fogra")})
	require.NoError(t, err)
	assert.Equal(t, "1", resp.ID)
	assert.Equal(t, MsgReady, resp.Type)

	resp, err = w.Post(ctx, Request{ID: "2", Type: MsgTransform, ImageData: solid(3, 2, 255, 0, 0, 128), ShowGamutWarning: true})
	require.NoError(t, err)
	require.NoError(t, resp.Err())
	assert.Equal(t, MsgTransformed, resp.Type)
	assert.Equal(t, 3, resp.Width)
	assert.Equal(t, 2, resp.Height)
	require.NotNil(t, resp.GamutMask)
	assert.Equal(t, uint8(128), resp.ImageData.Pix[3])

	resp, err = w.Post(ctx, Request{ID: "3", Type: MsgTransformToCMYK, ImageData: solid(2, 2, 0, 0, 0, 255), InputProfileData: fakeProfile("srgb"), OutputProfileData: fakeProfile("fogra")})
	require.NoError(t, err)
	assert.Equal(t, MsgCMYKTransformed, resp.Type)
	assert.Len(t, resp.CMYKData, 16)
	assert.NotNil(t, resp.ProofedImageData)

	resp, err = w.Post(ctx, Request{ID: "4", Type: MsgDispose})
	require.NoError(t, err)
	assert.Equal(t, MsgDisposed, resp.Type)
	assert.Zero(t, cmm.openHandles())

	resp, err = w.Post(ctx, Request{ID: "5", Type: MsgTransform, ImageData: solid(1, 1, 0, 0, 0, 255)})
	require.NoError(t, err)
	assert.Equal(t, "5", resp.ID)
	assert.Equal(t, MsgError, resp.Type)
	assert.Equal(t, "Transform not initialized", resp.Error)
}

func TestWorkerErrorsEchoIDAndRecover(t *testing.T) {
	w, _, _ := startWorker(t)
	ctx := context.Background()

	resp, err := w.Post(ctx, Request{ID: "bad-init", Type: MsgInit, InputProfileData: fakeProfile("srgb")})
	require.NoError(t, err)
	assert.Equal(t, "bad-init", resp.ID)
	assert.Equal(t, MsgError, resp.Type)
	assert.Equal(t, "Empty profile data (input=8 bytes, output=0 bytes)", resp.Error)

	resp, err = w.Post(ctx, Request{ID: "what", Type: "resize"})
	require.NoError(t, err)
	assert.Equal(t, MsgError, resp.Type)
	assert.Contains(t, resp.Error, "unknown message type")

	// the worker keeps serving after errors
	resp, err = w.Post(ctx, Request{Type: MsgInit, InputProfileData: fakeProfile("srgb"), OutputProfileData: fakeProfile("fogra")})
	require.NoError(t, err)
	assert.Equal(t, MsgReady, resp.Type)
	assert.NotEmpty(t, resp.ID, "missing ids are generated")
}

func TestErrorTextUsesProtocolWording(t *testing.T) {
	wrapped := fmt.Errorf("init: %w (input=0 bytes, output=12 bytes)", ErrEmptyProfile)
	assert.Equal(t, "init: Empty profile data (input=0 bytes, output=12 bytes)", errorText(wrapped))
	assert.Equal(t, "Transform not initialized", errorText(ErrTransformNotInitialized))
	assert.Equal(t, "boom", errorText(errors.New("boom")))
}

func TestWorkerStopDisposesAndRejects(t *testing.T) {
	w, cmm, cancel := startWorker(t)

	_, err := w.Post(context.Background(), Request{Type: MsgInit, InputProfileData: fakeProfile("srgb"), OutputProfileData: fakeProfile("fogra")})
	require.NoError(t, err)
	require.Equal(t, 3, cmm.openHandles())

	cancel()
	require.Eventually(t, func() bool { return cmm.openHandles() == 0 }, time.Second, time.Millisecond)

	_, err = w.Post(context.Background(), Request{Type: MsgDispose})
	assert.ErrorIs(t, err, ErrWorkerStopped)
}
