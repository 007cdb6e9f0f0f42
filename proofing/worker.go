package proofing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/google/uuid"
)

// MessageType identifies a worker request or response
type MessageType string

// Request message types
const (
	MsgInit            MessageType = "init"
	MsgTransform       MessageType = "transform"
	MsgTransformToCMYK MessageType = "transform-to-cmyk"
	MsgDispose         MessageType = "dispose"
)

// Response message types
const (
	MsgReady           MessageType = "ready"
	MsgTransformed     MessageType = "transformed"
	MsgCMYKTransformed MessageType = "cmyk-transformed"
	MsgDisposed        MessageType = "disposed"
	MsgError           MessageType = "error"
)

// ErrWorkerStopped is returned by Post once Run has returned
var ErrWorkerStopped = errors.New("proofing worker stopped")

// Request is a message sent to the worker. Fields are used according to Type.
type Request struct {
	ID                string
	Type              MessageType
	InputProfileData  []byte
	OutputProfileData []byte
	ImageData         *image.NRGBA
	ShowGamutWarning  bool
	GamutWarningColor string
}

// Response is the worker's reply; ID echoes the request ID.
type Response struct {
	ID               string
	Type             MessageType
	ImageData        *image.NRGBA
	GamutMask        *image.NRGBA
	CMYKData         []byte
	ProofedImageData *image.NRGBA
	Width            int
	Height           int
	Error            string
}

// Err returns the response error, if any
func (r Response) Err() error {
	if r.Type == MsgError {
		return errors.New(r.Error)
	}
	return nil
}

type envelope struct {
	ctx   context.Context
	req   Request
	reply chan Response
}

// Worker runs a Proofer on its own goroutine and processes messages one at a time.
type Worker struct {
	proofer *Proofer
	inbox   chan envelope
	stopped chan struct{}
}

// NewWorker creates a worker around p. Call Run to start processing.
func NewWorker(p *Proofer) *Worker {
	return &Worker{
		proofer: p,
		inbox:   make(chan envelope),
		stopped: make(chan struct{}),
	}
}

// Run processes messages until ctx is cancelled, then disposes the live transform.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.stopped)
	defer w.proofer.Dispose()
	log.Printf("🎨 Worker: proofing worker started")
	for {
		select {
		case <-ctx.Done():
			log.Printf("🎨 Worker: proofing worker stopping")
			return
		case env := <-w.inbox:
			env.reply <- w.handle(env.ctx, env.req)
		}
	}
}

// Post sends req to the worker and waits for the reply. A missing ID is
// filled with a random one. Handler failures come back as MsgError responses,
// not as the returned error.
func (w *Worker) Post(ctx context.Context, req Request) (Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	reply := make(chan Response, 1)
	select {
	case w.inbox <- envelope{ctx: ctx, req: req, reply: reply}:
	case <-w.stopped:
		return Response{}, ErrWorkerStopped
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
	select {
	case resp := <-reply:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

func (w *Worker) handle(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = errorResponse(req, fmt.Errorf("panic: %v", r))
		}
	}()

	switch req.Type {
	case MsgInit:
		if err := w.proofer.CreateTransform(ctx, req.InputProfileData, req.OutputProfileData); err != nil {
			return errorResponse(req, err)
		}
		return Response{ID: req.ID, Type: MsgReady}

	case MsgTransform:
		res, err := w.proofer.Transform(req.ImageData, req.ShowGamutWarning, req.GamutWarningColor)
		if err != nil {
			return errorResponse(req, err)
		}
		return Response{
			ID:        req.ID,
			Type:      MsgTransformed,
			ImageData: res.Proofed,
			GamutMask: res.GamutMask,
			Width:     res.Proofed.Rect.Dx(),
			Height:    res.Proofed.Rect.Dy(),
		}

	case MsgTransformToCMYK:
		res, err := w.proofer.TransformForExport(ctx, req.ImageData, req.InputProfileData, req.OutputProfileData)
		if err != nil {
			return errorResponse(req, err)
		}
		return Response{
			ID:               req.ID,
			Type:             MsgCMYKTransformed,
			CMYKData:         res.CMYK,
			ProofedImageData: res.Proofed,
			Width:            res.Width,
			Height:           res.Height,
		}

	case MsgDispose:
		w.proofer.Dispose()
		return Response{ID: req.ID, Type: MsgDisposed}

	default:
		return errorResponse(req, fmt.Errorf("unknown message type %q", req.Type))
	}
}

// protocolErrorText holds the wire wording of sentinel errors
var protocolErrorText = []struct {
	err  error
	text string
}{
	{ErrEmptyProfile, "Empty profile data"},
	{ErrTransformNotInitialized, "Transform not initialized"},
}

func errorResponse(req Request, err error) Response {
	log.Printf("❌ Worker: %s (id=%s) failed: %v", req.Type, req.ID, err)
	return Response{ID: req.ID, Type: MsgError, Error: errorText(err)}
}

// errorText renders err for the error message, using the protocol wording for known sentinels
func errorText(err error) string {
	msg := err.Error()
	for _, p := range protocolErrorText {
		if errors.Is(err, p.err) {
			return strings.Replace(msg, p.err.Error(), p.text, 1)
		}
	}
	return msg
}
