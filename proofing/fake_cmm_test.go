package proofing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
)

// fakeCMM simulates a narrow-gamut press: proofed channels are clamped to
// fakeGamutMax. Profiles must start with fakeProfileMagic.
type fakeCMM struct {
	mu         sync.Mutex
	open       int
	opened     int
	closed     int
	batches    []int
	failBuild  bool
	failClose  bool
	transforms int
}

const (
	fakeProfileMagic = "ICC:"
	fakeGamutMax     = 200
)

func fakeProfile(name string) []byte {
	return []byte(fakeProfileMagic + name)
}

type fakeProfileHandle struct {
	cmm    *fakeCMM
	closed bool
}

func (p *fakeProfileHandle) Close() error { return p.cmm.release(&p.closed) }

type fakeTransform struct {
	cmm    *fakeCMM
	cmyk   bool
	closed bool
}

func (t *fakeTransform) Close() error { return t.cmm.release(&t.closed) }

func (t *fakeTransform) Apply(src, dst []byte, n int) error {
	if t.closed {
		return errors.New("fake: transform closed")
	}
	t.cmm.mu.Lock()
	t.cmm.batches = append(t.cmm.batches, n)
	t.cmm.mu.Unlock()
	for i := 0; i < n; i++ {
		r, g, b := src[i*3], src[i*3+1], src[i*3+2]
		if t.cmyk {
			dst[i*4] = 255 - r
			dst[i*4+1] = 255 - g
			dst[i*4+2] = 255 - b
			dst[i*4+3] = 0
			continue
		}
		dst[i*3] = min(r, fakeGamutMax)
		dst[i*3+1] = min(g, fakeGamutMax)
		dst[i*3+2] = min(b, fakeGamutMax)
	}
	return nil
}

func (c *fakeCMM) release(closed *bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if *closed {
		return errors.New("fake: double close")
	}
	*closed = true
	c.open--
	c.closed++
	if c.failClose {
		return errors.New("fake: close failed")
	}
	return nil
}

func (c *fakeCMM) OpenProfile(data []byte) (Profile, error) {
	if !bytes.HasPrefix(data, []byte(fakeProfileMagic)) {
		return nil, fmt.Errorf("fake: bad profile header")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open++
	c.opened++
	return &fakeProfileHandle{cmm: c}, nil
}

func (c *fakeCMM) NewProofingTransform(input, output, proofing Profile, intent, proofingIntent Intent) (Transform, error) {
	return c.newTransform(false)
}

func (c *fakeCMM) NewCMYKTransform(input, output Profile, intent Intent) (Transform, error) {
	return c.newTransform(true)
}

func (c *fakeCMM) newTransform(cmyk bool) (Transform, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failBuild {
		return nil, errors.New("fake: cannot build transform")
	}
	c.open++
	c.transforms++
	return &fakeTransform{cmm: c, cmyk: cmyk}, nil
}

func (c *fakeCMM) openHandles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// countingLoader returns a loader that hands out cmm and counts invocations
func countingLoader(cmm CMM, calls *atomic.Int64) Loader {
	return func(ctx context.Context) (CMM, error) {
		calls.Add(1)
		return cmm, nil
	}
}

func newTestProofer() (*Proofer, *fakeCMM) {
	cmm := &fakeCMM{}
	var calls atomic.Int64
	return NewProofer(NewRuntime(countingLoader(cmm, &calls))), cmm
}

// gradient builds a w×h image whose pixels vary by position and alpha
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(x * 7)
			img.Pix[i+1] = uint8(y * 13)
			img.Pix[i+2] = uint8(x + y)
			img.Pix[i+3] = uint8((x*31 + y) % 256)
		}
	}
	return img
}

func solid(w, h int, r, g, b, a uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}
