// Package lcms binds the proofing CMM interfaces to Little CMS 2 via cgo.
package lcms

/*
#cgo pkg-config: lcms2
#include <lcms2.h>
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"errors"
	"fmt"
	"unsafe"

	"printshop-core/proofing"
)

// Version returns the encoded CMM version from lcms2.
func Version() int {
	return int(C.cmsGetEncodedCMMversion())
}

// CMM implements proofing.CMM on top of lcms2
type CMM struct{}

var _ proofing.CMM = (*CMM)(nil)

// Load is a proofing.Loader that checks the lcms2 library is linked and usable.
func Load(ctx context.Context) (proofing.CMM, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if Version() == 0 {
		return nil, errors.New("lcms2: library reported version 0")
	}
	return &CMM{}, nil
}

type profile struct {
	h C.cmsHPROFILE
}

func (p *profile) Close() error {
	if p.h == nil {
		return nil
	}
	ok := C.cmsCloseProfile(p.h)
	p.h = nil
	if ok == 0 {
		return errors.New("lcms2: cmsCloseProfile failed")
	}
	return nil
}

type transform struct {
	h     C.cmsHTRANSFORM
	inCh  int
	outCh int
}

func (t *transform) Apply(src, dst []byte, n int) error {
	if t.h == nil {
		return errors.New("lcms2: transform already closed")
	}
	if n <= 0 {
		return nil
	}
	if len(src) < n*t.inCh || len(dst) < n*t.outCh {
		return fmt.Errorf("lcms2: buffers too small for %d pixels (src=%d, dst=%d)", n, len(src), len(dst))
	}
	C.cmsDoTransform(t.h, unsafe.Pointer(&src[0]), unsafe.Pointer(&dst[0]), C.cmsUInt32Number(n))
	return nil
}

func (t *transform) Close() error {
	if t.h != nil {
		C.cmsDeleteTransform(t.h)
		t.h = nil
	}
	return nil
}

// OpenProfile opens an ICC profile from memory. lcms2 copies the buffer.
func (c *CMM) OpenProfile(data []byte) (proofing.Profile, error) {
	if len(data) == 0 {
		return nil, errors.New("lcms2: empty profile buffer")
	}
	h := C.cmsOpenProfileFromMem(unsafe.Pointer(&data[0]), C.cmsUInt32Number(len(data)))
	if h == nil {
		return nil, errors.New("lcms2: cmsOpenProfileFromMem failed")
	}
	return &profile{h: h}, nil
}

// NewProofingTransform creates an 8-bit RGB→RGB soft-proofing transform
func (c *CMM) NewProofingTransform(input, output, proof proofing.Profile, intent, proofingIntent proofing.Intent) (proofing.Transform, error) {
	hIn, err := handle(input)
	if err != nil {
		return nil, err
	}
	hOut, err := handle(output)
	if err != nil {
		return nil, err
	}
	hProof, err := handle(proof)
	if err != nil {
		return nil, err
	}
	h := C.cmsCreateProofingTransform(
		hIn, C.TYPE_RGB_8,
		hOut, C.TYPE_RGB_8,
		hProof,
		C.cmsUInt32Number(intent),
		C.cmsUInt32Number(proofingIntent),
		C.cmsFLAGS_SOFTPROOFING,
	)
	if h == nil {
		return nil, errors.New("lcms2: cmsCreateProofingTransform failed")
	}
	return &transform{h: h, inCh: 3, outCh: 3}, nil
}

// NewCMYKTransform creates an 8-bit RGB→CMYK transform
func (c *CMM) NewCMYKTransform(input, output proofing.Profile, intent proofing.Intent) (proofing.Transform, error) {
	hIn, err := handle(input)
	if err != nil {
		return nil, err
	}
	hOut, err := handle(output)
	if err != nil {
		return nil, err
	}
	h := C.cmsCreateTransform(
		hIn, C.TYPE_RGB_8,
		hOut, C.TYPE_CMYK_8,
		C.cmsUInt32Number(intent),
		C.cmsFLAGS_NOCACHE,
	)
	if h == nil {
		return nil, errors.New("lcms2: cmsCreateTransform failed (is the output profile CMYK?)")
	}
	return &transform{h: h, inCh: 3, outCh: 4}, nil
}

func handle(p proofing.Profile) (C.cmsHPROFILE, error) {
	lp, ok := p.(*profile)
	if !ok || lp == nil || lp.h == nil {
		return nil, fmt.Errorf("lcms2: profile %T is not an open lcms2 profile", p)
	}
	return lp.h, nil
}

// SRGBProfile returns the bytes of lcms2's built-in sRGB profile.
func SRGBProfile() ([]byte, error) {
	h := C.cmsCreate_sRGBProfile()
	if h == nil {
		return nil, errors.New("lcms2: cmsCreate_sRGBProfile failed")
	}
	defer C.cmsCloseProfile(h)

	var size C.cmsUInt32Number
	if C.cmsSaveProfileToMem(h, nil, &size) == 0 || size == 0 {
		return nil, errors.New("lcms2: failed to size sRGB profile")
	}
	buf := make([]byte, int(size))
	if C.cmsSaveProfileToMem(h, unsafe.Pointer(&buf[0]), &size) == 0 {
		return nil, errors.New("lcms2: failed to serialise sRGB profile")
	}
	return buf[:int(size)], nil
}
