package proofing

import (
	"fmt"
	"io"
	"log"
)

// ownedTransform holds a transform together with the profiles it was built from.
// release closes every handle, each independently, and never fails.
type ownedTransform struct {
	profiles  []Profile
	transform Transform
}

func (o *ownedTransform) release() {
	if o == nil {
		return
	}
	if o.transform != nil {
		closeQuietly("transform", o.transform)
		o.transform = nil
	}
	for i := len(o.profiles) - 1; i >= 0; i-- {
		closeQuietly("profile", o.profiles[i])
	}
	o.profiles = nil
}

// closeQuietly releases a native handle, logging and swallowing any failure
func closeQuietly(what string, c io.Closer) {
	if c == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  release %s panicked: %v", what, r)
		}
	}()
	if err := c.Close(); err != nil {
		log.Printf("⚠️  release %s failed: %v", what, err)
	}
}

// acquire opens input and output profiles and builds a transform with build.
// Every handle acquired so far is released if a later step fails.
func acquire(cmm CMM, inputICC, outputICC []byte, build func(input, output Profile) (Transform, error)) (*ownedTransform, error) {
	owned := &ownedTransform{}
	committed := false
	defer func() {
		if !committed {
			owned.release()
		}
	}()

	input, err := cmm.OpenProfile(inputICC)
	if err != nil {
		return nil, profileOpenError("input", err, inputICC, outputICC)
	}
	owned.profiles = append(owned.profiles, input)

	output, err := cmm.OpenProfile(outputICC)
	if err != nil {
		return nil, profileOpenError("output", err, inputICC, outputICC)
	}
	owned.profiles = append(owned.profiles, output)

	transform, err := build(input, output)
	if err != nil {
		return nil, fmt.Errorf("failed to create transform: %w", err)
	}
	owned.transform = transform
	committed = true
	return owned, nil
}
