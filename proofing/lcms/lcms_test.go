package lcms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop-core/proofing"
)

func TestLcms2Linkage(t *testing.T) {
	ver := Version()
	require.NotZero(t, ver, "lcms2 version returned 0")
	t.Logf("lcms2 encoded CMM version: %d", ver)
}

func TestSRGBProfileParses(t *testing.T) {
	data, err := SRGBProfile()
	require.NoError(t, err)

	info, err := proofing.ParseProfileInfo(data)
	require.NoError(t, err)
	assert.True(t, info.IsRGB())
	assert.Equal(t, "mntr", info.Class)
}

func TestProofingSRGBThroughSRGBKeepsNeutrals(t *testing.T) {
	srgb, err := SRGBProfile()
	require.NoError(t, err)

	cmm, err := Load(context.Background())
	require.NoError(t, err)

	p, err := cmm.OpenProfile(srgb)
	require.NoError(t, err)
	defer p.Close()
	q, err := cmm.OpenProfile(srgb)
	require.NoError(t, err)
	defer q.Close()

	tr, err := cmm.NewProofingTransform(p, p, q, proofing.IntentRelativeColorimetric, proofing.IntentRelativeColorimetric)
	require.NoError(t, err)
	defer tr.Close()

	src := []byte{255, 255, 255, 0, 0, 0}
	dst := make([]byte, len(src))
	require.NoError(t, tr.Apply(src, dst, 2))

	for i := range src {
		assert.InDelta(t, int(src[i]), int(dst[i]), 2, "channel %d", i)
	}
}

func TestOpenProfileRejectsGarbage(t *testing.T) {
	cmm := &CMM{}
	_, err := cmm.OpenProfile([]byte("definitely not an icc profile"))
	assert.Error(t, err)

	_, err = cmm.OpenProfile(nil)
	assert.Error(t, err)
}

func TestCMYKTransformNeedsCMYKOutput(t *testing.T) {
	srgb, err := SRGBProfile()
	require.NoError(t, err)
	cmm := &CMM{}

	p, err := cmm.OpenProfile(srgb)
	require.NoError(t, err)
	defer p.Close()

	_, err = cmm.NewCMYKTransform(p, p, proofing.IntentRelativeColorimetric)
	assert.Error(t, err)
}
