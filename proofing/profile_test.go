package proofing

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iccHeader(class, space string) []byte {
	data := make([]byte, 132)
	binary.BigEndian.PutUint32(data[0:4], uint32(len(data)))
	data[8], data[9] = 4, 0x30
	copy(data[12:16], class)
	copy(data[16:20], space)
	copy(data[20:24], "Lab ")
	binary.BigEndian.PutUint32(data[36:40], acspMagic)
	return data
}

func TestParseProfileInfo(t *testing.T) {
	info, err := ParseProfileInfo(iccHeader("prtr", "CMYK"))
	require.NoError(t, err)
	assert.Equal(t, uint32(132), info.Size)
	assert.Equal(t, "4.3.0", info.Version)
	assert.True(t, info.IsCMYK())
	assert.False(t, info.IsRGB())
	assert.Equal(t, "Output", ProfileClassName(info.Class))
	assert.Equal(t, "CIELAB", ColorSpaceName(info.PCS))
}

func TestParseProfileInfoRejectsBadData(t *testing.T) {
	_, err := ParseProfileInfo(make([]byte, 40))
	assert.ErrorContains(t, err, "too short")

	data := iccHeader("mntr", "RGB ")
	copy(data[36:40], "nope")
	_, err = ParseProfileInfo(data)
	assert.ErrorContains(t, err, "invalid ICC signature")
}

func TestHeaderDump(t *testing.T) {
	assert.Equal(t, "<empty>", headerDump(nil))
	dump := headerDump(iccHeader("mntr", "RGB "))
	assert.Contains(t, dump, "00 00 00 84")
	assert.Contains(t, dump, "(132 bytes)")
}

func TestParseIntent(t *testing.T) {
	i, err := ParseIntent("perceptual")
	require.NoError(t, err)
	assert.Equal(t, IntentPerceptual, i)

	i, err = ParseIntent("")
	require.NoError(t, err)
	assert.Equal(t, IntentRelativeColorimetric, i)

	_, err = ParseIntent("vivid")
	assert.Error(t, err)
}
