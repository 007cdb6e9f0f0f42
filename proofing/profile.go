package proofing

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	maxProfileSize = 16 * 1024 * 1024
	iccHeaderSize  = 128
	acspMagic      = 0x61637370 // 'acsp'
	headerDumpLen  = 16
)

// ProfileInfo contains metadata parsed from an ICC profile header.
type ProfileInfo struct {
	Size       uint32
	Version    string
	ColorSpace string // "RGB ", "CMYK", ...
	PCS        string // "XYZ ", "Lab "
	Class      string // "mntr", "prtr", ...
}

// ParseProfileInfo reads ICC header metadata from raw profile bytes.
func ParseProfileInfo(data []byte) (*ProfileInfo, error) {
	if len(data) < iccHeaderSize {
		return nil, fmt.Errorf("ICC profile too short (%d bytes, need %d)", len(data), iccHeaderSize)
	}
	if len(data) > maxProfileSize {
		return nil, fmt.Errorf("ICC profile too large (%d bytes, max %d)", len(data), maxProfileSize)
	}
	if sig := binary.BigEndian.Uint32(data[36:40]); sig != acspMagic {
		return nil, fmt.Errorf("invalid ICC signature: 0x%08x (expected 0x%08x)", sig, acspMagic)
	}
	return &ProfileInfo{
		Size:       binary.BigEndian.Uint32(data[0:4]),
		Version:    fmt.Sprintf("%d.%d.%d", data[8], data[9]>>4, data[9]&0x0f),
		ColorSpace: string(data[16:20]),
		PCS:        string(data[20:24]),
		Class:      string(data[12:16]),
	}, nil
}

// IsRGB reports whether the profile describes an RGB space
func (p *ProfileInfo) IsRGB() bool { return p.ColorSpace == "RGB " }

// IsCMYK reports whether the profile describes a CMYK space
func (p *ProfileInfo) IsCMYK() bool { return p.ColorSpace == "CMYK" }

// ColorSpaceName returns a human-readable name for an ICC color space signature.
func ColorSpaceName(sig string) string {
	switch sig {
	case "RGB ":
		return "RGB"
	case "CMYK":
		return "CMYK"
	case "GRAY":
		return "Grayscale"
	case "Lab ":
		return "CIELAB"
	case "XYZ ":
		return "CIEXYZ"
	default:
		return sig
	}
}

// ProfileClassName returns a human-readable name for an ICC profile class.
func ProfileClassName(sig string) string {
	switch sig {
	case "mntr":
		return "Display"
	case "prtr":
		return "Output"
	case "scnr":
		return "Input"
	case "link":
		return "DeviceLink"
	case "spac":
		return "ColorSpace"
	case "abst":
		return "Abstract"
	case "nmcl":
		return "NamedColor"
	default:
		return sig
	}
}

// headerDump renders the first bytes of a profile buffer for diagnostics
func headerDump(data []byte) string {
	if len(data) == 0 {
		return "<empty>"
	}
	n := min(len(data), headerDumpLen)
	return fmt.Sprintf("[% x] (%d bytes)", data[:n], len(data))
}

// ErrInvalidProfile is returned when profile bytes cannot be opened by the CMM
var ErrInvalidProfile = errors.New("invalid ICC profile")

func profileOpenError(role string, cause error, inputICC, outputICC []byte) error {
	return fmt.Errorf("%w: failed to open %s profile: %v; input header %s, output header %s",
		ErrInvalidProfile, role, cause, headerDump(inputICC), headerDump(outputICC))
}
