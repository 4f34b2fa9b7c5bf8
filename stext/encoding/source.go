package encoding

import (
	"fmt"
	"math"
	"os"
	"unicode/utf8"
)

// Mode selects how a document's text is stored in its element array.
type Mode uint8

const (
	// ModeBytes stores one UTF-8 code unit (0-255) per element.
	ModeBytes Mode = iota
	// ModeCodepoints stores one Unicode scalar value per element, with an
	// auxiliary byte-offset table mapping each codepoint back to the byte
	// index it would start at in UTF-8.
	ModeCodepoints
)

func (m Mode) String() string {
	switch m {
	case ModeBytes:
		return "bytes"
	case ModeCodepoints:
		return "codepoints"
	default:
		return "unknown"
	}
}

// ParseMode maps a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "bytes":
		return ModeBytes, nil
	case "codepoints":
		return ModeCodepoints, nil
	default:
		return ModeBytes, fmt.Errorf("invalid encoding mode %q: must be \"bytes\" or \"codepoints\"", s)
	}
}

// MaxSourceLen is the maximum number of elements a single source may hold.
// Element positions are addressed with uint32 throughout the corpus layer.
const MaxSourceLen = math.MaxUint32

// Source is the narrow read surface the corpus layer depends on. Both
// TextSource and Transcript implement it. Sources are immutable after
// construction and safe to share between any number of batches.
type Source interface {
	Name() string
	Mode() Mode
	Len() int
	// At returns the i-th element widened to uint32: a UTF-8 code unit in
	// ModeBytes, a Unicode scalar value in ModeCodepoints.
	At(i int) uint32
	// Text decodes the element array back to the original string.
	Text() string
}

// TextSource represents the full text of one UTF-8 document as a compact
// element array. It is constructed once and treated as immutable afterward.
type TextSource struct {
	name string
	mode Mode

	bytes  []byte // ModeBytes
	points []rune // ModeCodepoints

	// Byte index the i-th codepoint would start at if the text were encoded
	// as UTF-8. Strictly increasing, offsets[0] == 0, step in {1,2,3,4}.
	// Only present in ModeCodepoints.
	offsets []uint32
}

// FromString constructs a TextSource from an in-memory string.
// The name can be a filename or an ID.
func FromString(name, text string, mode Mode) (*TextSource, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("source %q: %w", name, ErrInvalidEncoding)
	}
	if mode == ModeBytes {
		if uint64(len(text)) > MaxSourceLen {
			return nil, fmt.Errorf("source %q: %w", name, ErrSourceTooLarge)
		}
		return &TextSource{name: name, mode: ModeBytes, bytes: []byte(text)}, nil
	}

	points := []rune(text)
	if uint64(len(points)) > MaxSourceLen {
		return nil, fmt.Errorf("source %q: %w", name, ErrSourceTooLarge)
	}
	return &TextSource{
		name:    name,
		mode:    ModeCodepoints,
		points:  points,
		offsets: byteOffsets(points),
	}, nil
}

// FromFile constructs a TextSource from raw bytes read at path. The bytes
// must decode as well-formed UTF-8. In ModeBytes the raw bytes are kept as
// read, with no decode/re-encode round trip.
func FromFile(path string, mode Mode) (*TextSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %s: %w", path, err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("source file %s: %w", path, ErrInvalidEncoding)
	}
	if mode == ModeBytes {
		if uint64(len(raw)) > MaxSourceLen {
			return nil, fmt.Errorf("source file %s: %w", path, ErrSourceTooLarge)
		}
		return &TextSource{name: path, mode: ModeBytes, bytes: raw}, nil
	}

	// Offsets come directly from the raw byte positions: every leading byte
	// (0xxxxxxx, 110xxxxx, 1110xxxx, 1111xxxx) starts a symbol.
	points := make([]rune, 0, len(raw))
	offsets := make([]uint32, 0, len(raw))
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		points = append(points, r)
		offsets = append(offsets, uint32(i))
		i += size
	}
	if uint64(len(points)) > MaxSourceLen {
		return nil, fmt.Errorf("source file %s: %w", path, ErrSourceTooLarge)
	}
	return &TextSource{name: path, mode: ModeCodepoints, points: points, offsets: offsets}, nil
}

// byteOffsets walks codepoints and accumulates UTF-8 symbol widths:
// 1 byte for scalars < 0x80, 2 for < 0x800, 3 for < 0x10000, 4 otherwise.
func byteOffsets(points []rune) []uint32 {
	offsets := make([]uint32, len(points))
	var byteIndex uint32
	for i, r := range points {
		offsets[i] = byteIndex
		byteIndex += utf8Width(r)
	}
	return offsets
}

func utf8Width(r rune) uint32 {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// Name returns the source's filename or ID.
func (s *TextSource) Name() string { return s.name }

// Mode returns the encoding mode fixed at construction.
func (s *TextSource) Mode() Mode { return s.mode }

// Len returns the number of elements in the encoded array.
func (s *TextSource) Len() int {
	if s.mode == ModeBytes {
		return len(s.bytes)
	}
	return len(s.points)
}

// At returns the i-th element widened to uint32.
func (s *TextSource) At(i int) uint32 {
	if s.mode == ModeBytes {
		return uint32(s.bytes[i])
	}
	return uint32(s.points[i])
}

// Text decodes the element array back to the original string. It is the
// exact left inverse of construction.
func (s *TextSource) Text() string {
	if s.mode == ModeBytes {
		return string(s.bytes)
	}
	return string(s.points)
}

// ByteOffset returns the byte index element i starts at in the UTF-8
// encoding of the text. In ModeBytes the mapping is the identity.
func (s *TextSource) ByteOffset(i int) uint32 {
	if s.mode == ModeBytes {
		return uint32(i)
	}
	return s.offsets[i]
}

// ByteLen returns the total length in bytes of the UTF-8 encoding.
func (s *TextSource) ByteLen() uint32 {
	if s.mode == ModeBytes {
		return uint32(len(s.bytes))
	}
	if len(s.points) == 0 {
		return 0
	}
	last := len(s.points) - 1
	return s.offsets[last] + utf8Width(s.points[last])
}
