package j3d

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// section is a big-endian view of one chunk. Reads past the end return
// zero and latch ErrTruncated.
type section struct {
	tag  string
	data []byte
	err  error
}

func (s *section) fail(off, n int) {
	if s.err == nil {
		s.err = errors.Wrapf(ErrTruncated, "%s: read %d bytes at 0x%x (size 0x%x)", s.tag, n, off, len(s.data))
	}
}

func (s *section) bytes(off, n int) []byte {
	if off < 0 || n < 0 || off+n > len(s.data) {
		s.fail(off, n)
		return nil
	}
	return s.data[off : off+n]
}

func (s *section) u8(off int) uint8 {
	b := s.bytes(off, 1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (s *section) u16(off int) uint16 {
	b := s.bytes(off, 2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (s *section) s16(off int) int16 {
	return int16(s.u16(off))
}

func (s *section) u32(off int) uint32 {
	b := s.bytes(off, 4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (s *section) f32(off int) float32 {
	return math.Float32frombits(s.u32(off))
}

func (s *section) vec3(off int) [3]float32 {
	return [3]float32{s.f32(off), s.f32(off + 4), s.f32(off + 8)}
}

// offset reads a u32 field holding a chunk relative offset.
func (s *section) offset(off int) int {
	return int(s.u32(off))
}
