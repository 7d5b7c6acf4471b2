package j3d

import (
	"math"

	"github.com/binzume/j3dconv/geom"
)

const jointEntrySize = 0x40

// AngleToRadians converts a J3D fixed point angle (full turn = 65536).
func AngleToRadians(v int16) float32 {
	return float32(float64(v) * math.Pi / 32768)
}

func parseJNT1(s *section, m *Model) error {
	count := int(s.u16(0x08))
	entryOff := s.offset(0x0C)
	remapOff := s.offset(0x10)
	var names []string
	if nameOff := s.offset(0x14); nameOff != 0 {
		names = readNameTable(s, nameOff)
	}

	for i := 0; i < count; i++ {
		entry := i
		if remapOff != 0 {
			entry = int(s.u16(remapOff + i*2))
		}
		off := entryOff + entry*jointEntrySize
		j := &Joint{
			Name:           nameAt(names, i),
			Flags:          s.u16(off),
			CalcFlags:      s.u8(off + 2),
			Scale:          *geom.NewVector3FromArray(s.vec3(off + 0x04)),
			RotationAngles: [3]int16{s.s16(off + 0x10), s.s16(off + 0x12), s.s16(off + 0x14)},
			Translation:    *geom.NewVector3FromArray(s.vec3(off + 0x18)),
			Radius:         s.f32(off + 0x24),
			BBoxMin:        *geom.NewVector3FromArray(s.vec3(off + 0x28)),
			BBoxMax:        *geom.NewVector3FromArray(s.vec3(off + 0x34)),
			Parent:         -1,
		}
		j.Rotation = *geom.NewEuler(
			AngleToRadians(j.RotationAngles[0]),
			AngleToRadians(j.RotationAngles[1]),
			AngleToRadians(j.RotationAngles[2]),
			geom.RotationOrderZYX).ToQuaternion()
		m.Joints = append(m.Joints, j)
	}
	return s.err
}
