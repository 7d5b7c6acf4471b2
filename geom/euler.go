package geom

import "math"

type RotationOrder int

const (
	RotationOrderXYZ RotationOrder = iota
	RotationOrderZYX
)

// EulerAngles holds rotation angles in radians. The order names the
// matrix product, so RotationOrderZYX means Rz*Ry*Rx (X applied first).
type EulerAngles struct {
	Vector3
	Order RotationOrder
}

func NewEuler(x, y, z float32, order RotationOrder) *EulerAngles {
	return &EulerAngles{Vector3: Vector3{x, y, z}, Order: order}
}

func (e *EulerAngles) ToQuaternion() *Quaternion {
	cx, sx := math.Cos(float64(e.X)/2), math.Sin(float64(e.X)/2)
	cy, sy := math.Cos(float64(e.Y)/2), math.Sin(float64(e.Y)/2)
	cz, sz := math.Cos(float64(e.Z)/2), math.Sin(float64(e.Z)/2)

	switch e.Order {
	case RotationOrderXYZ:
		return &Quaternion{
			X: float32(sx*cy*cz + cx*sy*sz),
			Y: float32(cx*sy*cz - sx*cy*sz),
			Z: float32(cx*cy*sz + sx*sy*cz),
			W: float32(cx*cy*cz - sx*sy*sz)}
	case RotationOrderZYX:
		return &Quaternion{
			X: float32(sx*cy*cz - cx*sy*sz),
			Y: float32(cx*sy*cz + sx*cy*sz),
			Z: float32(cx*cy*sz - sx*sy*cz),
			W: float32(cx*cy*cz + sx*sy*sz)}
	}
	return &Quaternion{W: 1}
}
