package geom

import "math"

type Quaternion struct {
	X Element
	Y Element
	Z Element
	W Element
}

func NewQuaternion(x, y, z, w float32) *Quaternion {
	return &Quaternion{X: x, Y: y, Z: z, W: w}
}

// NewQuaternionFromAxisAngle returns the rotation of rad radians around a unit axis.
func NewQuaternionFromAxisAngle(axis *Vector3, rad float64) *Quaternion {
	s := Element(math.Sin(rad / 2))
	return &Quaternion{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: Element(math.Cos(rad / 2))}
}

// Mul returns q*q2 (q2 is applied first).
func (q *Quaternion) Mul(q2 *Quaternion) *Quaternion {
	return &Quaternion{
		X: q.W*q2.X + q.X*q2.W + q.Y*q2.Z - q.Z*q2.Y,
		Y: q.W*q2.Y - q.X*q2.Z + q.Y*q2.W + q.Z*q2.X,
		Z: q.W*q2.Z + q.X*q2.Y - q.Y*q2.X + q.Z*q2.W,
		W: q.W*q2.W - q.X*q2.X - q.Y*q2.Y - q.Z*q2.Z,
	}
}

func (q *Quaternion) Len() Element {
	return Element(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
}

func (q *Quaternion) Normalize() *Quaternion {
	l := q.Len()
	if l > 0 {
		q.X /= l
		q.Y /= l
		q.Z /= l
		q.W /= l
	} else {
		q.W = 1
	}
	return q
}

func (q *Quaternion) Conjugate() *Quaternion {
	return &Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func (q *Quaternion) ApplyTo(v *Vector3) *Vector3 {
	r := q.Mul(&Quaternion{X: v.X, Y: v.Y, Z: v.Z}).Mul(q.Conjugate())
	return &Vector3{X: r.X, Y: r.Y, Z: r.Z}
}

func (q *Quaternion) ToArray() [4]Element {
	return [4]Element{q.X, q.Y, q.Z, q.W}
}
