package geom

// column-major matrix
type Matrix4 [16]Element

func NewMatrix4() *Matrix4 {
	return &Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// NewMatrix4FromRows3x4 expands a row-major 3x4 affine matrix.
func NewMatrix4FromRows3x4(r [12]Element) *Matrix4 {
	return &Matrix4{
		r[0], r[4], r[8], 0,
		r[1], r[5], r[9], 0,
		r[2], r[6], r[10], 0,
		r[3], r[7], r[11], 1,
	}
}

func NewScaleMatrix4(x, y, z Element) *Matrix4 {
	return &Matrix4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

func NewTranslateMatrix4(x, y, z Element) *Matrix4 {
	return &Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func NewRotationMatrix4FromQuaternion(q *Quaternion) *Matrix4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	return &Matrix4{
		1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0,
		2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0,
		2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}

// NewTRSMatrix4 returns T*R*S.
func NewTRSMatrix4(t *Vector3, r *Quaternion, s *Vector3) *Matrix4 {
	m := NewRotationMatrix4FromQuaternion(r)
	for i := 0; i < 3; i++ {
		m[i] *= s.X
		m[4+i] *= s.Y
		m[8+i] *= s.Z
	}
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Mul returns b*a.
func (b *Matrix4) Mul(a *Matrix4) *Matrix4 {
	r := &Matrix4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var s Element
			for k := 0; k < 4; k++ {
				s += b[k*4+row] * a[col*4+k]
			}
			r[col*4+row] = s
		}
	}
	return r
}

func (m *Matrix4) det3() Element {
	return m[0]*(m[5]*m[10]-m[9]*m[6]) -
		m[4]*(m[1]*m[10]-m[9]*m[2]) +
		m[8]*(m[1]*m[6]-m[5]*m[2])
}

// Inverse inverts an affine matrix. A singular matrix yields the zero matrix.
func (m *Matrix4) Inverse() *Matrix4 {
	r := &Matrix4{}
	det := m.det3()
	if det == 0 {
		return r
	}
	inv := 1 / det
	r[0] = (m[5]*m[10] - m[9]*m[6]) * inv
	r[4] = (m[8]*m[6] - m[4]*m[10]) * inv
	r[8] = (m[4]*m[9] - m[8]*m[5]) * inv
	r[1] = (m[9]*m[2] - m[1]*m[10]) * inv
	r[5] = (m[0]*m[10] - m[8]*m[2]) * inv
	r[9] = (m[8]*m[1] - m[0]*m[9]) * inv
	r[2] = (m[1]*m[6] - m[5]*m[2]) * inv
	r[6] = (m[4]*m[2] - m[0]*m[6]) * inv
	r[10] = (m[0]*m[5] - m[4]*m[1]) * inv
	r[12] = -(r[0]*m[12] + r[4]*m[13] + r[8]*m[14])
	r[13] = -(r[1]*m[12] + r[5]*m[13] + r[9]*m[14])
	r[14] = -(r[2]*m[12] + r[6]*m[13] + r[10]*m[14])
	r[15] = 1
	return r
}

func (m *Matrix4) Transposed() *Matrix4 {
	return &Matrix4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

func (mat *Matrix4) ApplyTo(v *Vector3) *Vector3 {
	return &Vector3{
		mat[0]*v.X + mat[4]*v.Y + mat[8]*v.Z + mat[12],
		mat[1]*v.X + mat[5]*v.Y + mat[9]*v.Z + mat[13],
		mat[2]*v.X + mat[6]*v.Y + mat[10]*v.Z + mat[14],
	}
}

// ApplyToNormal transforms a direction by the inverse transpose of the
// upper 3x3. The result is not normalized.
func (mat *Matrix4) ApplyToNormal(v *Vector3) *Vector3 {
	n := mat.Inverse().Transposed()
	return &Vector3{
		n[0]*v.X + n[4]*v.Y + n[8]*v.Z,
		n[1]*v.X + n[5]*v.Y + n[9]*v.Z,
		n[2]*v.X + n[6]*v.Y + n[10]*v.Z,
	}
}
