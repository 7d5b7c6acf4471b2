package j3d

import "github.com/pkg/errors"

var (
	ErrInvalidMagic       = errors.New("j3d: invalid magic")
	ErrMissingChunk       = errors.New("j3d: missing or misplaced mandatory chunk")
	ErrUnresolvedMaterial = errors.New("j3d: shape material unresolved")
	ErrTruncated          = errors.New("j3d: data truncated")
	ErrVertexFormat       = errors.New("j3d: unsupported vertex format")
	ErrTooManyVertices    = errors.New("j3d: too many vertices in matrix group")
	ErrJointHierarchy     = errors.New("j3d: invalid joint hierarchy")
)

// IsMalformed reports whether err means the container itself is broken.
func IsMalformed(err error) bool {
	for _, e := range []error{ErrInvalidMagic, ErrMissingChunk, ErrUnresolvedMaterial, ErrTruncated, ErrVertexFormat, ErrTooManyVertices, ErrJointHierarchy} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
