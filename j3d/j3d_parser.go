package j3d

import (
	"os"

	"github.com/pkg/errors"
)

// Mandatory chunks in the order they must appear.
var mandatoryChunks = [...]string{"INF1", "VTX1", "EVP1", "DRW1", "JNT1", "SHP1"}

const headerSize = 0x20

// Load reads and parses a .bmd or .bdl file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return m, nil
}

// Parse decodes a J3D container. The returned model is not modified afterwards.
func Parse(data []byte) (*Model, error) {
	if len(data) < 8 || !Magics[string(data[:8])] {
		return nil, ErrInvalidMagic
	}
	if len(data) < headerSize {
		return nil, errors.Wrap(ErrTruncated, "header")
	}
	head := &section{tag: "header", data: data[:headerSize]}
	m := &Model{
		Header: Header{
			Magic:      string(data[:8]),
			FileSize:   head.u32(0x08),
			ChunkCount: head.u32(0x0C),
			SubVersion: string(head.bytes(0x10, 16)),
		},
		VertexArrays: map[GXAttr][]byte{},
	}

	chunks, err := readChunkDirectory(data, int(m.Header.ChunkCount))
	if err != nil {
		return nil, err
	}
	m.Chunks = chunks
	for i, tag := range mandatoryChunks {
		if i >= len(chunks) || chunks[i].Tag != tag {
			return nil, errors.Wrapf(ErrMissingChunk, "expected %s at position %d", tag, i)
		}
	}

	sec := func(tag string) *section {
		for _, c := range chunks {
			if c.Tag == tag {
				return &section{tag: tag, data: data[c.Offset : c.Offset+c.Size]}
			}
		}
		return nil
	}

	steps := []struct {
		tag   string
		parse func(*section, *Model) error
	}{
		{"INF1", parseINF1},
		{"VTX1", parseVTX1},
		{"EVP1", parseEVP1},
		{"DRW1", parseDRW1},
		{"JNT1", parseJNT1},
		{"SHP1", parseSHP1},
		{"MAT3", parseMAT3},
		{"TEX1", parseTEX1},
	}
	for _, step := range steps {
		s := sec(step.tag)
		if s == nil {
			continue
		}
		if err := step.parse(s, m); err != nil {
			return nil, errors.Wrapf(err, "chunk %s", step.tag)
		}
	}

	if len(m.InverseBinds) > len(m.Joints) {
		m.InverseBinds = m.InverseBinds[:len(m.Joints)]
	}
	if err := resolveHierarchy(m); err != nil {
		return nil, err
	}
	return m, nil
}

// readChunkDirectory walks the chunk headers without decoding payloads.
func readChunkDirectory(data []byte, count int) ([]ChunkRange, error) {
	var chunks []ChunkRange
	off := headerSize
	for off+8 <= len(data) && (count <= 0 || len(chunks) < count) {
		s := &section{tag: "chunk", data: data[off : off+8]}
		tag := string(s.bytes(0, 4))
		size := int(s.u32(4))
		if size < 8 || off+size > len(data) {
			return nil, errors.Wrapf(ErrTruncated, "chunk %q at 0x%x has size 0x%x", tag, off, size)
		}
		chunks = append(chunks, ChunkRange{Tag: tag, Offset: off, Size: size})
		off += size
	}
	return chunks, nil
}

// resolveHierarchy derives joint parents and assigns every shape its
// material from the INF1 node stream.
func resolveHierarchy(m *Model) error {
	for _, j := range m.Joints {
		j.Parent = -1
	}
	for _, s := range m.Shapes {
		s.MaterialIndex = -1
	}

	placed := make([]bool, len(m.Joints))
	parents := []int{-1}
	last := -1
	material := -1
	for _, n := range m.Hierarchy {
		switch n.Type {
		case NodeOpen:
			parents = append(parents, last)
		case NodeClose:
			if len(parents) > 1 {
				parents = parents[:len(parents)-1]
			}
			last = parents[len(parents)-1]
		case NodeJoint:
			idx := int(n.Value)
			if idx >= len(m.Joints) {
				return errors.Wrapf(ErrTruncated, "joint node %d out of range", idx)
			}
			parent := parents[len(parents)-1]
			if placed[idx] || parent == idx {
				return errors.Wrapf(ErrJointHierarchy, "joint node %d appears twice", idx)
			}
			placed[idx] = true
			m.Joints[idx].Parent = parent
			if parent >= 0 {
				m.Joints[parent].Children = append(m.Joints[parent].Children, idx)
			}
			last = idx
		case NodeMaterial:
			material = int(n.Value)
		case NodeShape:
			idx := int(n.Value)
			if idx >= len(m.Shapes) {
				return errors.Wrapf(ErrUnresolvedMaterial, "shape node %d out of range", idx)
			}
			if material < 0 {
				return errors.Wrapf(ErrUnresolvedMaterial, "shape %d precedes any material node", idx)
			}
			if m.Shapes[idx].MaterialIndex >= 0 {
				return errors.Wrapf(ErrUnresolvedMaterial, "shape %d assigned twice", idx)
			}
			m.Shapes[idx].MaterialIndex = material
		}
	}
	for i, s := range m.Shapes {
		if s.MaterialIndex < 0 {
			return errors.Wrapf(ErrUnresolvedMaterial, "shape %d", i)
		}
	}
	return nil
}
