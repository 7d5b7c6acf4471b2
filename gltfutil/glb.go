package gltfutil

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

const (
	glbMagic   = 0x46546C67 // "glTF"
	glbVersion = 2
	chunkJSON  = 0x4E4F534A // "JSON"
	chunkBIN   = 0x004E4942 // "BIN\0"
)

// WriteGLB writes doc and bin as a binary glTF container. The BIN chunk is
// omitted when bin is empty.
func WriteGLB(w io.Writer, doc *gltf.Document, bin []byte) error {
	js, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshal gltf json")
	}
	padJSON := (4 - len(js)%4) % 4
	padBIN := (4 - len(bin)%4) % 4

	length := 12 + 8 + len(js) + padJSON
	if len(bin) > 0 {
		length += 8 + len(bin) + padBIN
	}

	var buf bytes.Buffer
	buf.Grow(length)
	writeU32 := func(v uint32) {
		_ = binary.Write(&buf, binary.LittleEndian, v)
	}
	writeU32(glbMagic)
	writeU32(glbVersion)
	writeU32(uint32(length))

	writeU32(uint32(len(js) + padJSON))
	writeU32(chunkJSON)
	buf.Write(js)
	buf.Write(bytes.Repeat([]byte{' '}, padJSON))

	if len(bin) > 0 {
		writeU32(uint32(len(bin) + padBIN))
		writeU32(chunkBIN)
		buf.Write(bin)
		buf.Write(make([]byte, padBIN))
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// EncodeGLB packs the builder state. Packing the same state twice yields
// identical bytes.
func (b *Builder) EncodeGLB() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	var buf bytes.Buffer
	if err := WriteGLB(&buf, b.Document(), b.Bin()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveGLB writes the builder state to path.
func (b *Builder) SaveGLB(path string) error {
	data, err := b.EncodeGLB()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
