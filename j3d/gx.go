package j3d

import "fmt"

type GXAttr uint32

const (
	AttrPositionMatrixIndex GXAttr = 0
	AttrTex0MatrixIndex     GXAttr = 1
	AttrTex7MatrixIndex     GXAttr = 8
	AttrPosition            GXAttr = 9
	AttrNormal              GXAttr = 10
	AttrColor0              GXAttr = 11
	AttrColor1              GXAttr = 12
	AttrTex0                GXAttr = 13
	AttrTex7                GXAttr = 20
	AttrNBT                 GXAttr = 25
	AttrNull                GXAttr = 0xFF
)

func (a GXAttr) IsMatrixIndex() bool {
	return a <= AttrTex7MatrixIndex
}

func (a GXAttr) IsColor() bool {
	return a == AttrColor0 || a == AttrColor1
}

func (a GXAttr) IsTexCoord() bool {
	return a >= AttrTex0 && a <= AttrTex7
}

func (a GXAttr) String() string {
	switch {
	case a == AttrPositionMatrixIndex:
		return "PNMTXIDX"
	case a.IsMatrixIndex():
		return fmt.Sprintf("TEX%dMTXIDX", a-AttrTex0MatrixIndex)
	case a == AttrPosition:
		return "POS"
	case a == AttrNormal:
		return "NRM"
	case a.IsColor():
		return fmt.Sprintf("CLR%d", a-AttrColor0)
	case a.IsTexCoord():
		return fmt.Sprintf("TEX%d", a-AttrTex0)
	case a == AttrNBT:
		return "NBT"
	case a == AttrNull:
		return "NULL"
	}
	return fmt.Sprintf("ATTR(%d)", uint32(a))
}

// Component data types of non-color attributes.
const (
	CompU8  uint32 = 0
	CompS8  uint32 = 1
	CompU16 uint32 = 2
	CompS16 uint32 = 3
	CompF32 uint32 = 4
)

// Color formats of CLR0/CLR1.
const (
	ColorRGB565 uint32 = 0
	ColorRGB8   uint32 = 1
	ColorRGBX8  uint32 = 2
	ColorRGBA4  uint32 = 3
	ColorRGBA6  uint32 = 4
	ColorRGBA8  uint32 = 5
)

var componentSizes = map[uint32]int{
	CompU8:  1,
	CompS8:  1,
	CompU16: 2,
	CompS16: 2,
	CompF32: 4,
}

var colorSizes = map[uint32]int{
	ColorRGB565: 2,
	ColorRGB8:   3,
	ColorRGBX8:  4,
	ColorRGBA4:  2,
	ColorRGBA6:  3,
	ColorRGBA8:  4,
}

// array attributes of VTX1 in the order of its offset table.
var vertexArrayAttrs = [13]GXAttr{
	AttrPosition, AttrNormal, AttrNBT, AttrColor0, AttrColor1,
	AttrTex0, AttrTex0 + 1, AttrTex0 + 2, AttrTex0 + 3,
	AttrTex0 + 4, AttrTex0 + 5, AttrTex0 + 6, AttrTex7,
}
