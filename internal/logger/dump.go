package logger

import "github.com/davecgh/go-spew/spew"

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	MaxDepth:                6,
}

// SDump renders values for debug output.
func SDump(a ...interface{}) string {
	return spewConfig.Sdump(a...)
}
