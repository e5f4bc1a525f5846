package object

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                8,
}

// Dump renders v for debugging. Objects are rendered slot by slot in
// insertion order with their prototype chain depth.
func Dump(v any) string {
	o, ok := v.(*Object)
	if !ok {
		return dumper.Sdump(v)
	}

	var b strings.Builder
	for depth, link := range o.Chain() {
		fmt.Fprintf(&b, "%s[%d]\n", strings.Repeat("  ", depth), depth)
		for k, val := range link.All() {
			fmt.Fprintf(&b, "%s%s: %s", strings.Repeat("  ", depth+1), k, describe(val))
		}
	}

	return b.String()
}

func describe(v any) string {
	switch KindOf(v) {
	case KindFunction:
		return "<func>\n"
	case KindMapping:
		if o, ok := v.(*Object); ok {
			return fmt.Sprintf("<object %d slots>\n", o.Len())
		}
	}

	return dumper.Sdump(v)
}
