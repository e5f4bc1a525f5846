package object_test

import (
	"fmt"
	"regexp"
	"time"

	"riveter/object"
)

func ExampleKindOf() {
	fmt.Println(object.KindOf("text"))
	fmt.Println(object.KindOf([]any{1, 2}))
	fmt.Println(object.KindOf(object.New()))
	fmt.Println(object.KindOf(object.Func(nil)))
	fmt.Println(object.KindOf(time.Time{}))
	fmt.Println(object.KindOf(regexp.MustCompile(`\d+`)))
	fmt.Println(object.KindOf(struct{}{}))
	fmt.Println(object.KindEnum(0))
	// Output:
	// KindScalar
	// KindSequence
	// KindMapping
	// KindFunction
	// KindDate
	// KindPattern
	// KindOpaque
	// KindEnum(0)
}
