package tables

import "fmt"

func ExampleFormatEntry() {
	fmt.Println(FormatEntry(1.0))
	fmt.Println(FormatEntry(-1.5e-5))
	// Output:
	// +1.0d,
	// -1.5E-5d,
}
