package selection_test

import (
	"fmt"

	"github.com/agbru/fastmath/internal/selection"
)

func ExampleSelector_Select() {
	work := []float64{5, 3, 8, 1, 9, 2}
	sel := selection.New(selection.MedianOf3{})
	fmt.Println(sel.Select(work, nil, 2))
	// Output:
	// 3
}

// ExampleNewPivotCache answers several ranks against one array, reusing the
// partitions of earlier queries.
func ExampleNewPivotCache() {
	work := make([]float64, 100)
	for i := range work {
		work[i] = float64(99 - i)
	}
	pivots := selection.NewPivotCache(4)
	sel := selection.New(selection.Central{})

	for _, k := range []int{10, 50, 90} {
		fmt.Println(sel.Select(work, pivots, k))
	}
	// Output:
	// 10
	// 50
	// 90
}

func ExampleFactory_List() {
	fmt.Println(selection.NewDefaultFactory(1).List())
	// Output:
	// [central median3 random]
}
