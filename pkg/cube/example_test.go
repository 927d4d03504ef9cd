package cube_test

import (
	"fmt"

	"github.com/gitrdm/cubeq/pkg/cube"
)

// ExampleApplySequence scrambles the edge orientation with one F turn and
// shows that F' restores the solved state.
func ExampleApplySequence() {
	s, err := cube.ApplySequence(cube.Solved(), []string{"R", "F"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(cube.EncodeEdgeOrientation(s))

	moves, _ := cube.ParseSequence("R F")
	back := cube.ApplyMoves(s, cube.InvertSequence(moves))
	fmt.Println(cube.FormatSequence(cube.InvertSequence(moves)), back.IsSolved())
	// Output:
	// [1 0 0 0 1 0 0 1 1 0 0 0]
	// F' R' true
}

func ExampleDecodeCornerOrientation() {
	s := cube.Solved()
	cube.DecodeCornerOrientation([8]int{1, 1, 0, 0, 0, 0, 0, 0}, &s)
	fmt.Println(s.CornerOrient)
	// Output:
	// [1 1 0 0 0 0 0 1]
}
