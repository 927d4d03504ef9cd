package cube

import "testing"

func TestCheckFaceTables(t *testing.T) {
	if err := CheckFaceTables(); err != nil {
		t.Fatalf("face tables inconsistent with geometry: %v", err)
	}
}

func TestCheckFaceTables_DetectsBrokenCycle(t *testing.T) {
	saved := faceTables[R]
	defer func() { faceTables[R] = saved }()

	faceTables[R].edges = [4]int{1, 9, 5, 4} // UR, DR, RB, FR: not rotational order
	if err := CheckFaceTables(); err == nil {
		t.Fatal("expected an error for an out-of-order cycle")
	}

	faceTables[R] = saved
	faceTables[R].corners = [4]int{0, 1, 5, 6} // DBL is not on R
	if err := CheckFaceTables(); err == nil {
		t.Fatal("expected an error for an off-face slot")
	}
}

func TestQuarterTurn_PreservesFaceSlots(t *testing.T) {
	for _, f := range Faces {
		rot := quarterTurn(f)
		for i, p := range edgePositions {
			if !onFace(p, faceAxes[f]) {
				continue
			}
			j, ok := locate(p.Rotate(rot), edgePositions[:])
			if !ok || !onFace(edgePositions[j], faceAxes[f]) {
				t.Errorf("face %s: edge %d left the face", f, i)
			}
		}
	}
}
