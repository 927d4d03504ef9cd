package cube

import (
	"fmt"
	"math"

	"github.com/westphae/quaternion"
)

/*
	Slot positions use cube-centred coordinates:

	         y (U)
	         |
	         +---- x (R)
	        /
	       z (F)
*/

var cornerPositions = [CornerCount]quaternion.Vec3{
	{X: 1, Y: 1, Z: 1},    // UFR
	{X: 1, Y: 1, Z: -1},   // URB
	{X: -1, Y: 1, Z: -1},  // UBL
	{X: -1, Y: 1, Z: 1},   // ULF
	{X: 1, Y: -1, Z: 1},   // DFR
	{X: 1, Y: -1, Z: -1},  // DRB
	{X: -1, Y: -1, Z: -1}, // DBL
	{X: -1, Y: -1, Z: 1},  // DLF
}

var edgePositions = [EdgeCount]quaternion.Vec3{
	{X: 0, Y: 1, Z: 1},   // UF
	{X: 1, Y: 1, Z: 0},   // UR
	{X: 0, Y: 1, Z: -1},  // UB
	{X: -1, Y: 1, Z: 0},  // UL
	{X: 1, Y: 0, Z: 1},   // FR
	{X: 1, Y: 0, Z: -1},  // RB
	{X: -1, Y: 0, Z: -1}, // BL
	{X: -1, Y: 0, Z: 1},  // LF
	{X: 0, Y: -1, Z: 1},  // DF
	{X: 1, Y: -1, Z: 0},  // DR
	{X: 0, Y: -1, Z: -1}, // DB
	{X: -1, Y: -1, Z: 0}, // DL
}

// faceAxes gives the outward normal of each face.
var faceAxes = [...]quaternion.Vec3{
	U: {Y: 1},
	D: {Y: -1},
	R: {X: 1},
	L: {X: -1},
	F: {Z: 1},
	B: {Z: -1},
}

// quarterTurn returns a 90 degree rotation about the axis of f.
func quarterTurn(f Face) quaternion.Quaternion {
	a := faceAxes[f]
	return quaternion.FromEuler(a.X*math.Pi/2, a.Y*math.Pi/2, a.Z*math.Pi/2)
}

// CheckFaceTables verifies the fixed face tables against cube geometry: each
// corner and edge cycle must hold exactly the slots lying on its face, and a
// quarter rotation about the face normal must carry every slot of a cycle to
// the same-direction neighbour in that cycle.
func CheckFaceTables() error {
	for _, f := range Faces {
		t := faceTables[f]
		rot := quarterTurn(f)
		if err := checkCycle(f, "corner", t.corners, cornerPositions[:], rot); err != nil {
			return err
		}
		if err := checkCycle(f, "edge", t.edges, edgePositions[:], rot); err != nil {
			return err
		}
		for _, e := range t.flips {
			if !onFace(edgePositions[e], faceAxes[f]) {
				return fmt.Errorf("face %s: flipped edge %d is not on the face", f, e)
			}
		}
	}
	return nil
}

func checkCycle(f Face, kind string, cyc [4]int, positions []quaternion.Vec3, rot quaternion.Quaternion) error {
	want := 0
	for _, p := range positions {
		if onFace(p, faceAxes[f]) {
			want++
		}
	}
	if want != len(cyc) {
		return fmt.Errorf("face %s: %d %s slots on face, cycle has %d", f, want, kind, len(cyc))
	}

	direction := 0
	for i, slot := range cyc {
		if !onFace(positions[slot], faceAxes[f]) {
			return fmt.Errorf("face %s: %s slot %d is not on the face", f, kind, slot)
		}
		dst, ok := locate(positions[slot].Rotate(rot), positions)
		if !ok {
			return fmt.Errorf("face %s: %s slot %d rotates off the lattice", f, kind, slot)
		}
		var d int
		switch dst {
		case cyc[(i+1)%4]:
			d = 1
		case cyc[(i+3)%4]:
			d = -1
		default:
			return fmt.Errorf("face %s: %s slot %d rotates to %d, not a cycle neighbour", f, kind, slot, dst)
		}
		if direction == 0 {
			direction = d
		} else if d != direction {
			return fmt.Errorf("face %s: %s cycle %v is not in rotational order", f, kind, cyc)
		}
	}
	return nil
}

func onFace(p, axis quaternion.Vec3) bool {
	return near(p.X*axis.X+p.Y*axis.Y+p.Z*axis.Z, 1)
}

func locate(p quaternion.Vec3, positions []quaternion.Vec3) (int, bool) {
	for i, q := range positions {
		if near(p.X, q.X) && near(p.Y, q.Y) && near(p.Z, q.Z) {
			return i, true
		}
	}
	return -1, false
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
