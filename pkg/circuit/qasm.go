package circuit

import (
	"fmt"
	"strings"
)

// QASM renders the circuit as OpenQASM 3 source.
func (c *Circuit) QASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 3.0;\n")
	sb.WriteString("include \"stdgates.inc\";\n\n")
	for _, r := range c.qregs {
		fmt.Fprintf(&sb, "qubit[%d] %s;\n", r.Size, r.Name)
	}
	for _, r := range c.cregs {
		fmt.Fprintf(&sb, "bit[%d] %s;\n", r.Size, r.Name)
	}
	sb.WriteString("\n")

	q := func(i int) string { return ref(c.qregs, i) }
	for _, g := range c.gates {
		switch g.Kind {
		case X, H, Z:
			fmt.Fprintf(&sb, "%s %s;\n", g.Kind, q(g.Target))
		case MCX:
			args := make([]string, 0, len(g.Controls)+1)
			for _, ctl := range g.Controls {
				args = append(args, q(ctl))
			}
			args = append(args, q(g.Target))
			switch len(g.Controls) {
			case 0:
				fmt.Fprintf(&sb, "x %s;\n", strings.Join(args, ", "))
			case 1:
				fmt.Fprintf(&sb, "cx %s;\n", strings.Join(args, ", "))
			case 2:
				fmt.Fprintf(&sb, "ccx %s;\n", strings.Join(args, ", "))
			default:
				fmt.Fprintf(&sb, "ctrl(%d) @ x %s;\n", len(g.Controls), strings.Join(args, ", "))
			}
		case Measure:
			fmt.Fprintf(&sb, "%s = measure %s;\n", ref(c.cregs, g.Clbit), q(g.Target))
		}
	}
	return sb.String()
}

func ref(regs []Register, i int) string {
	for _, r := range regs {
		if i >= r.Offset && i < r.Offset+r.Size {
			return fmt.Sprintf("%s[%d]", r.Name, i-r.Offset)
		}
	}
	return fmt.Sprintf("$%d", i)
}
