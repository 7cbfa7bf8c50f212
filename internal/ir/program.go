package ir

import (
	"fmt"
	"strings"

	"cronac/internal/symbols"
)

// Program is the lowering output for one compiled file: its procedures,
// global variables, and interned string pool.
type Program struct {
	Procs []*Procedure

	globals     []*SymOperand
	globalBy    map[*symbols.Symbol]*SymOperand
	Strings     []*StrOperand
	nextLabel   int
	nextStrIdx  int
}

// NewProgram constructs an empty lowering target.
func NewProgram() *Program {
	return &Program{globalBy: make(map[*symbols.Symbol]*SymOperand)}
}

// MakeProc starts a new procedure named name and appends it to Procs.
func (p *Program) MakeProc(name string) *Procedure {
	proc := newProcedure(p, name)
	p.Procs = append(p.Procs, proc)
	return proc
}

// MakeLabel mints a new program-unique label, named sequentially ("lbl0",
// "lbl1", ...) independent of which procedure requested it.
func (p *Program) MakeLabel() *Label {
	l := &Label{name: fmt.Sprintf("lbl%d", p.nextLabel)}
	p.nextLabel++
	return l
}

// MakeString interns val into the string pool and returns its operand,
// reusing the same operand for an identical literal seen twice.
func (p *Program) MakeString(val string) *StrOperand {
	for _, s := range p.Strings {
		if s.Value == val {
			return s
		}
	}
	s := &StrOperand{Name: fmt.Sprintf("str%d", p.nextStrIdx), Value: val}
	p.nextStrIdx++
	p.Strings = append(p.Strings, s)
	return s
}

// GatherGlobal registers sym as a module-level variable with the given
// storage width and returns its operand.
func (p *Program) GatherGlobal(sym *symbols.Symbol, width uint32) *SymOperand {
	o := &SymOperand{Sym: sym, width: width}
	p.globals = append(p.globals, o)
	p.globalBy[sym] = o
	return o
}

func (p *Program) globalOperand(sym *symbols.Symbol) (*SymOperand, bool) {
	o, ok := p.globalBy[sym]
	return o, ok
}

// String renders every procedure in declaration order.
func (p *Program) String() string {
	var b strings.Builder
	for i, proc := range p.Procs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(proc.String())
	}
	return b.String()
}
