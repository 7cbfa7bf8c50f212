package ir

import (
	"fmt"
	"strings"

	"cronac/internal/symbols"
)

// Procedure collects one function's locals, temporaries, and quad stream.
// Enter/Leave are synthesized at construction so MakeLabel/GatherLocal
// calls during lowering always have somewhere to attach.
type Procedure struct {
	Name       string
	prog       *Program
	leaveLabel *Label

	formals    []*SymOperand
	formalBy   map[*symbols.Symbol]*SymOperand
	locals     []*SymOperand
	localBy    map[*symbols.Symbol]*SymOperand
	temps      []*AuxOperand
	addrOpds   []*AddrOperand
	nextTmp    int
	Quads      []*Quad
}

func newProcedure(prog *Program, name string) *Procedure {
	return &Procedure{
		Name:       name,
		prog:       prog,
		leaveLabel: prog.MakeLabel(),
		formalBy:   make(map[*symbols.Symbol]*SymOperand),
		localBy:    make(map[*symbols.Symbol]*SymOperand),
	}
}

// EnterLabel is the label the procedure's Enter quad carries: "main" for
// the entry procedure, "fun_<name>" for every other.
func (p *Procedure) EnterLabel() string {
	if p.Name == "main" {
		return "main"
	}
	return "fun_" + p.Name
}

// LeaveLabel is the single label every Return lowers a Jmp to.
func (p *Procedure) LeaveLabel() *Label { return p.leaveLabel }

// MakeLabel mints a new program-unique label.
func (p *Procedure) MakeLabel() *Label { return p.prog.MakeLabel() }

// GatherFormal registers sym as a formal parameter with the given storage
// width and returns its operand.
func (p *Procedure) GatherFormal(sym *symbols.Symbol, width uint32) *SymOperand {
	o := &SymOperand{Sym: sym, width: width}
	p.formals = append(p.formals, o)
	p.formalBy[sym] = o
	return o
}

// GatherLocal registers sym as a local variable with the given storage
// width and returns its operand.
func (p *Procedure) GatherLocal(sym *symbols.Symbol, width uint32) *SymOperand {
	o := &SymOperand{Sym: sym, width: width}
	p.locals = append(p.locals, o)
	p.localBy[sym] = o
	return o
}

// SymOperand resolves sym to its operand: formal, then local, then the
// program's globals. Returns false if sym is not visible from this
// procedure — an internal invariant failure, since resolve has already
// bound every use to a declared symbol.
func (p *Procedure) SymOperand(sym *symbols.Symbol) (*SymOperand, bool) {
	if o, ok := p.formalBy[sym]; ok {
		return o, true
	}
	if o, ok := p.localBy[sym]; ok {
		return o, true
	}
	return p.prog.globalOperand(sym)
}

// MakeTmp allocates a new scalar temporary ("varTmpN") of the given width.
func (p *Procedure) MakeTmp(width uint32) *AuxOperand {
	name := fmt.Sprintf("varTmp%d", p.nextTmp)
	p.nextTmp++
	o := &AuxOperand{Name: name, width: width}
	p.temps = append(p.temps, o)
	return o
}

// MakeAddr allocates a new address temporary ("addrTmpN") of the given
// width, sharing the same counter as MakeTmp (matching the source
// project's single maxTmp sequence across both temp kinds).
func (p *Procedure) MakeAddr(width uint32) *AddrOperand {
	name := fmt.Sprintf("addrTmp%d", p.nextTmp)
	p.nextTmp++
	o := &AddrOperand{Name: name, width: width}
	p.addrOpds = append(p.addrOpds, o)
	return o
}

// AddQuad appends q to the procedure's body.
func (p *Procedure) AddQuad(q *Quad) { p.Quads = append(p.Quads, q) }

// String renders the procedure the way the source project does: a
// [BEGIN ... LOCALS] block listing every formal/local/temp/addr operand
// with its width, followed by the Enter quad, the body, and the Leave
// quad.
func (p *Procedure) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[BEGIN %s LOCALS]\n", p.Name)
	for _, f := range p.formals {
		fmt.Fprintf(&b, "%s (formal arg of %d bytes)\n", f.Sym.Name, f.width)
	}
	for _, l := range p.locals {
		fmt.Fprintf(&b, "%s (local var of %d bytes)\n", l.Sym.Name, l.width)
	}
	for _, t := range p.temps {
		fmt.Fprintf(&b, "%s (tmp var of %d bytes)\n", t.Name, t.width)
	}
	for _, a := range p.addrOpds {
		fmt.Fprintf(&b, "%s (addr opd of %d bytes)\n", a.Name, a.width)
	}
	fmt.Fprintf(&b, "[END %s LOCALS]\n", p.Name)

	enter := &Quad{Kind: KEnter, Proc: p.Name}
	enter.AddLabel(&Label{name: p.EnterLabel()})
	b.WriteString(enter.String())
	b.WriteString("\n")

	for _, q := range p.Quads {
		b.WriteString(q.String())
		b.WriteString("\n")
	}

	leave := &Quad{Kind: KLeave, Proc: p.Name}
	leave.AddLabel(p.leaveLabel)
	b.WriteString(leave.String())
	b.WriteString("\n")
	return b.String()
}
