// Package ir implements the procedure-structured linear three-address code
// this front end lowers a checked AST into: a flat list of labeled quads
// per procedure, an operand universe of symbol/temporary/address/literal/
// string references, and a text rendering matching the source project's
// quad-dump format.
package ir

import (
	"fmt"
	"strings"

	"cronac/internal/symbols"
	"cronac/internal/types"
)

// Label names a quad position a Jmp/JmpIf can target.
type Label struct{ name string }

func (l *Label) String() string { return l.name }

// Operand is any value a quad reads or writes.
type Operand interface {
	// ValString is the operand's value-position rendering: bracketed for
	// anything with a storage location, bare for a literal.
	ValString() string
	// LocString is the operand's bare name, used where a quad needs the
	// location itself rather than its contents (an IndexQuad's
	// destination and source, a formal/local/temp declaration line).
	// Calling it on a LitOperand is an internal invariant violation: a
	// constant has no location.
	LocString() string
	Width() uint32
}

// SymOperand refers to a declared variable (local, formal, or global).
type SymOperand struct {
	Sym   *symbols.Symbol
	width uint32
}

func (o *SymOperand) ValString() string { return "[" + o.Sym.Name + "]" }
func (o *SymOperand) LocString() string { return o.Sym.Name }
func (o *SymOperand) Width() uint32     { return o.width }

// AuxOperand is a compiler-generated scalar temporary ("varTmpN").
type AuxOperand struct {
	Name  string
	width uint32
}

func (o *AuxOperand) ValString() string { return "[" + o.Name + "]" }
func (o *AuxOperand) LocString() string { return o.Name }
func (o *AuxOperand) Width() uint32     { return o.width }

// AddrOperand is a compiler-generated address temporary ("addrTmpN"),
// produced by flattening an array index.
type AddrOperand struct {
	Name  string
	width uint32
}

func (o *AddrOperand) ValString() string { return "[" + o.Name + "]" }
func (o *AddrOperand) LocString() string { return o.Name }
func (o *AddrOperand) Width() uint32     { return o.width }

// LitOperand is an immediate constant.
type LitOperand struct {
	Val   string
	width uint32
}

func (o *LitOperand) ValString() string { return o.Val }
func (o *LitOperand) LocString() string {
	panic("ir: literal operand has no location")
}
func (o *LitOperand) Width() uint32 { return o.width }

// NewLit builds an immediate constant of the given storage width.
func NewLit(val string, width uint32) *LitOperand {
	return &LitOperand{Val: val, width: width}
}

// StrOperand refers to a string literal interned into the program's string
// pool; it renders like an address operand but also carries the text so a
// later backend can emit the pool's data section.
type StrOperand struct {
	Name  string
	Value string
}

func (o *StrOperand) ValString() string { return "[" + o.Name + "]" }
func (o *StrOperand) LocString() string { return o.Name }
func (o *StrOperand) Width() uint32     { return 8 }

// Kind discriminates the closed set of quad forms this language lowers to.
type Kind uint8

const (
	KEnter Kind = iota
	KLeave
	KAssign
	KBinOp
	KUnaryOp
	KIndex
	KJmp
	KJmpIf
	KNop
	KCall
	KSetArg
	KGetArg
	KSetRet
	KGetRet
	KRead
	KWrite
	KHavoc
)

// BinOp is a two-operand opcode; width is baked into the opcode itself
// (the `8`/`64` suffix), per the width-selection rule.
type BinOp uint8

const (
	Add64 BinOp = iota
	Sub64
	Div64
	Mult64
	Eq64
	Neq64
	Lt64
	Gt64
	Lte64
	Gte64
	Add8
	Sub8
	Div8
	Mult8
	Eq8
	Neq8
	Lt8
	Gt8
	Lte8
	Gte8
	Or8
	And8
)

func (b BinOp) String() string {
	switch b {
	case Add64:
		return "ADD64"
	case Sub64:
		return "SUB64"
	case Div64:
		return "DIV64"
	case Mult64:
		return "MULT64"
	case Eq64:
		return "EQ64"
	case Neq64:
		return "NEQ64"
	case Lt64:
		return "LT64"
	case Gt64:
		return "GT64"
	case Lte64:
		return "LTE64"
	case Gte64:
		return "GTE64"
	case Add8:
		return "ADD8"
	case Sub8:
		return "SUB8"
	case Div8:
		return "DIV8"
	case Mult8:
		return "MULT8"
	case Eq8:
		return "EQ8"
	case Neq8:
		return "NEQ8"
	case Lt8:
		return "LT8"
	case Gt8:
		return "GT8"
	case Lte8:
		return "LTE8"
	case Gte8:
		return "GTE8"
	case Or8:
		return "OR8"
	case And8:
		return "AND8"
	default:
		return "?"
	}
}

// UnaryOp is a single-operand opcode.
type UnaryOp uint8

const (
	Neg64 UnaryOp = iota
	Not8
)

func (u UnaryOp) String() string {
	if u == Neg64 {
		return "NEG64"
	}
	return "NOT8"
}

// Quad is one instruction: a tagged union over Kind, carrying only the
// fields its kind uses. Unused fields are simply zero.
type Quad struct {
	Kind    Kind
	Labels  []*Label
	Comment string

	Dst    Operand
	Src    Operand
	Src2   Operand
	Cond   Operand
	Offset Operand

	BinOp   BinOp
	UnaryOp UnaryOp
	Target  *Label
	Index   int
	Callee  string
	Proc    string

	// SemType is the checked type of the value a Read/Write quad moves,
	// recorded for a backend to pick the right I/O routine; it plays no
	// part in the text rendering.
	SemType types.TypeID
}

// AddLabel attaches l as a target for this quad's position.
func (q *Quad) AddLabel(l *Label) {
	if l != nil {
		q.Labels = append(q.Labels, l)
	}
}

// repr renders the instruction body, before the label/column prefix.
func (q *Quad) repr() string {
	switch q.Kind {
	case KEnter:
		return "enter " + q.Proc
	case KLeave:
		return "leave " + q.Proc
	case KAssign:
		return q.Dst.ValString() + " := " + q.Src.ValString()
	case KBinOp:
		return q.Dst.ValString() + " := " + q.Src.ValString() + " " + q.BinOp.String() + " " + q.Src2.ValString()
	case KUnaryOp:
		return q.Dst.ValString() + " := " + q.UnaryOp.String() + " " + q.Src.ValString()
	case KIndex:
		return q.Dst.LocString() + " := " + q.Src.LocString() + " ADD64 " + q.Offset.ValString()
	case KJmp:
		return "goto " + q.Target.String()
	case KJmpIf:
		return "IFZ " + q.Cond.ValString() + " GOTO " + q.Target.String()
	case KNop:
		return "nop"
	case KCall:
		return "call " + q.Callee
	case KSetArg:
		return fmt.Sprintf("setarg %d %s", q.Index, q.Src.ValString())
	case KGetArg:
		return fmt.Sprintf("getarg %d %s", q.Index, q.Dst.ValString())
	case KSetRet:
		return "setret " + q.Src.ValString()
	case KGetRet:
		return "getret " + q.Dst.ValString()
	case KRead:
		return "READ " + q.Dst.ValString()
	case KWrite:
		return "WRITE " + q.Src.ValString()
	case KHavoc:
		return "HAVOC " + q.Dst.ValString()
	default:
		return "?"
	}
}

const labelColumn = 12

// String renders the quad the way the source project's Quad::toString
// does: comma-joined labels left-padded to a fixed column, then repr().
func (q *Quad) String() string {
	var b strings.Builder
	for i, l := range q.Labels {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(l.String())
	}
	if len(q.Labels) > 0 {
		b.WriteString(": ")
	} else {
		b.WriteString("  ")
	}
	if b.Len() < labelColumn {
		b.WriteString(strings.Repeat(" ", labelColumn-b.Len()))
	}
	b.WriteString(q.repr())
	return b.String()
}
