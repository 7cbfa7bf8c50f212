package ir

import (
	"strings"
	"testing"

	"cronac/internal/symbols"
)

func TestAssignQuadRendering(t *testing.T) {
	prog := NewProgram()
	proc := prog.MakeProc("main")
	a := proc.GatherLocal(&symbols.Symbol{Name: "a", Kind: symbols.KindVar}, 1)

	q := &Quad{Kind: KAssign, Dst: a, Src: &LitOperand{Val: "1", width: 1}}
	proc.AddQuad(q)

	got := strings.TrimSpace(q.String())
	want := "[a] := 1"
	if !strings.HasSuffix(got, want) {
		t.Fatalf("got %q, want suffix %q", got, want)
	}
}

func TestBinOpQuadRendering(t *testing.T) {
	prog := NewProgram()
	proc := prog.MakeProc("main")
	dst := proc.MakeTmp(1)

	q := &Quad{
		Kind: KBinOp, Dst: dst, BinOp: Add8,
		Src:  &LitOperand{Val: "1", width: 1},
		Src2: &LitOperand{Val: "2", width: 1},
	}
	got := strings.TrimSpace(q.String())
	want := "[varTmp0] := 1 ADD8 2"
	if !strings.HasSuffix(got, want) {
		t.Fatalf("got %q, want suffix %q", got, want)
	}
}

func TestIndexQuadUsesLocStringForDestAndSrc(t *testing.T) {
	prog := NewProgram()
	proc := prog.MakeProc("main")
	arr := proc.GatherLocal(&symbols.Symbol{Name: "arr", Kind: symbols.KindVar}, 32)
	addr := proc.MakeAddr(8)
	off := proc.MakeTmp(8)

	q := &Quad{Kind: KIndex, Dst: addr, Src: arr, Offset: off}
	got := strings.TrimSpace(q.String())
	want := "addrTmp0 := arr ADD64 [varTmp1]"
	if !strings.HasSuffix(got, want) {
		t.Fatalf("got %q, want suffix %q", got, want)
	}
}

func TestJmpIfQuadRendering(t *testing.T) {
	prog := NewProgram()
	lbl := prog.MakeLabel()
	cond := &AuxOperand{Name: "varTmp0", width: 1}

	q := &Quad{Kind: KJmpIf, Cond: cond, Target: lbl}
	got := strings.TrimSpace(q.String())
	want := "IFZ [varTmp0] GOTO " + lbl.String()
	if !strings.HasSuffix(got, want) {
		t.Fatalf("got %q, want suffix %q", got, want)
	}
}

func TestLabelsAreProgramUnique(t *testing.T) {
	prog := NewProgram()
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		l := prog.MakeLabel()
		if seen[l.String()] {
			t.Fatalf("label %q generated twice", l.String())
		}
		seen[l.String()] = true
	}
}

func TestMainProcedureEntersAtReservedLabel(t *testing.T) {
	prog := NewProgram()
	main := prog.MakeProc("main")
	other := prog.MakeProc("helper")

	if main.EnterLabel() != "main" {
		t.Fatalf("got %q, want \"main\"", main.EnterLabel())
	}
	if other.EnterLabel() != "fun_helper" {
		t.Fatalf("got %q, want \"fun_helper\"", other.EnterLabel())
	}
}

func TestEveryProcedureHasExactlyOneLeaveQuadInRendering(t *testing.T) {
	prog := NewProgram()
	proc := prog.MakeProc("main")
	proc.AddQuad(&Quad{Kind: KNop})

	rendered := proc.String()
	if strings.Count(rendered, "leave main") != 1 {
		t.Fatalf("expected exactly one leave quad, got:\n%s", rendered)
	}
}

func TestStringPoolDedupesIdenticalLiterals(t *testing.T) {
	prog := NewProgram()
	a := prog.MakeString("hello")
	b := prog.MakeString("hello")
	c := prog.MakeString("world")

	if a != b {
		t.Fatal("identical string literals should intern to the same operand")
	}
	if a == c {
		t.Fatal("distinct string literals must not share an operand")
	}
	if a.Name == c.Name {
		t.Fatal("distinct pool entries must have distinct names")
	}
}
