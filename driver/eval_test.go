package driver

import (
	"errors"
	"testing"

	"github.com/fuzzyrat/fuzzyrat/opcode"
)

// seqSource replays a fixed sequence: each call returns the next element
// modulo the sequence length, clamped to [low, high].
type seqSource struct {
	seq []int
	i   int
}

func (s *seqSource) Generate(low, high int) int {
	v := s.seq[s.i%len(s.seq)]
	s.i++
	if v < low {
		v = low
	}
	if v > high {
		v = high
	}
	return v
}

func chain(ops ...opcode.OpCode) opcode.OpCode {
	for i := 0; i < len(ops)-1; i++ {
		ops[i].SetNext(ops[i+1])
	}
	return ops[0]
}

func TestEval_CharChain(t *testing.T) {
	unit := opcode.NewCompiledUnit(0, []opcode.OpCode{
		chain(
			&opcode.CharOp{Code: 'h'},
			&opcode.EmptyOp{},
			&opcode.CharOp{Code: 'i'},
			&opcode.RetOp{},
		),
	})
	out, err := Eval(unit, &seqSource{seq: []int{0}})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "hi" {
		t.Fatalf("unexpected output; want: %q, got: %q", "hi", string(out))
	}
}

func TestEval_AnyClampsToPrintableRange(t *testing.T) {
	unit := opcode.NewCompiledUnit(0, []opcode.OpCode{
		chain(&opcode.AnyOp{}, &opcode.AnyOp{}, &opcode.RetOp{}),
	})
	out, err := Eval(unit, &seqSource{seq: []int{0, 1000}})
	if err != nil {
		t.Fatal(err)
	}
	if out[0] != 32 || out[1] != 126 {
		t.Fatalf("draws must be clamped into [32, 126]; got: %v", out)
	}
}

func TestEval_CharSetLookup(t *testing.T) {
	m := &opcode.AsciiMap{}
	for _, c := range []byte{'x', 'y', 'z'} {
		if err := m.Add(c); err != nil {
			t.Fatal(err)
		}
	}
	unit := opcode.NewCompiledUnit(0, []opcode.OpCode{
		chain(
			&opcode.CharSetOp{Map: m},
			&opcode.CharSetOp{Map: m},
			&opcode.CharSetOp{Map: m},
			&opcode.RetOp{},
		),
	})
	out, err := Eval(unit, &seqSource{seq: []int{2, 0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "zxy" {
		t.Fatalf("unexpected output; want: %q, got: %q", "zxy", string(out))
	}
}

func TestEval_AltSelectsArm(t *testing.T) {
	join := &opcode.EmptyOp{}
	armA := chain(&opcode.CharOp{Code: 'a'}, join)
	armB := chain(&opcode.CharOp{Code: 'b'}, join)
	alt := &opcode.AltOp{Arms: []opcode.OpCode{armA, armB}}
	chain(join, &opcode.RetOp{})
	unit := opcode.NewCompiledUnit(0, []opcode.OpCode{alt})

	for draw, want := range map[int]string{0: "a", 1: "b"} {
		out, err := Eval(unit, &seqSource{seq: []int{draw}})
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != want {
			t.Fatalf("unexpected output for draw %v; want: %q, got: %q", draw, want, string(out))
		}
	}
}

func TestEval_CallAndRet(t *testing.T) {
	// 0: 'x' Call(1) 'z' Ret; 1: 'y' Ret
	unit := opcode.NewCompiledUnit(0, []opcode.OpCode{
		chain(
			&opcode.CharOp{Code: 'x'},
			&opcode.CallOp{ProdID: 1},
			&opcode.CharOp{Code: 'z'},
			&opcode.RetOp{},
		),
		chain(&opcode.CharOp{Code: 'y'}, &opcode.RetOp{}),
	})
	out, err := Eval(unit, &seqSource{seq: []int{0}})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "xyz" {
		t.Fatalf("unexpected output; want: %q, got: %q", "xyz", string(out))
	}
}

func TestEval_StackLimit(t *testing.T) {
	// 0: 'a' Call(0) Ret — the recursion never terminates, so the return
	// stack must hit its ceiling.
	unit := opcode.NewCompiledUnit(0, []opcode.OpCode{
		chain(
			&opcode.CharOp{Code: 'a'},
			&opcode.CallOp{ProdID: 0},
			&opcode.RetOp{},
		),
	})
	_, err := Eval(unit, &seqSource{seq: []int{0}})
	if !errors.Is(err, ErrStackLimit) {
		t.Fatalf("expected ErrStackLimit; got: %v", err)
	}
}

func TestDefaultRandSource_StaysInRange(t *testing.T) {
	src := NewDefaultRandSource()
	for i := 0; i < 1000; i++ {
		v := src.Generate(5, 7)
		if v < 5 || v > 7 {
			t.Fatalf("draw out of range: %v", v)
		}
	}
	if v := src.Generate(3, 3); v != 3 {
		t.Fatalf("a singleton range must return its only member; got: %v", v)
	}
}
