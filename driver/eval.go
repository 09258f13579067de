// Package driver runs compiled grammars: it walks the opcode graph with a
// random source and accumulates the produced sentence.
package driver

import (
	"errors"

	"github.com/fuzzyrat/fuzzyrat/opcode"
)

const (
	// maxStackSize bounds the return stack. A grammar whose recursion
	// cannot terminate, such as a left-recursive production, hits the
	// ceiling instead of exhausting memory.
	maxStackSize  = 2 * 1024 * 1024
	initStackSize = 256
	initBufSize   = 16
)

// ErrStackLimit reports unbounded recursion during evaluation.
var ErrStackLimit = errors.New("reach stack size limit")

type evalState struct {
	buffer   []byte
	unit     *opcode.CompiledUnit
	retStack []opcode.OpCode
	rand     RandSource
}

// Eval runs the compiled unit once and returns the generated sentence.
// Evaluation starts from a synthetic call to the start production whose
// return address is the nil sentinel; execution halts when that sentinel
// is popped.
func Eval(unit *opcode.CompiledUnit, rand RandSource) ([]byte, error) {
	st := &evalState{
		buffer:   make([]byte, 0, initBufSize),
		unit:     unit,
		retStack: make([]opcode.OpCode, 0, initStackSize),
		rand:     rand,
	}

	entry := &opcode.CallOp{ProdID: unit.StartID()}
	var code opcode.OpCode = entry
	for code != nil {
		next, err := st.eval(code)
		if err != nil {
			return nil, err
		}
		code = next
	}
	return st.buffer, nil
}

func (st *evalState) eval(code opcode.OpCode) (opcode.OpCode, error) {
	switch code := code.(type) {
	case *opcode.EmptyOp:
		return code.Next(), nil
	case *opcode.AnyOp:
		st.buffer = append(st.buffer, byte(st.rand.Generate(32, 126)))
		return code.Next(), nil
	case *opcode.CharOp:
		st.buffer = append(st.buffer, code.Code)
		return code.Next(), nil
	case *opcode.CharSetOp:
		i := st.rand.Generate(0, code.Map.Population()-1)
		st.buffer = append(st.buffer, code.Map.Lookup(i))
		return code.Next(), nil
	case *opcode.AltOp:
		i := st.rand.Generate(0, len(code.Arms)-1)
		return code.Arms[i], nil
	case *opcode.CallOp:
		if len(st.retStack) >= maxStackSize {
			return nil, ErrStackLimit
		}
		st.retStack = append(st.retStack, code.Next())
		return st.unit.Head(code.ProdID), nil
	case *opcode.RetOp:
		next := st.retStack[len(st.retStack)-1]
		st.retStack = st.retStack[:len(st.retStack)-1]
		return next, nil
	}
	return nil, nil
}
