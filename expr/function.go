// SPDX-License-Identifier: MIT

package expr

import "fmt"

// instr is one tape step: slots[dst] = op(slots[x], slots[y]).
type instr struct {
	op     Op
	x, y   int
	dst    int
	binary bool
}

type constSlot struct {
	slot  int
	value float64
}

// Function is a compiled, reusable graph with declared inputs and outputs.
// It is immutable after Compile and safe for concurrent use.
type Function struct {
	name   string
	arity  []int       // length of each input group
	nSlots int         // inputs, constants and intermediates
	consts []constSlot // preloaded constant slots
	code   []instr     // topologically ordered
	outs   []int       // slot of each output
}

// Compile linearises outputs into an instruction tape whose free variables are
// exactly the symbols listed in inputs (grouped, e.g. coefficients and a parameter).
//
// Implementation:
//   - Stage 1: assign input slots group by group; reject duplicated symbols.
//   - Stage 2: post-order walk from every output, giving each shared subgraph one slot.
//   - Stage 3: record output slots.
//
// Errors:
//   - ErrNilNode (nil output), ErrUnboundSymbol (free symbol not declared), ErrArity (duplicate input).
//
// Complexity:
//   - Time/Space O(|graph|).
func Compile(name string, inputs [][]*Symbol, outputs []Node) (*Function, error) {
	f := &Function{name: name, arity: make([]int, len(inputs))}
	slotOf := make(map[Node]int)

	for g, group := range inputs {
		f.arity[g] = len(group)
		for _, s := range group {
			if _, dup := slotOf[s]; dup {
				return nil, fmt.Errorf("Compile %s: duplicate input %q: %w", name, s.name, ErrArity)
			}
			slotOf[s] = f.nSlots
			f.nSlots++
		}
	}

	var visit func(n Node) (int, error)
	visit = func(n Node) (int, error) {
		if n == nil {
			return 0, ErrNilNode
		}
		if s, ok := slotOf[n]; ok {
			return s, nil
		}
		switch v := n.(type) {
		case Const:
			slot := f.nSlots
			f.nSlots++
			f.consts = append(f.consts, constSlot{slot: slot, value: float64(v)})
			slotOf[n] = slot

			return slot, nil
		case *Symbol:
			return 0, fmt.Errorf("Compile %s: symbol %q: %w", name, v.name, ErrUnboundSymbol)
		case *Operation:
			x, err := visit(v.x)
			if err != nil {
				return 0, err
			}
			in := instr{op: v.op, x: x, binary: !v.op.unary()}
			if in.binary {
				if in.y, err = visit(v.y); err != nil {
					return 0, err
				}
			}
			in.dst = f.nSlots
			f.nSlots++
			f.code = append(f.code, in)
			slotOf[n] = in.dst

			return in.dst, nil
		}

		return 0, ErrNilNode
	}

	f.outs = make([]int, len(outputs))
	for i, out := range outputs {
		slot, err := visit(out)
		if err != nil {
			return nil, fmt.Errorf("Compile %s: output %d: %w", name, i, err)
		}
		f.outs[i] = slot
	}

	return f, nil
}

// Name returns the name given at compile time.
func (f *Function) Name() string { return f.name }

// NumOutputs returns the number of outputs.
func (f *Function) NumOutputs() int { return len(f.outs) }

// Arity returns a copy of the input group lengths.
func (f *Function) Arity() []int { return append([]int(nil), f.arity...) }

// Size returns the number of tape instructions.
func (f *Function) Size() int { return len(f.code) }

func (f *Function) checkArity(lengths []int) error {
	if len(lengths) != len(f.arity) {
		return fmt.Errorf("%s: got %d argument groups, want %d: %w", f.name, len(lengths), len(f.arity), ErrArity)
	}
	for g, n := range lengths {
		if n != f.arity[g] {
			return fmt.Errorf("%s: argument %d has length %d, want %d: %w", f.name, g, n, f.arity[g], ErrArity)
		}
	}

	return nil
}

// Call replays the tape numerically.
func (f *Function) Call(args ...[]float64) ([]float64, error) {
	lengths := make([]int, len(args))
	for i, a := range args {
		lengths[i] = len(a)
	}
	if err := f.checkArity(lengths); err != nil {
		return nil, err
	}

	slots := make([]float64, f.nSlots)
	k := 0
	for _, a := range args {
		k += copy(slots[k:], a)
	}
	for _, c := range f.consts {
		slots[c.slot] = c.value
	}
	for _, in := range f.code {
		var y float64
		if in.binary {
			y = slots[in.y]
		}
		slots[in.dst] = evalOp(in.op, slots[in.x], y)
	}

	out := make([]float64, len(f.outs))
	for i, s := range f.outs {
		out[i] = slots[s]
	}

	return out, nil
}

// Apply replays the tape over nodes, specialising the function for symbolic
// (or mixed) arguments. Fully constant arguments produce constant outputs.
func (f *Function) Apply(args ...[]Node) ([]Node, error) {
	lengths := make([]int, len(args))
	for i, a := range args {
		lengths[i] = len(a)
	}
	if err := f.checkArity(lengths); err != nil {
		return nil, err
	}

	slots := make([]Node, f.nSlots)
	k := 0
	for _, a := range args {
		for _, n := range a {
			if n == nil {
				return nil, fmt.Errorf("%s: %w", f.name, ErrNilNode)
			}
		}
		k += copy(slots[k:], a)
	}
	for _, c := range f.consts {
		slots[c.slot] = Const(c.value)
	}
	for _, in := range f.code {
		var y Node
		if in.binary {
			y = slots[in.y]
		}
		slots[in.dst] = build(in.op, slots[in.x], y)
	}

	out := make([]Node, len(f.outs))
	for i, s := range f.outs {
		out[i] = slots[s]
	}

	return out, nil
}
