package jvq

// Run executes the program against input and returns the output stream.
// Outputs accumulated before a runtime failure are discarded.
func (p *Program) Run(input *Value) ([]*Value, error) {
	var outputs []*Value
	err := p.execute(input, func(v *Value) {
		outputs = append(outputs, v)
	})
	if err != nil {
		return nil, err
	}
	return outputs, nil
}

// RunWithEmit executes the program, streaming each output to emit in
// order. emit may observe outputs that a later runtime failure would have
// discarded; Run is the buffered form without that caveat.
func (p *Program) RunWithEmit(input *Value, emit func(*Value)) error {
	return p.execute(input, emit)
}

// execute walks the instructions linearly with a single current-value
// register. Reaching the end appends the current value as the final
// output; Iterate ends the walk early after emitting its own outputs.
func (p *Program) execute(input *Value, emit func(*Value)) error {
	current := input
	if current == nil {
		current = Null()
	}
	for pc := 0; pc < len(p.Code); pc++ {
		ins := p.Code[pc]
		debugState(p, pc, current)
		switch ins.Op {
		case OpNop, OpLoadIdentity:
			// current value unchanged

		case OpGetField, OpGetIndexStr:
			if !current.IsObject() {
				current = Null()
			} else {
				current = current.ObjectGet(p.Pool.Strings[ins.A])
			}

		case OpGetIndexNum:
			if !current.IsArray() {
				current = Null()
			} else {
				current = current.ArrayIndex(int(p.Pool.Numbers[ins.A]))
			}

		case OpIterate:
			if !current.IsArray() {
				// non-arrays pass through as a single output
				emit(current)
				return nil
			}
			for _, elem := range current.ArrayElems() {
				emit(elem)
			}
			return nil

		case OpAddConst:
			if !current.IsNumber() {
				current = Null()
			} else {
				current = Number(current.Num() + p.Pool.Numbers[ins.A])
			}

		case OpLength:
			switch current.Kind() {
			case KindString:
				current = Number(float64(len(current.Str())))
			case KindArray:
				current = Number(float64(current.ArrayLen()))
			case KindObject:
				current = Number(float64(current.ObjectLen()))
			default:
				current = Number(0)
			}

		case OpBuiltinCall:
			results, err := callBuiltin(p.Pool.Strings[ins.A], current)
			if err != nil {
				return err
			}
			// first output becomes the current value, the rest go
			// straight to the output stream
			if len(results) == 0 {
				current = Null()
			} else {
				current = results[0]
				for _, extra := range results[1:] {
					emit(extra)
				}
			}

		default:
			return &runtimeError{"Unknown opcode"}
		}
	}
	emit(current)
	return nil
}
