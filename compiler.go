package jvq

// compiler lowers an AST to a Program. The execution contract is a single
// implicit current value: each emitted instruction transforms it or
// contributes extra outputs.
type compiler struct {
	prog Program
}

func compile(node *Node) (*Program, error) {
	c := &compiler{}
	if err := c.compileNode(node); err != nil {
		return nil, err
	}
	if err := c.prog.Validate(); err != nil {
		return nil, err
	}
	return &c.prog, nil
}

func (c *compiler) emit(op OpCode, a int32) {
	c.prog.Code = append(c.prog.Code, Instruction{Op: op, A: a, B: -1})
}

func (c *compiler) compileNode(node *Node) error {
	if node == nil {
		return &compileError{"Null AST node"}
	}
	switch node.Type {
	case NodeIdentity:
		c.emit(OpLoadIdentity, -1)
		return nil
	case NodeField:
		c.emit(OpGetField, c.prog.Pool.AddString(node.Name))
		return nil
	case NodeIterator:
		c.emit(OpIterate, -1)
		return nil
	case NodeIndex:
		return c.compileIndex(node)
	case NodePipe:
		if len(node.Children) != 2 {
			return &compileError{"Pipe expects 2 children"}
		}
		if err := c.compileNode(node.Children[0]); err != nil {
			return err
		}
		return c.compileNode(node.Children[1])
	case NodeBinaryOp:
		return c.compileBinaryOp(node)
	case NodeFunctionCall:
		if len(node.Children) > 0 {
			return &compileError{"Unsupported AST node type: function call with arguments"}
		}
		c.emit(OpBuiltinCall, c.prog.Pool.AddString(node.Name))
		return nil
	default:
		return &compileError{"Unsupported AST node type: " + node.Type.String()}
	}
}

// compileIndex supports literal subscripts only: a number lowers to
// GetIndexNum, a string to GetIndexStr.
func (c *compiler) compileIndex(node *Node) error {
	if len(node.Children) == 0 {
		return &compileError{"Index node missing child"}
	}
	idx := node.Children[0]
	if idx != nil && idx.Type == NodeLiteral && idx.Literal != nil {
		switch idx.Literal.Kind() {
		case KindNumber:
			c.emit(OpGetIndexNum, c.prog.Pool.AddNumber(idx.Literal.Num()))
			return nil
		case KindString:
			c.emit(OpGetIndexStr, c.prog.Pool.AddString(idx.Literal.Str()))
			return nil
		}
	}
	return &compileError{"Unsupported index expression"}
}

// compileBinaryOp supports `expr + <number literal>` as sugar for
// AddConst; everything else is out of the subset.
func (c *compiler) compileBinaryOp(node *Node) error {
	if node.Op == "+" && len(node.Children) == 2 {
		rhs := node.Children[1]
		if rhs != nil && rhs.Type == NodeLiteral && rhs.Literal != nil &&
			rhs.Literal.IsNumber() {
			if err := c.compileNode(node.Children[0]); err != nil {
				return err
			}
			c.emit(OpAddConst, c.prog.Pool.AddNumber(rhs.Literal.Num()))
			return nil
		}
	}
	return &compileError{"Unsupported binary op"}
}
