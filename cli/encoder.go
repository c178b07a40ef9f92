package cli

import (
	"bytes"
	"io"
	"math"
	"strconv"

	"github.com/bvald/jvq"
)

var (
	resetColor     = []byte("\x1b[0m")
	nullColor      = []byte("\x1b[90m")
	boolColor      = []byte("\x1b[33m")
	numberColor    = []byte("\x1b[36m")
	stringColor    = []byte("\x1b[32m")
	objectKeyColor = []byte("\x1b[34;1m")
)

// encoder pretty-prints values with optional indentation and ANSI
// colors. With colors off, indent 0 and tab off the output matches
// jvq.Marshal.
type encoder struct {
	w      *bytes.Buffer
	colors bool
	tab    bool
	indent int
	depth  int
	buf    [64]byte
}

func newEncoder(colors, tab bool, indent int) *encoder {
	return &encoder{w: new(bytes.Buffer), colors: colors, tab: tab, indent: indent}
}

func (e *encoder) marshal(v *jvq.Value, w io.Writer) error {
	e.encode(v)
	_, err := w.Write(e.w.Bytes())
	e.w.Reset()
	return err
}

func (e *encoder) setColor(color []byte) {
	if e.colors {
		e.w.Write(color)
	}
}

func (e *encoder) unsetColor() {
	if e.colors {
		e.w.Write(resetColor)
	}
}

func (e *encoder) encode(v *jvq.Value) {
	switch v.Kind() {
	case jvq.KindNull:
		e.setColor(nullColor)
		e.w.WriteString("null")
		e.unsetColor()
	case jvq.KindBool:
		e.setColor(boolColor)
		if v.Bool() {
			e.w.WriteString("true")
		} else {
			e.w.WriteString("false")
		}
		e.unsetColor()
	case jvq.KindNumber:
		e.setColor(numberColor)
		e.encodeNumber(v)
		e.unsetColor()
	case jvq.KindString:
		e.setColor(stringColor)
		e.encodeString(v.Str())
		e.unsetColor()
	case jvq.KindArray:
		e.encodeArray(v)
	case jvq.KindObject:
		e.encodeObject(v)
	}
}

func (e *encoder) encodeNumber(v *jvq.Value) {
	if v.IsInteger() {
		e.w.Write(strconv.AppendInt(e.buf[:0], v.AsInteger(), 10))
		return
	}
	f := v.Num()
	if math.IsNaN(f) {
		e.w.WriteString("null")
		return
	}
	if f >= math.MaxFloat64 {
		f = math.MaxFloat64
	} else if f <= -math.MaxFloat64 {
		f = -math.MaxFloat64
	}
	format := byte('f')
	if x := math.Abs(f); x != 0 && x < 1e-6 || x >= 1e21 {
		format = 'e'
	}
	buf := strconv.AppendFloat(e.buf[:0], f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		if n := len(buf); n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
	}
	e.w.Write(buf)
}

func (e *encoder) encodeString(s string) {
	e.w.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			e.w.WriteString(`\"`)
		case '\\':
			e.w.WriteString(`\\`)
		case '\n':
			e.w.WriteString(`\n`)
		case '\r':
			e.w.WriteString(`\r`)
		case '\t':
			e.w.WriteString(`\t`)
		default:
			e.w.WriteByte(s[i])
		}
	}
	e.w.WriteByte('"')
}

func (e *encoder) encodeArray(v *jvq.Value) {
	e.w.WriteByte('[')
	e.depth++
	for i, elem := range v.ArrayElems() {
		if i > 0 {
			e.w.WriteByte(',')
		}
		e.writeIndent()
		e.encode(elem)
	}
	e.depth--
	if v.ArrayLen() > 0 {
		e.writeIndent()
	}
	e.w.WriteByte(']')
}

func (e *encoder) encodeObject(v *jvq.Value) {
	e.w.WriteByte('{')
	e.depth++
	first := true
	v.ObjectEach(func(key string, elem *jvq.Value) bool {
		if !first {
			e.w.WriteByte(',')
		}
		first = false
		e.writeIndent()
		e.setColor(objectKeyColor)
		e.encodeString(key)
		e.unsetColor()
		e.w.WriteByte(':')
		if e.tab || e.indent > 0 {
			e.w.WriteByte(' ')
		}
		e.encode(elem)
		return true
	})
	e.depth--
	if v.ObjectLen() > 0 {
		e.writeIndent()
	}
	e.w.WriteByte('}')
}

func (e *encoder) writeIndent() {
	if e.tab {
		e.w.WriteByte('\n')
		for i := 0; i < e.depth; i++ {
			e.w.WriteByte('\t')
		}
	} else if e.indent > 0 {
		e.w.WriteByte('\n')
		for i := 0; i < e.depth*e.indent; i++ {
			e.w.WriteByte(' ')
		}
	}
}
