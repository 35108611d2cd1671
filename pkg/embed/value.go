package embed

import (
	"slices"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindString
	KindInt
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an option value. The zero Value is Null.
type Value struct {
	kind  Kind
	b     bool
	s     string
	i     int64
	list  []string
	pairs []Pair
}

// Pair is one entry of a Map value.
type Pair struct {
	Key   string
	Value Value
}

// Null removes an option when passed to SetOption.
func Null() Value {
	return Value{}
}

// Bool renders as a bare attribute when true and as "0" when false.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

func String(v string) Value {
	return Value{kind: KindString, s: v}
}

func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// List renders its items comma-joined in order.
func List(items ...string) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// Map renders its pairs as comma-joined key=value entries in order. Pair
// values should be non-null scalars. A Null pair value renders as "key=" and
// a List or Map pair value is flattened to its own text, which the embed
// library cannot split back apart.
func Map(pairs ...Pair) Value {
	return Value{kind: KindMap, pairs: slices.Clone(pairs)}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text returns the unescaped attribute value. Booleans map to "1" and "0"
// and Null maps to the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "1"
		}
		return "0"
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindList:
		return strings.Join(v.list, ",")
	case KindMap:
		parts := make([]string, 0, len(v.pairs))
		for _, pair := range v.pairs {
			parts = append(parts, pair.Key+"="+pair.Value.Text())
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// Equal reports whether both values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindString:
		return v.s == other.s
	case KindInt:
		return v.i == other.i
	case KindList:
		return slices.Equal(v.list, other.list)
	case KindMap:
		return slices.EqualFunc(v.pairs, other.pairs, func(a, b Pair) bool {
			return a.Key == b.Key && a.Value.Equal(b.Value)
		})
	default:
		return true
	}
}

// Interface converts the value into plain Go data: nil, bool, string, int64,
// []string or []Pair.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindList:
		return slices.Clone(v.list)
	case KindMap:
		return slices.Clone(v.pairs)
	default:
		return nil
	}
}

// attribute serialises the value as the named attribute. The ok result is
// false for Null, which emits nothing.
func (v Value) attribute(name string) (attribute, bool) {
	switch v.kind {
	case KindNull:
		return attribute{}, false
	case KindBool:
		if v.b {
			return attribute{name: name, bare: true}, true
		}
		return attribute{name: name, value: "0"}, true
	default:
		return attribute{name: name, value: v.Text()}, true
	}
}
