package tooner

import "math"

// Kind identifies which alternative of the ToonValue sum type a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the single recursive sum type the codec manipulates: Null,
// Bool, Number, String, Array, or Object. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value. Negative zero is normalized to
// positive zero per the data model (§3); NaN and ±Infinity are left
// as-is and rejected at encode time.
func Number(n float64) Value {
	if n == 0 {
		n = 0 // folds -0.0 into 0.0 (math.Signbit(n) no longer observable)
	}
	return Value{kind: KindNumber, n: n}
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array value wrapping items in order.
func Array(items []Value) Value { return Value{kind: KindArray, arr: items} }

// Obj returns an object value wrapping o. A nil o is treated as empty.
func Obj(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) Bool() bool   { return v.b }
func (v Value) Number() float64 { return v.n }
func (v Value) Str() string  { return v.s }
func (v Value) Array() []Value { return v.arr }
func (v Value) Object() *Object { return v.obj }

func isPrimitiveKind(k Kind) bool {
	switch k {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// Equal reports whether v and other represent the same value tree, per
// the equivalence spelled out in the testable properties (§8): -0.0 and
// 0.0 compare equal, and object equality is by key set and per-key
// value, independent of insertion order. It satisfies the shape
// go-cmp's cmp.Equal looks for, so tests can compare Values directly.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return numbersEqual(v.n, other.n)
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return objectsEqual(v.obj, other.obj)
	default:
		return false
	}
}

func numbersEqual(a, b float64) bool {
	if a == 0 && b == 0 {
		return true
	}
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}

func objectsEqual(a, b *Object) bool {
	if a == nil {
		a = NewObject()
	}
	if b == nil {
		b = NewObject()
	}
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || !av.Equal(bv) {
			return false
		}
	}
	return true
}

// Object is an insertion-ordered mapping from string key to Value. It
// is the codec's implementation of the ordered Object alternative of
// ToonValue (§3): both the encoder's emit order and the decoder's
// first-occurrence order are preserved.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set inserts or updates key. A key seen for the first time is
// appended to the end of the key order; an existing key keeps its
// original position and simply has its value replaced (last-writer-wins,
// per §3's decode duplicate-key rule).
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get retrieves the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

// Delete removes key, if present.
func (o *Object) Delete(key string) {
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. Callers must not mutate
// the returned slice.
func (o *Object) Keys() []string { return o.keys }

// Len returns the number of entries.
func (o *Object) Len() int { return len(o.keys) }
