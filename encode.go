package tooner

import (
	"strconv"
	"strings"
)

// Encode renders v as a TOON document (§4.D, §6). It is total on value
// trees containing only finite numbers; it fails with a
// *ToonEncodeError on NaN/±Infinity whether or not opts.Strict is set.
// Keys are never rejected: a key that needsQuotingAsKey flags is
// written quoted.
func Encode(v Value, opts EncodeOptions) (string, error) {
	opts = opts.normalized()
	if opts.KeyFolding == KeyFoldingSafe {
		v = foldValue(v, opts.FlattenDepth)
	}
	e := &encoder{opts: opts}
	switch v.Kind() {
	case KindObject:
		for _, k := range v.Object().Keys() {
			fv, _ := v.Object().Get(k)
			if err := e.emitField(k, fv, 0); err != nil {
				return "", err
			}
		}
	case KindArray:
		if err := e.emitArray("", v.Array(), 0); err != nil {
			return "", err
		}
	default:
		text, err := formatPrimitive(v, func(s string) bool { return needsQuoting(s, opts.Delimiter) })
		if err != nil {
			return "", err
		}
		e.buf = append(e.buf, text)
	}
	return strings.Join(e.buf, "\n"), nil
}

type encoder struct {
	opts EncodeOptions
	buf  []string
}

func (e *encoder) line(depth int, text string) {
	e.buf = append(e.buf, strings.Repeat(e.opts.Indent, depth)+text)
}

func (e *encoder) quoteFree(s string) bool { return needsQuoting(s, e.opts.Delimiter) }
func (e *encoder) quoteArr(s string) bool  { return needsQuotingInArray(s, e.opts.Delimiter) }

func (e *encoder) formatFree(v Value) (string, error) {
	return formatPrimitive(v, e.quoteFree)
}

func (e *encoder) formatArrElem(v Value) (string, error) {
	return formatPrimitive(v, e.quoteArr)
}

// emitField emits one object field assignment ("key: value", a nested
// object header plus its fields, or an array header) at depth.
func (e *encoder) emitField(key string, v Value, depth int) error {
	k := encodeKey(key)
	switch v.Kind() {
	case KindArray:
		return e.emitArray(k, v.Array(), depth)
	case KindObject:
		obj := v.Object()
		if obj.Len() == 0 {
			e.line(depth, k+":")
			return nil
		}
		e.line(depth, k+":")
		for _, fk := range obj.Keys() {
			fv, _ := obj.Get(fk)
			if err := e.emitField(fk, fv, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		text, err := e.formatFree(v)
		if err != nil {
			return err
		}
		e.line(depth, k+": "+text)
		return nil
	}
}

func (e *encoder) delimIndicator() string {
	if e.opts.Delimiter == ',' {
		return ""
	}
	return string(e.opts.Delimiter)
}

// emitArray emits an array under key (key may be "" for an anonymous
// root or list-item array), choosing the empty / tabular / inline /
// list form per the decision order in §4.D.
func (e *encoder) emitArray(key string, arr []Value, depth int) error {
	n := len(arr)
	bracket := key + "[" + strconv.Itoa(n) + e.delimIndicator() + "]"

	if n == 0 {
		e.line(depth, bracket+":")
		return nil
	}

	if fields, ok := tabularFields(arr); ok {
		delim := string(e.opts.Delimiter)
		header := bracket + "{" + strings.Join(fields, delim) + "}:"
		e.line(depth, header)
		for _, el := range arr {
			obj := el.Object()
			vals := make([]string, len(fields))
			for i, f := range fields {
				fv, _ := obj.Get(f)
				text, err := e.formatArrElem(fv)
				if err != nil {
					return err
				}
				vals[i] = text
			}
			e.line(depth+1, strings.Join(vals, delim))
		}
		return nil
	}

	if isAllPrimitiveArray(arr) {
		vals := make([]string, n)
		for i, el := range arr {
			text, err := e.formatArrElem(el)
			if err != nil {
				return err
			}
			vals[i] = text
		}
		e.line(depth, bracket+": "+strings.Join(vals, string(e.opts.Delimiter)))
		return nil
	}

	e.line(depth, bracket+":")
	for _, item := range arr {
		if err := e.emitListItem(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// emitListItem emits one "- ..." line (and, for a nested multi-line
// array or object item, the deeper-indented continuation lines) at
// depth (§4.D list form, §4.E's re-entrant first-field handling).
func (e *encoder) emitListItem(item Value, depth int) error {
	switch item.Kind() {
	case KindArray:
		sub := &encoder{opts: e.opts}
		if err := sub.emitArray("", item.Array(), 0); err != nil {
			return err
		}
		e.appendAsItem(depth, sub.buf)
		return nil
	case KindObject:
		obj := item.Object()
		if obj.Len() == 0 {
			e.line(depth, "-")
			return nil
		}
		sub := &encoder{opts: e.opts}
		keys := obj.Keys()
		first, _ := obj.Get(keys[0])
		if err := sub.emitFirstListField(keys[0], first); err != nil {
			return err
		}
		for _, k := range keys[1:] {
			fv, _ := obj.Get(k)
			if err := sub.emitField(k, fv, 1); err != nil {
				return err
			}
		}
		e.appendAsItem(depth, sub.buf)
		return nil
	default:
		text, err := e.formatArrElem(item)
		if err != nil {
			return err
		}
		e.line(depth, "- "+text)
		return nil
	}
}

// emitFirstListField emits the first field of an object list item, the
// one inlined onto the "- " line itself. A primitive value there is
// quoted using array context, since it occupies the array's row
// position; any fields reached afterward use plain object-field
// quoting via emitField.
func (e *encoder) emitFirstListField(key string, v Value) error {
	k := encodeKey(key)
	switch v.Kind() {
	case KindArray:
		return e.emitArray(k, v.Array(), 0)
	case KindObject:
		return e.emitField(key, v, 0)
	default:
		text, err := e.formatArrElem(v)
		if err != nil {
			return err
		}
		e.line(0, k+": "+text)
		return nil
	}
}

// appendAsItem splices lines (produced by a fresh sub-encoder at
// relative depth 0) into e at depth, prefixing the first line with
// "- " and shifting every line by depth indent units.
func (e *encoder) appendAsItem(depth int, lines []string) {
	indent := strings.Repeat(e.opts.Indent, depth)
	for i, l := range lines {
		if i == 0 {
			e.buf = append(e.buf, indent+"- "+l)
		} else {
			e.buf = append(e.buf, indent+l)
		}
	}
}

// tabularFields reports whether arr is a uniform array of non-empty
// objects whose leaves are all primitives, and if so returns the
// shared, ordered field list (§4.D form 2).
func tabularFields(arr []Value) ([]string, bool) {
	if len(arr) == 0 || arr[0].Kind() != KindObject {
		return nil, false
	}
	fields := arr[0].Object().Keys()
	if len(fields) == 0 {
		return nil, false
	}
	for _, el := range arr {
		if el.Kind() != KindObject {
			return nil, false
		}
		obj := el.Object()
		keys := obj.Keys()
		if !equalStrings(keys, fields) {
			return nil, false
		}
		for _, f := range fields {
			fv, _ := obj.Get(f)
			if !isPrimitiveKind(fv.Kind()) {
				return nil, false
			}
		}
	}
	return fields, true
}

func isAllPrimitiveArray(arr []Value) bool {
	for _, el := range arr {
		if !isPrimitiveKind(el.Kind()) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// foldValue applies key folding (§4.D): a chain of single-key objects
// collapses into one dotted key, stopping at the first non-object
// value, a branching (multi-key) object, a non-identifier-safe key, or
// maxDepth (<=0 means unbounded). It recurses into arrays so elements
// nested inside them are folded too.
func foldValue(v Value, maxDepth int) Value {
	switch v.Kind() {
	case KindObject:
		return Obj(foldObjectKeys(v.Object(), maxDepth))
	case KindArray:
		items := v.Array()
		out := make([]Value, len(items))
		for i, it := range items {
			out[i] = foldValue(it, maxDepth)
		}
		return Array(out)
	default:
		return v
	}
}

func foldObjectKeys(obj *Object, maxDepth int) *Object {
	result := NewObject()
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		if !isIdentifierKey(k) {
			result.Set(k, foldValue(v, maxDepth))
			continue
		}
		nk, nv := foldChain(k, v, 1, maxDepth)
		result.Set(nk, nv)
	}
	return result
}

func foldChain(key string, v Value, depth, maxDepth int) (string, Value) {
	if v.Kind() == KindObject && (maxDepth <= 0 || depth < maxDepth) {
		o := v.Object()
		if o.Len() == 1 {
			onlyKey := o.Keys()[0]
			if isIdentifierKey(onlyKey) {
				onlyVal, _ := o.Get(onlyKey)
				return foldChain(key+"."+onlyKey, onlyVal, depth+1, maxDepth)
			}
		}
	}
	return key, foldValue(v, maxDepth)
}
