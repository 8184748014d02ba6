package tooner

import (
	"regexp"
	"strconv"
	"strings"
)

// Decode parses a TOON document into a Value (§4.E, §6). It fails with
// a *ToonDecodeError carrying a 1-based line number on malformed input.
func Decode(text string, opts DecodeOptions) (Value, error) {
	opts = opts.normalized()
	lines := strings.Split(text, "\n")
	d := &decoder{lines: lines, opts: opts, meta: map[*Object]map[string]keyMeta{}}

	if opts.Strict {
		if err := d.validateIndentation(); err != nil {
			return Value{}, err
		}
	}

	firstIdx := -1
	nonBlank := 0
	for i, l := range lines {
		if !isBlank(l) {
			if firstIdx == -1 {
				firstIdx = i
			}
			nonBlank++
		}
	}
	if firstIdx == -1 {
		return Obj(NewObject()), nil
	}

	first := strings.TrimSpace(lines[firstIdx])

	var (
		result Value
		err    error
	)
	switch {
	case nonBlank == 1 && (!strings.Contains(first, ":") || isCompleteQuotedString(first)):
		result, err = parsePrimitive(first)
		err = wrapLineErr(err, firstIdx+1)
	case strings.HasPrefix(first, "["):
		result, _, err = d.parseArrayFromHeader(first, firstIdx, indentOf(lines[firstIdx]))
	case opts.Strict && nonBlank > 1 && d.allLackColonAndBracket():
		err = newDecodeError(firstIdx+1, "multiple primitives at root")
	default:
		result, _, err = d.parseLines(firstIdx)
	}
	if err != nil {
		return Value{}, err
	}

	if opts.ExpandPaths == ExpandPathsSafe {
		result, err = d.expandPaths(result)
		if err != nil {
			return Value{}, err
		}
	}
	return result, nil
}

type keyMeta struct {
	quoted bool
	line   int
}

type decoder struct {
	lines []string
	opts  DecodeOptions
	meta  map[*Object]map[string]keyMeta
}

func isBlank(line string) bool { return strings.TrimSpace(line) == "" }

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// isCompleteQuotedString reports whether s is exactly one quoted-string
// token: starts and ends with an unescaped '"', with no content after
// the closing quote.
func isCompleteQuotedString(s string) bool {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return false
	}
	escaped := false
	for i := 1; i < len(s)-1; i++ {
		if escaped {
			escaped = false
			continue
		}
		switch s[i] {
		case '\\':
			escaped = true
		case '"':
			return false
		}
	}
	return !escaped
}

func (d *decoder) allLackColonAndBracket() bool {
	for _, l := range d.lines {
		if isBlank(l) {
			continue
		}
		t := strings.TrimSpace(l)
		if strings.Contains(t, ":") || strings.HasPrefix(t, "[") {
			return false
		}
	}
	return true
}

func (d *decoder) validateIndentation() error {
	for i, line := range d.lines {
		if isBlank(line) {
			continue
		}
		lead := line[:indentOf(line)]
		if strings.ContainsRune(lead, '\t') {
			return newDecodeError(i+1, "tab character in indentation")
		}
		if len(lead)%d.opts.Indent != 0 {
			return newDecodeError(i+1, "indentation length %d is not a multiple of %d", len(lead), d.opts.Indent)
		}
	}
	return nil
}

func wrapLineErr(err error, line int) error {
	if de, ok := err.(*ToonDecodeError); ok && de.Line == 0 {
		de.Line = line
		return de
	}
	return err
}

// parseLines parses an object context whose first field line is
// lines[idx] (§4.E). Its indent establishes baseIndent; every field at
// exactly that indent belongs to this object.
func (d *decoder) parseLines(idx int) (Value, int, error) {
	obj := NewObject()
	meta := map[string]keyMeta{}
	d.meta[obj] = meta
	baseIndent := indentOf(d.lines[idx])
	next, err := d.fillObjectFields(obj, meta, idx, baseIndent)
	if err != nil {
		return Value{}, next, err
	}
	return Obj(obj), next, nil
}

// fillObjectFields consumes consecutive lines at exactly fieldIndent
// starting at startIdx, assigning each into obj, until indentation
// drops below fieldIndent (end of block) or the lines run out.
func (d *decoder) fillObjectFields(obj *Object, meta map[string]keyMeta, startIdx, fieldIndent int) (int, error) {
	i := startIdx
	for i < len(d.lines) {
		line := d.lines[i]
		if isBlank(line) {
			i++
			continue
		}
		ind := indentOf(line)
		if ind < fieldIndent {
			break
		}
		if ind > fieldIndent {
			return i, newDecodeError(i+1, "unexpected indentation")
		}
		trimmed := strings.TrimSpace(line)
		key, rest, wasQuoted, kerr := parseKey(trimmed)
		if kerr != nil {
			return i, wrapLineErr(kerr, i+1)
		}
		val, next, verr := d.parseAssignment(key, rest, i, fieldIndent)
		if verr != nil {
			return i, verr
		}
		if d.opts.Strict && obj.Has(key) {
			return i, newDecodeError(i+1, "duplicate key %q", key)
		}
		obj.Set(key, val)
		meta[key] = keyMeta{quoted: wasQuoted, line: i + 1}
		i = next
	}
	return i, nil
}

// parseAssignment dispatches on what follows a parsed key: an array
// header, a colon-led primitive or nested object, or neither (error).
func (d *decoder) parseAssignment(key, rest string, idx, fieldIndent int) (Value, int, error) {
	if strings.HasPrefix(rest, "[") {
		return d.parseArrayFromHeader(rest, idx, fieldIndent)
	}
	if strings.HasPrefix(rest, ":") {
		tail := strings.TrimSpace(rest[1:])
		if tail != "" {
			v, err := parsePrimitive(tail)
			if err != nil {
				return Value{}, idx, wrapLineErr(err, idx+1)
			}
			return v, idx + 1, nil
		}
		j := idx + 1
		for j < len(d.lines) && isBlank(d.lines[j]) {
			j++
		}
		if j >= len(d.lines) || indentOf(d.lines[j]) <= fieldIndent {
			return Obj(NewObject()), idx + 1, nil
		}
		return d.parseLines(j)
	}
	return Value{}, idx, newDecodeError(idx+1, "expected ':' after key %q", key)
}

var reBracketHeader = regexp.MustCompile(`^\[([0-9]+)([,\t|])?\]`)

// parseArrayFromHeader parses any of the three array forms from a
// bracket header found in rest (rest begins with '['). containerIndent
// is the indent of the header line itself; it is used both to locate
// the body and, for a root array, as key="" of the generic dispatcher.
func (d *decoder) parseArrayFromHeader(rest string, idx, containerIndent int) (Value, int, error) {
	m := reBracketHeader.FindStringSubmatch(rest)
	if m == nil {
		return Value{}, idx, newDecodeError(idx+1, "invalid array header %q", rest)
	}
	n, _ := strconv.Atoi(m[1])
	delim := byte(',')
	if m[2] != "" {
		delim = m[2][0]
	}
	tail := rest[len(m[0]):]

	switch {
	case strings.HasPrefix(tail, "{"):
		return d.parseTabularHeader(tail, n, delim, idx, containerIndent)
	case strings.HasPrefix(tail, ":"):
		return d.parseArrayColonForm(tail, n, delim, idx, containerIndent)
	default:
		return Value{}, idx, newDecodeError(idx+1, "invalid array header %q", rest)
	}
}

func (d *decoder) parseTabularHeader(tail string, n int, delim byte, idx, containerIndent int) (Value, int, error) {
	close := strings.IndexByte(tail, '}')
	if close < 0 {
		return Value{}, idx, newDecodeError(idx+1, "invalid array header: unterminated field list")
	}
	fieldsStr := tail[1:close]
	afterBrace := tail[close+1:]
	if !strings.HasPrefix(afterBrace, ":") {
		return Value{}, idx, newDecodeError(idx+1, "invalid array header: expected ':' after field list")
	}
	if strings.TrimSpace(afterBrace[1:]) != "" {
		return Value{}, idx, newDecodeError(idx+1, "invalid array header: tabular form may not carry inline content")
	}
	var fields []string
	if fieldsStr != "" {
		fields = strings.Split(fieldsStr, string(delim))
	}
	if n == 0 {
		if len(fields) != 0 {
			return Value{}, idx, newDecodeError(idx+1, "declared count 0 with a non-empty field list")
		}
		return Array(nil), idx + 1, nil
	}
	itemIndent, startIdx, err := d.peekChildIndent(idx, containerIndent)
	if err != nil {
		return Value{}, idx, err
	}
	return d.parseTabularRows(n, fields, delim, startIdx, itemIndent)
}

func (d *decoder) parseArrayColonForm(tail string, n int, delim byte, idx, containerIndent int) (Value, int, error) {
	valueText := strings.TrimSpace(tail[1:])
	if valueText != "" {
		vals := splitByDelimiter(valueText, delim)
		if len(vals) != n {
			return Value{}, idx, newDecodeError(idx+1, "declared count %d does not match %d values", n, len(vals))
		}
		items := make([]Value, n)
		for i, tok := range vals {
			v, err := parsePrimitive(tok)
			if err != nil {
				return Value{}, idx, wrapLineErr(err, idx+1)
			}
			items[i] = v
		}
		return Array(items), idx + 1, nil
	}
	if n == 0 {
		return Array(nil), idx + 1, nil
	}
	j := idx + 1
	for j < len(d.lines) && isBlank(d.lines[j]) {
		j++
	}
	if j >= len(d.lines) || indentOf(d.lines[j]) <= containerIndent {
		return Value{}, idx, newDecodeError(idx+1, "declared count %d but array has no elements", n)
	}
	itemIndent := indentOf(d.lines[j])
	trimmed := strings.TrimSpace(d.lines[j])
	if trimmed == "-" || strings.HasPrefix(trimmed, "- ") {
		return d.parseListBody(n, j, itemIndent)
	}
	return d.parsePrimitiveArrayBody(n, j, itemIndent)
}

func (d *decoder) peekChildIndent(idx, containerIndent int) (itemIndent, startIdx int, err error) {
	j := idx + 1
	for j < len(d.lines) && isBlank(d.lines[j]) {
		j++
	}
	if j >= len(d.lines) || indentOf(d.lines[j]) <= containerIndent {
		return 0, 0, newDecodeError(idx+1, "expected array rows")
	}
	return indentOf(d.lines[j]), j, nil
}

// checkNoExtra errors if content remains at itemIndent right after the
// declared n elements were consumed (§4.E "ExtraRows").
func (d *decoder) checkNoExtra(n, idx, itemIndent int) error {
	j := idx
	for j < len(d.lines) && isBlank(d.lines[j]) {
		j++
	}
	if j < len(d.lines) && indentOf(d.lines[j]) == itemIndent {
		return newDecodeError(j+1, "extra content past declared count %d", n)
	}
	return nil
}

func (d *decoder) parseTabularRows(n int, fields []string, delim byte, startIdx, itemIndent int) (Value, int, error) {
	rows := make([]Value, 0, n)
	i := startIdx
	count := 0
	for count < n {
		if i >= len(d.lines) {
			return Value{}, i, newDecodeError(i, "declared count %d but found %d rows", n, count)
		}
		line := d.lines[i]
		if isBlank(line) {
			if d.opts.Strict && count > 0 && count < n {
				return Value{}, i, newDecodeError(i+1, "blank line inside array")
			}
			i++
			continue
		}
		ind := indentOf(line)
		if ind < itemIndent {
			break
		}
		if ind > itemIndent {
			return Value{}, i, newDecodeError(i+1, "unexpected indentation in tabular row")
		}
		vals := splitByDelimiter(strings.TrimSpace(line), delim)
		if len(vals) != len(fields) {
			return Value{}, i, newDecodeError(i+1, "row has %d fields, expected %d", len(vals), len(fields))
		}
		obj := NewObject()
		meta := map[string]keyMeta{}
		d.meta[obj] = meta
		for fi, f := range fields {
			pv, perr := parsePrimitive(vals[fi])
			if perr != nil {
				return Value{}, i, wrapLineErr(perr, i+1)
			}
			obj.Set(f, pv)
			meta[f] = keyMeta{line: i + 1}
		}
		rows = append(rows, Obj(obj))
		count++
		i++
	}
	if count != n {
		return Value{}, i, newDecodeError(i, "declared count %d but found %d rows", n, count)
	}
	if err := d.checkNoExtra(n, i, itemIndent); err != nil {
		return Value{}, i, err
	}
	return Array(rows), i, nil
}

func (d *decoder) parsePrimitiveArrayBody(n, startIdx, itemIndent int) (Value, int, error) {
	items := make([]Value, 0, n)
	i := startIdx
	count := 0
	for count < n {
		if i >= len(d.lines) {
			return Value{}, i, newDecodeError(i, "declared count %d but found %d items", n, count)
		}
		line := d.lines[i]
		if isBlank(line) {
			if d.opts.Strict && count > 0 && count < n {
				return Value{}, i, newDecodeError(i+1, "blank line inside array")
			}
			i++
			continue
		}
		ind := indentOf(line)
		if ind < itemIndent {
			break
		}
		if ind > itemIndent {
			return Value{}, i, newDecodeError(i+1, "unexpected indentation in array item")
		}
		v, err := parsePrimitive(strings.TrimSpace(line))
		if err != nil {
			return Value{}, i, wrapLineErr(err, i+1)
		}
		items = append(items, v)
		count++
		i++
	}
	if count != n {
		return Value{}, i, newDecodeError(i, "declared count %d but found %d items", n, count)
	}
	if err := d.checkNoExtra(n, i, itemIndent); err != nil {
		return Value{}, i, err
	}
	return Array(items), i, nil
}

func (d *decoder) parseListBody(n, startIdx, itemIndent int) (Value, int, error) {
	items := make([]Value, 0, n)
	i := startIdx
	count := 0
	for count < n {
		if i >= len(d.lines) {
			return Value{}, i, newDecodeError(i, "declared count %d but found %d items", n, count)
		}
		line := d.lines[i]
		if isBlank(line) {
			if d.opts.Strict && count > 0 && count < n {
				return Value{}, i, newDecodeError(i+1, "blank line inside array")
			}
			i++
			continue
		}
		ind := indentOf(line)
		if ind < itemIndent {
			break
		}
		if ind > itemIndent {
			return Value{}, i, newDecodeError(i+1, "unexpected indentation in list item")
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "-" && !strings.HasPrefix(trimmed, "- ") {
			return Value{}, i, newDecodeError(i+1, "expected list item marker '-'")
		}
		val, next, err := d.parseListItem(trimmed, i, itemIndent)
		if err != nil {
			return Value{}, i, err
		}
		items = append(items, val)
		count++
		i = next
	}
	if count != n {
		return Value{}, i, newDecodeError(i, "declared count %d but found %d items", n, count)
	}
	if err := d.checkNoExtra(n, i, itemIndent); err != nil {
		return Value{}, i, err
	}
	return Array(items), i, nil
}

// parseListItem parses one "- ..." (or bare "-") line, re-entering the
// same four-shape classifier parseAssignment uses for the first field
// when the item is itself a keyed object (§4.E, §9 "re-entrancy").
func (d *decoder) parseListItem(trimmed string, idx, itemIndent int) (Value, int, error) {
	content := strings.TrimLeft(strings.TrimPrefix(trimmed, "-"), " \t")
	if content == "" {
		return Obj(NewObject()), idx + 1, nil
	}
	if strings.HasPrefix(content, `"`) && isCompleteQuotedString(content) {
		v, err := parsePrimitive(content)
		if err != nil {
			return Value{}, idx, wrapLineErr(err, idx+1)
		}
		return v, idx + 1, nil
	}
	if strings.HasPrefix(content, "[") {
		return d.parseArrayFromHeader(content, idx, itemIndent)
	}
	if strings.Contains(content, ":") {
		return d.parseObjectListItem(content, idx, itemIndent)
	}
	v, err := parsePrimitive(content)
	if err != nil {
		return Value{}, idx, wrapLineErr(err, idx+1)
	}
	return v, idx + 1, nil
}

func (d *decoder) parseObjectListItem(content string, idx, itemIndent int) (Value, int, error) {
	key, rest, wasQuoted, kerr := parseKey(content)
	if kerr != nil {
		return Value{}, idx, wrapLineErr(kerr, idx+1)
	}
	obj := NewObject()
	meta := map[string]keyMeta{}
	d.meta[obj] = meta

	firstVal, next, verr := d.parseAssignment(key, rest, idx, itemIndent)
	if verr != nil {
		return Value{}, idx, verr
	}
	obj.Set(key, firstVal)
	meta[key] = keyMeta{quoted: wasQuoted, line: idx + 1}

	j := next
	for j < len(d.lines) && isBlank(d.lines[j]) {
		j++
	}
	if j < len(d.lines) && indentOf(d.lines[j]) > itemIndent {
		final, ferr := d.fillObjectFields(obj, meta, j, indentOf(d.lines[j]))
		if ferr != nil {
			return Value{}, j, ferr
		}
		return Obj(obj), final, nil
	}
	return Obj(obj), next, nil
}

// expandPaths implements the path-expansion post-pass (§4.E): a key
// that was not written quoted, contains '.', and splits entirely into
// identifier-safe parts is replaced by the equivalent nested object.
func (d *decoder) expandPaths(v Value) (Value, error) {
	switch v.Kind() {
	case KindObject:
		obj := v.Object()
		meta := d.meta[obj]
		result := NewObject()
		for _, k := range obj.Keys() {
			fv, _ := obj.Get(k)
			expanded, err := d.expandPaths(fv)
			if err != nil {
				return Value{}, err
			}
			m := meta[k]
			if m.quoted || !strings.Contains(k, ".") {
				result.Set(k, expanded)
				continue
			}
			parts := splitDotPath(k)
			allSafe := true
			for _, p := range parts {
				if !isIdentifierKey(p) {
					allSafe = false
					break
				}
			}
			if !allSafe {
				result.Set(k, expanded)
				continue
			}
			if err := mergePath(result, parts, expanded, m.line, d.opts.Strict); err != nil {
				return Value{}, err
			}
		}
		return Obj(result), nil
	case KindArray:
		items := v.Array()
		out := make([]Value, len(items))
		for i, it := range items {
			ev, err := d.expandPaths(it)
			if err != nil {
				return Value{}, err
			}
			out[i] = ev
		}
		return Array(out), nil
	default:
		return v, nil
	}
}

func mergePath(root *Object, parts []string, leaf Value, line int, strict bool) error {
	cur := root
	for _, p := range parts[:len(parts)-1] {
		existing, ok := cur.Get(p)
		if !ok || existing.Kind() != KindObject {
			if ok && strict {
				return newDecodeError(line, "path expansion conflict at %q", p)
			}
			child := NewObject()
			cur.Set(p, Obj(child))
			cur = child
			continue
		}
		cur = existing.Object()
	}
	last := parts[len(parts)-1]
	if existing, ok := cur.Get(last); ok {
		if existing.Kind() == KindObject && leaf.Kind() == KindObject {
			cur.Set(last, Obj(shallowMergeObjects(existing.Object(), leaf.Object())))
			return nil
		}
		if strict {
			return newDecodeError(line, "path expansion conflict at %q", last)
		}
	}
	cur.Set(last, leaf)
	return nil
}

func shallowMergeObjects(a, b *Object) *Object {
	result := NewObject()
	for _, k := range a.Keys() {
		v, _ := a.Get(k)
		result.Set(k, v)
	}
	for _, k := range b.Keys() {
		v, _ := b.Get(k)
		result.Set(k, v)
	}
	return result
}
