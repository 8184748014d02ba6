// Package rcfile parses the config language used for tooner's CLI
// defaults file, .toonrc: a flat list of "field: value" assignments,
// one line comments, and nothing else. There is no nesting, no lists,
// and no repeated-field merging, since every field the CLI reads
// (delimiter, indent, strict, keyFolding, expandPaths) is a single
// scalar.
//
// # Comments
//
// Comments start with # or // and run to the end of the line.
//
//	# the team's house style
//	delimiter: "pipe" // tabs confuse our diff viewer
//
// # Values
//
// A value is a quoted string, a decimal integer, or one of the bool
// words:
//
//	true yes on
//	false no off
//
// Strings are written with ' or ", and support the escapes tooner
// itself needs: \\ \' \" \n \t \r.
//
//	delimiter: "pipe"
//	indent: 4
//	strict: true
//	keyFolding: yes
//	expandPaths: off
package rcfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strconv"
)

type syntaxError struct {
	line, col int
	reason    string
}

func newSyntaxError(data []byte, idx int, reason string, args ...any) error {
	line, col := 1, 1
	for _, b := range data[:idx] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &syntaxError{line, col, fmt.Sprintf(reason, args...)}
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("%d:%d syntax error: %s", e.line, e.col, e.reason)
}

type parser struct {
	nextTok func() (token, error, bool)
	data    []byte
	i       int
}

func (p *parser) error(reason string, args ...any) error {
	return newSyntaxError(p.data, p.i, reason, args...)
}

var errEOF = errors.New("premature EOF")

func (p *parser) next() ([]byte, error) {
	tok, err, ok := p.nextTok()
	if !ok {
		return nil, errEOF
	}
	if err != nil {
		return nil, err
	}
	p.i = tok.i
	return tok.b, nil
}

var escapeRE = regexp.MustCompile(`\\.`)

func (p *parser) parseString(tok []byte) (string, error) {
	raw := tok[1 : len(tok)-1]
	var err error
	unescaped := escapeRE.ReplaceAllFunc(raw, func(esc []byte) []byte {
		switch string(esc) {
		case `\\`:
			return []byte(`\`)
		case `\'`:
			return []byte(`'`)
		case `\"`:
			return []byte(`"`)
		case `\n`:
			return []byte("\n")
		case `\t`:
			return []byte("\t")
		case `\r`:
			return []byte("\r")
		default:
			err = p.error("invalid escape %q", esc)
			return nil
		}
	})
	if err != nil {
		return "", err
	}
	return string(unescaped), nil
}

func (p *parser) parseVal(tok []byte) (any, error) {
	switch tok[0] {
	case '\'', '"':
		return p.parseString(tok)
	}
	switch string(tok) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	n, err := strconv.ParseInt(string(tok), 10, 64)
	if err != nil {
		return nil, p.error("expecting field value, got %q", tok)
	}
	return n, nil
}

// parseFieldVal parses "<colon> <value>" for a field name already read
// by the caller, and stores the result under that name in out.
func (p *parser) parseFieldVal(out map[string]any, field []byte) error {
	if b := field[0]; !(b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z') {
		return p.error("expecting field name, got %q", field)
	}
	colon, err := p.next()
	if err != nil {
		return err
	}
	if colon[0] != ':' {
		return p.error("expecting ':' after field %q", field)
	}
	val, err := p.next()
	if err != nil {
		return err
	}
	v, err := p.parseVal(val)
	if err != nil {
		return err
	}
	out[string(field)] = v
	return nil
}

func (p *parser) parse() (map[string]any, error) {
	m := make(map[string]any)
	for {
		field, err := p.next()
		if err != nil {
			if err == errEOF {
				return m, nil
			}
			return nil, err
		}
		if err := p.parseFieldVal(m, field); err != nil {
			return nil, err
		}
	}
}

// Unmarshal parses a .toonrc document and writes the result into v.
// Unmarshal internally calls json.Unmarshal for the reflection-based
// struct unpacking, so v's fields should carry json struct tags.
func Unmarshal(data []byte, v any) error {
	nextToken, stop := iter.Pull2(tokens(data))
	defer stop()
	m, err := (&parser{nextTok: nextToken, data: data}).parse()
	if err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, v)
}
