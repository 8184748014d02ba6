package tooner

import "strings"

// DefaultIndentWidth is the number of spaces an indent level occupies
// when EncodeOptions.Indent and DecodeOptions.Indent are left zero.
const DefaultIndentWidth = 2

// KeyFoldingMode selects the encoder's key-folding behavior (§4.D).
type KeyFoldingMode string

const (
	KeyFoldingOff  KeyFoldingMode = "off"
	KeyFoldingSafe KeyFoldingMode = "safe"
)

// ExpandPathsMode selects the decoder's path-expansion post-pass (§4.E).
type ExpandPathsMode string

const (
	ExpandPathsOff  ExpandPathsMode = "off"
	ExpandPathsSafe ExpandPathsMode = "safe"
)

// EncodeOptions configures Encode (§4.D).
type EncodeOptions struct {
	// Indent is the whitespace string repeated per nesting level.
	// The zero value means DefaultIndentWidth spaces.
	Indent string
	// Delimiter separates fields inside bracket headers and array
	// rows: ',', '\t', or '|'. The zero value means ','.
	Delimiter byte
	// KeyFolding collapses chains of single-key objects into dotted
	// keys when set to KeyFoldingSafe.
	KeyFolding KeyFoldingMode
	// FlattenDepth bounds how many levels KeyFoldingSafe collapses.
	// Zero or negative means unbounded.
	FlattenDepth int
	// Strict is not read by Encode: NaN and ±Infinity are rejected
	// whether or not it is set.
	Strict bool
}

// IndentWidth returns an EncodeOptions with Indent set to width spaces.
func IndentWidth(width int) EncodeOptions {
	return EncodeOptions{Indent: strings.Repeat(" ", width)}
}

func (o EncodeOptions) normalized() EncodeOptions {
	if o.Indent == "" {
		o.Indent = strings.Repeat(" ", DefaultIndentWidth)
	}
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	return o
}

// DecodeOptions configures Decode (§4.E).
type DecodeOptions struct {
	// Strict enables extra validation: indentation discipline, blank
	// lines inside arrays, duplicate object keys, and multiple
	// primitives at the document root.
	Strict bool
	// Indent is the expected indent width used to validate
	// indentation when Strict is set. Zero means DefaultIndentWidth.
	Indent int
	// ExpandPaths expands dotted unquoted keys into nested objects
	// when set to ExpandPathsSafe.
	ExpandPaths ExpandPathsMode
}

func (o DecodeOptions) normalized() DecodeOptions {
	if o.Indent == 0 {
		o.Indent = DefaultIndentWidth
	}
	return o
}
