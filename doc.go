// Package tooner implements the TOON (Token-Oriented Object Notation)
// codec: a compact, indentation-sensitive, human-readable serialization
// format that represents the same data model as JSON with substantially
// fewer tokens when consumed by a language model.
//
// TOON's distinguishing feature is a tabular array form that factors a
// shared field schema out of a uniform array of records onto a single
// header line, followed by rows of delimiter-separated values:
//
//	users[2]{id,name,role}:
//	  1,Alice,admin
//	  2,Bob,user
//
// An array of scalars is written inline:
//
//	tags[3]: a,b,c
//
// and anything else — mixed types, nesting, non-uniform objects — falls
// back to a hyphen-prefixed list:
//
//	items[3]:
//	  - 1
//	  - k: v
//	  - [2]: 2,3
//
// This package is the core, bidirectional codec over the generic value
// tree ([Value]): [Encode] walks a value tree and chooses the most
// compact textual form for every array and object it meets; [Decode]
// parses a TOON document back into an equivalent tree. Both functions
// are pure: they allocate their own transient buffers, touch no global
// state, and may be called concurrently on distinct inputs.
//
// Front-ends that read JSON, YAML, or another format into a [Value] and
// hand it to [Encode], and the command-line tool that wires them
// together, live outside this package; see the toonfmt package and
// cmd/toon.
package tooner
