package tooner

import (
	"math"
	"testing"
)

func TestParsePrimitive(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc string
		in   string
		want Value
	}{
		{"QuotedString", `"hello"`, String("hello")},
		{"QuotedWithEscape", `"a\nb"`, String("a\nb")},
		{"True", "true", Bool(true)},
		{"False", "false", Bool(false)},
		{"Null", "null", Null()},
		{"Integer", "42", Number(42)},
		{"NegativeInteger", "-42", Number(-42)},
		{"Float", "3.14", Number(3.14)},
		{"Exponent", "1e10", Number(1e10)},
		{"NegativeZero", "-0", Number(0)},
		{"LeadingZero", "007", String("007")},
		{"BareWord", "hello", String("hello")},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			got, err := parsePrimitive(tc.in)
			if err != nil {
				t.Fatalf("parsePrimitive(%q) failed: %s", tc.in, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("parsePrimitive(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParsePrimitiveInvalid(t *testing.T) {
	t.Parallel()

	if _, err := parsePrimitive(`"unterminated`); err == nil {
		t.Error(`parsePrimitive("unterminated) succeeded, want error`)
	}
}

func TestFormatPrimitive(t *testing.T) {
	t.Parallel()

	noQuote := func(string) bool { return false }
	forceQuote := func(string) bool { return true }

	for _, tc := range []struct {
		desc  string
		v     Value
		quote func(string) bool
		want  string
	}{
		{"Null", Null(), noQuote, "null"},
		{"True", Bool(true), noQuote, "true"},
		{"False", Bool(false), noQuote, "false"},
		{"Integer", Number(42), noQuote, "42"},
		{"Float", Number(3.14), noQuote, "3.14"},
		{"UnquotedString", String("hello"), noQuote, "hello"},
		{"QuotedString", String("hello"), forceQuote, `"hello"`},
		{"QuotedStringWithEscape", String("a\"b"), forceQuote, `"a\"b"`},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			got, err := formatPrimitive(tc.v, tc.quote)
			if err != nil {
				t.Fatalf("formatPrimitive(%v) failed: %s", tc.v, err)
			}
			if got != tc.want {
				t.Errorf("formatPrimitive(%v) = %q, want %q", tc.v, got, tc.want)
			}
		})
	}
}

func TestFormatNumberRejectsNonFinite(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc string
		f    float64
	}{
		{"NaN", math.NaN()},
		{"PosInf", math.Inf(1)},
		{"NegInf", math.Inf(-1)},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			if _, err := formatNumber(tc.f); err == nil {
				t.Errorf("formatNumber(%v) succeeded, want error", tc.f)
			}
		})
	}
}
