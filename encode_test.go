package tooner

import (
	"math"
	"strings"
	"testing"
)

func obj(pairs ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return o
}

func TestEncodeTabularArray(t *testing.T) {
	t.Parallel()

	users := Array([]Value{
		Obj(obj("id", Number(1), "name", String("Alice"), "role", String("admin"))),
		Obj(obj("id", Number(2), "name", String("Bob"), "role", String("user"))),
	})
	v := Obj(obj("users", users))

	got, err := Encode(v, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	want := "users[2]{id,name,role}:\n  1,Alice,admin\n  2,Bob,user"
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

// Comma stays unquoted here: §8 Scenario 2 of the format's worked
// examples is explicit that a non-comma active delimiter makes comma
// safe, even though a literal pipe would still force quoting.
func TestEncodeInlinePipeDelimiter(t *testing.T) {
	t.Parallel()

	v := Obj(obj("tags", Array([]Value{String("a"), String("b"), String("c,d")})))
	got, err := Encode(v, EncodeOptions{Delimiter: '|'})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	want := `tags[3|]: a|b|c,d`
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeMixedListWithNestedItems(t *testing.T) {
	t.Parallel()

	v := Obj(obj("items", Array([]Value{
		Number(1),
		Obj(obj("k", String("v"))),
		Array([]Value{Number(2), Number(3)}),
	})))
	got, err := Encode(v, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	want := "items[3]:\n  - 1\n  - k: v\n  - [2]: 2,3"
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeEmptyArray(t *testing.T) {
	t.Parallel()

	v := Obj(obj("xs", Array(nil)))
	got, err := Encode(v, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	if got != "xs[0]:" {
		t.Errorf("Encode() = %q, want %q", got, "xs[0]:")
	}
}

func TestEncodeEmptyObjectField(t *testing.T) {
	t.Parallel()

	v := Obj(obj("nested", Obj(NewObject())))
	got, err := Encode(v, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	if got != "nested:" {
		t.Errorf("Encode() = %q, want %q", got, "nested:")
	}
}

func TestEncodeNestedObjectField(t *testing.T) {
	t.Parallel()

	v := Obj(obj("a", Obj(obj("b", Number(1), "c", Number(2)))))
	got, err := Encode(v, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	want := "a:\n  b: 1\n  c: 2"
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeNegativeZero(t *testing.T) {
	t.Parallel()

	v := Obj(obj("x", Number(math.Copysign(0, -1))))
	got, err := Encode(v, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	if got != "x: 0" {
		t.Errorf("Encode() = %q, want %q", got, "x: 0")
	}
}

func TestEncodeRejectsNonFiniteNumber(t *testing.T) {
	t.Parallel()

	_, err := Encode(Number(math.Inf(1)), EncodeOptions{})
	if err == nil {
		t.Error("Encode(Inf) succeeded, want error")
	}
}

func TestEncodeKeyFolding(t *testing.T) {
	t.Parallel()

	v := Obj(obj("a", Obj(obj("b", Obj(obj("c", Number(1)))))))
	got, err := Encode(v, EncodeOptions{KeyFolding: KeyFoldingSafe})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	if got != "a.b.c: 1" {
		t.Errorf("Encode() = %q, want %q", got, "a.b.c: 1")
	}
}

func TestEncodeKeyFoldingStopsAtBranch(t *testing.T) {
	t.Parallel()

	v := Obj(obj("a", Obj(obj("b", Number(1), "c", Number(2)))))
	got, err := Encode(v, EncodeOptions{KeyFolding: KeyFoldingSafe})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	want := "a:\n  b: 1\n  c: 2"
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeKeyFoldingRespectsFlattenDepth(t *testing.T) {
	t.Parallel()

	v := Obj(obj("a", Obj(obj("b", Obj(obj("c", Number(1)))))))
	got, err := Encode(v, EncodeOptions{KeyFolding: KeyFoldingSafe, FlattenDepth: 2})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	want := "a.b:\n  c: 1"
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeInlinePrimitiveArray(t *testing.T) {
	t.Parallel()

	v := Obj(obj("xs", Array([]Value{Number(1), Number(2), Number(3)})))
	got, err := Encode(v, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	if got != "xs[3]: 1,2,3" {
		t.Errorf("Encode() = %q, want %q", got, "xs[3]: 1,2,3")
	}
}

func TestEncodeNonUniformArrayFallsBackToList(t *testing.T) {
	t.Parallel()

	v := Obj(obj("xs", Array([]Value{
		Obj(obj("a", Number(1))),
		Obj(obj("b", Number(2))),
	})))
	got, err := Encode(v, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	if !strings.HasPrefix(got, "xs[2]:\n  - a: 1\n  - b: 2") {
		t.Errorf("Encode() = %q, want list form", got)
	}
}

func TestEncodeRootArray(t *testing.T) {
	t.Parallel()

	v := Array([]Value{Number(1), Number(2)})
	got, err := Encode(v, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	if got != "[2]: 1,2" {
		t.Errorf("Encode() = %q, want %q", got, "[2]: 1,2")
	}
}

func TestEncodeRootPrimitive(t *testing.T) {
	t.Parallel()

	got, err := Encode(String("hello"), EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	if got != "hello" {
		t.Errorf("Encode() = %q, want %q", got, "hello")
	}
}

func TestEncodeQuotesAmbiguousKey(t *testing.T) {
	t.Parallel()

	v := Obj(obj("a-b", Number(1)))
	got, err := Encode(v, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	if got != `"a-b": 1` {
		t.Errorf("Encode() = %q, want %q", got, `"a-b": 1`)
	}
}

func TestEncodeCustomIndent(t *testing.T) {
	t.Parallel()

	v := Obj(obj("a", Obj(obj("b", Number(1)))))
	got, err := Encode(v, IndentWidth(4))
	if err != nil {
		t.Fatalf("Encode failed: %s", err)
	}
	if got != "a:\n    b: 1" {
		t.Errorf("Encode() = %q, want %q", got, "a:\n    b: 1")
	}
}
