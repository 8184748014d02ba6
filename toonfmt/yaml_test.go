package toonfmt

import (
	"testing"

	"github.com/dwekat/tooner"
)

func TestFromYAMLPreservesOrder(t *testing.T) {
	t.Parallel()

	v, err := FromYAML([]byte("c: 1\na: 2\nb: 3\n"))
	if err != nil {
		t.Fatalf("FromYAML failed: %s", err)
	}
	got := v.Object().Keys()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFromYAMLScalarKinds(t *testing.T) {
	t.Parallel()

	v, err := FromYAML([]byte("a: 1\nb: true\nc: null\nd: hello\ne: 1.5\n"))
	if err != nil {
		t.Fatalf("FromYAML failed: %s", err)
	}
	obj := v.Object()
	a, _ := obj.Get("a")
	if a.Kind() != tooner.KindNumber || a.Number() != 1 {
		t.Errorf("a = %#v, want Number(1)", a)
	}
	b, _ := obj.Get("b")
	if b.Kind() != tooner.KindBool || !b.Bool() {
		t.Errorf("b = %#v, want Bool(true)", b)
	}
	c, _ := obj.Get("c")
	if !c.IsNull() {
		t.Errorf("c = %#v, want Null()", c)
	}
	d, _ := obj.Get("d")
	if d.Kind() != tooner.KindString || d.Str() != "hello" {
		t.Errorf("d = %#v, want String(\"hello\")", d)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	obj := tooner.NewObject()
	obj.Set("z", tooner.Number(1))
	obj.Set("a", tooner.Array([]tooner.Value{tooner.String("x"), tooner.Bool(false)}))
	v := tooner.Obj(obj)

	data, err := ToYAML(v)
	if err != nil {
		t.Fatalf("ToYAML failed: %s", err)
	}
	got, err := FromYAML(data)
	if err != nil {
		t.Fatalf("FromYAML(ToYAML(v)) failed: %s", err)
	}
	if !got.Equal(v) {
		t.Errorf("round trip = %#v, want %#v", got, v)
	}
}
