package core

import "testing"

func TestDirectory(t *testing.T) {
	d := NewDirectory(DefaultOptions())

	b := d.GetOrCreate("b")
	a := d.GetOrCreate("a")
	if again := d.GetOrCreate("b"); again != b {
		t.Fatal("GetOrCreate returned a different room for the same id")
	}
	if got, ok := d.Get("a"); !ok || got != a {
		t.Fatal("Get did not find room a")
	}

	d.Remove("a")
	if _, ok := d.Get("a"); ok {
		t.Fatal("room a still listed after Remove")
	}
	d.Remove("missing")
}
