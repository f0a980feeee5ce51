package id

import "testing"

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		v, err := g.NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if !Valid(v) {
			t.Fatalf("generated id %q is not a uuid", v)
		}
		if _, ok := seen[v]; ok {
			t.Fatalf("duplicate id %q", v)
		}
		seen[v] = struct{}{}
	}

	if Valid("not-a-uuid") {
		t.Fatalf("expected invalid id to be rejected")
	}
}
