package theme

import "testing"

func TestResolveFallsBackToDefault(t *testing.T) {
	if got := Resolve("  DONKER "); got.Key != "donker" {
		t.Fatalf("expected donker theme, got %q", got.Key)
	}
	if got := Resolve("unknown"); got.Key != DefaultKey {
		t.Fatalf("expected fallback to %q, got %q", DefaultKey, got.Key)
	}
}

func TestOptionsResolve(t *testing.T) {
	for _, opt := range Options() {
		if Resolve(opt.Value).Key != opt.Value {
			t.Fatalf("option %q does not resolve to itself", opt.Value)
		}
	}
}

func TestColorAtCycles(t *testing.T) {
	if ColorAt(0) != Pastels[0] {
		t.Fatalf("expected first pastel, got %s", ColorAt(0))
	}
	if ColorAt(len(Pastels)+1) != Pastels[1] {
		t.Fatalf("expected palette to cycle, got %s", ColorAt(len(Pastels)+1))
	}
	if ColorAt(-3) != Pastels[3] {
		t.Fatalf("expected negative index to be mirrored, got %s", ColorAt(-3))
	}
}
