package stego

import "testing"

func TestLimitsWithDefaults(t *testing.T) {
	l := (Limits{}).withDefaults()
	if l != DefaultLimits() {
		t.Fatalf("expected defaults, got %+v", l)
	}
	if l.MaxMessageLen != 1<<20 {
		t.Fatalf("PNG ceiling %d, want 1 MiB", l.MaxMessageLen)
	}

	custom := Limits{MaxMessageLen: 7}.withDefaults()
	if custom.MaxMessageLen != 7 || custom.MaxContainerLen == 0 {
		t.Fatalf("got %+v", custom)
	}
}
