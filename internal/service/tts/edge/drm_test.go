package edge

import (
	"testing"
	"time"
)

func TestSecMSGECShape(t *testing.T) {
	tok := secMSGEC(time.Now())
	if len(tok) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(tok))
	}
	for _, r := range tok {
		if (r < '0' || r > '9') && (r < 'A' || r > 'F') {
			t.Fatalf("unexpected character %q in token %s", r, tok)
		}
	}
}

func TestSecMSGECStableWithinWindow(t *testing.T) {
	// Подпись меняется только на границе 5-минутного окна
	base := time.Unix(1700000100, 0)
	s := base.Unix() + winEpochOffset
	aligned := base.Add(time.Duration(-(s % 300)) * time.Second)

	if secMSGEC(aligned) != secMSGEC(aligned.Add(299*time.Second)) {
		t.Fatal("token must be stable within one 300s window")
	}
	if secMSGEC(aligned) == secMSGEC(aligned.Add(300*time.Second)) {
		t.Fatal("token must change across window boundary")
	}
}
