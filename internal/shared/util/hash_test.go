package util

import "testing"

func TestHashOwnerKey(t *testing.T) {
	id := "google:12345"
	got := HashOwnerKey(id)
	if got != HashOwnerKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if HashOwnerKey("cand-1") == HashOwnerKey("cand-2") {
		t.Fatal("distinct owners must not collide on short inputs")
	}
}
