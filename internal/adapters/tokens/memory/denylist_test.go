package memory

import (
	"context"
	"testing"
	"time"
)

func TestDenylist_ExpiresWithToken(t *testing.T) {
	dl := NewDenylist()
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	dl.now = func() time.Time { return now }
	ctx := context.Background()

	if err := dl.Revoke(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := dl.IsRevoked(ctx, "jti-1"); !ok {
		t.Fatalf("expected revoked")
	}
	if ok, _ := dl.IsRevoked(ctx, "jti-2"); ok {
		t.Fatalf("unknown jti must not be revoked")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := dl.IsRevoked(ctx, "jti-1"); ok {
		t.Fatalf("entry must expire with the token")
	}
}
