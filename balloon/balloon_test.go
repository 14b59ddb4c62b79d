package balloon_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/hasbyte1/go-balloon/balloon"
)

// ──────────────────────────────────────────────────────────────────────────────
// Published reference vectors (SHA-256)
// ──────────────────────────────────────────────────────────────────────────────

func TestBalloon_ReferenceVectors(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		salt      string
		spaceCost int
		timeCost  int
		delta     int
		want      string
	}{
		{
			name:      "hunter42",
			password:  "hunter42",
			salt:      "examplesalt",
			spaceCost: 1024,
			timeCost:  3,
			delta:     balloon.DefaultDelta,
			want:      "716043dff777b44aa7b88dcbab12c078abecfac9d289c5b5195967aa63440dfb",
		},
		{
			name:      "empty password",
			password:  "",
			salt:      "salt",
			spaceCost: 3,
			timeCost:  3,
			delta:     balloon.DefaultDelta,
			want:      "5f02f8206f9cd212485c6bdf85527b698956701ad0852106f94b94ee94577378",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := balloon.Balloon(tt.password, tt.salt, tt.spaceCost, tt.timeCost, tt.delta)
			if err != nil {
				t.Fatalf("Balloon: %v", err)
			}
			if got := hex.EncodeToString(digest); got != tt.want {
				t.Errorf("digest = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBalloonM_ReferenceVector(t *testing.T) {
	digest, err := balloon.BalloonM("hunter42", "examplesalt", 1024, 3, 4, balloon.DefaultDelta)
	if err != nil {
		t.Fatalf("BalloonM: %v", err)
	}
	want := "1832bd8e5cbeba1cb174a13838095e7e66508e9bf04c40178990adbc8ba9eb6f"
	if got := hex.EncodeToString(digest); got != want {
		t.Errorf("digest = %s, want %s", got, want)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Determinism and sensitivity
// ──────────────────────────────────────────────────────────────────────────────

func TestBalloon_Deterministic(t *testing.T) {
	first, err := balloon.Balloon("password", "salt", 8, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		again, err := balloon.Balloon("password", "salt", 8, 3, 3)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d: digest changed for identical inputs", i)
		}
	}
}

func TestBalloonM_Deterministic(t *testing.T) {
	// Lane scheduling varies between runs; the XOR fold must make the
	// result independent of lane completion order.
	first, err := balloon.BalloonM("password", "salt", 8, 3, 8, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := balloon.BalloonM("password", "salt", 8, 3, 8, 3)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d: digest depends on lane scheduling", i)
		}
	}
}

func TestBalloon_SensitiveToEveryInput(t *testing.T) {
	base, err := balloon.Balloon("password", "salt", 8, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	variants := []struct {
		name      string
		password  string
		salt      string
		spaceCost int
		timeCost  int
		delta     int
	}{
		{"password changed", "passwore", "salt", 8, 3, 3},
		{"salt changed", "password", "salu", 8, 3, 3},
		{"space_cost changed", "password", "salt", 9, 3, 3},
		{"time_cost changed", "password", "salt", 8, 4, 3},
		{"delta changed", "password", "salt", 8, 3, 4},
	}
	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := balloon.Balloon(tt.password, tt.salt, tt.spaceCost, tt.timeCost, tt.delta)
			if err != nil {
				t.Fatal(err)
			}
			if bytes.Equal(base, digest) {
				t.Error("digest did not change")
			}
		})
	}
}

func TestBalloon_PasswordSaltBoundary(t *testing.T) {
	// The seed concatenates password and salt, but the salt is also
	// folded into every neighbor selection during mix, so swapping the
	// two inputs must change the digest.
	a, err := balloon.Balloon("password", "salt", 8, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := balloon.Balloon("salt", "password", 8, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Error("swapped password/salt produced identical digest")
	}
}

func TestBalloonM_DiffersFromBalloon(t *testing.T) {
	// Even a single lane uses a lane-derived salt and a finalising
	// hash, so the M variant never equals the sequential digest.
	seq, err := balloon.Balloon("password", "salt", 8, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	m, err := balloon.BalloonM("password", "salt", 8, 3, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(seq, m) {
		t.Error("BalloonM(p=1) unexpectedly equals Balloon")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Edge cases
// ──────────────────────────────────────────────────────────────────────────────

func TestBalloon_EmptyInputsAreValid(t *testing.T) {
	for _, tt := range []struct{ password, salt string }{
		{"", ""},
		{"", "salt"},
		{"password", ""},
	} {
		digest, err := balloon.Balloon(tt.password, tt.salt, 3, 3, 3)
		if err != nil {
			t.Errorf("Balloon(%q, %q): unexpected error %v", tt.password, tt.salt, err)
		}
		if len(digest) != 32 {
			t.Errorf("Balloon(%q, %q): digest length = %d, want 32", tt.password, tt.salt, len(digest))
		}
	}
}

func TestBalloon_MinimalCosts(t *testing.T) {
	// space_cost=1 exercises the wrap-around: the only block is its own
	// left neighbor.
	digest, err := balloon.Balloon("password", "salt", 1, 1, 1)
	if err != nil {
		t.Fatalf("Balloon with minimal costs: %v", err)
	}
	if len(digest) != 32 {
		t.Errorf("digest length = %d, want 32", len(digest))
	}
}

func TestBalloon_InvalidCosts(t *testing.T) {
	tests := []struct {
		name      string
		spaceCost int
		timeCost  int
		delta     int
	}{
		{"space_cost=0", 0, 3, 3},
		{"space_cost negative", -1, 3, 3},
		{"time_cost=0", 8, 0, 3},
		{"delta=0", 8, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := balloon.Balloon("password", "salt", tt.spaceCost, tt.timeCost, tt.delta)
			if !errors.Is(err, balloon.ErrInvalidCost) {
				t.Errorf("expected ErrInvalidCost, got %v", err)
			}
		})
	}
}

func TestBalloonM_InvalidCosts(t *testing.T) {
	tests := []struct {
		name         string
		spaceCost    int
		timeCost     int
		parallelCost int
		delta        int
	}{
		{"parallel_cost=0", 8, 3, 0, 3},
		{"parallel_cost negative", 8, 3, -4, 3},
		{"space_cost=0", 0, 3, 4, 3},
		{"delta=0", 8, 3, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := balloon.BalloonM("password", "salt", tt.spaceCost, tt.timeCost, tt.parallelCost, tt.delta)
			if !errors.Is(err, balloon.ErrInvalidCost) {
				t.Errorf("expected ErrInvalidCost, got %v", err)
			}
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixed-parameter wrappers
// ──────────────────────────────────────────────────────────────────────────────

func TestBalloonHash_MatchesExplicitParameters(t *testing.T) {
	got, err := balloon.BalloonHash("somepassword", "somesalt")
	if err != nil {
		t.Fatal(err)
	}
	digest, err := balloon.Balloon("somepassword", "somesalt",
		balloon.DefaultSpaceCost, balloon.DefaultTimeCost, balloon.DefaultHashDelta)
	if err != nil {
		t.Fatal(err)
	}
	if want := hex.EncodeToString(digest); got != want {
		t.Errorf("BalloonHash = %s, want %s", got, want)
	}
}

func TestBalloonMHash_MatchesExplicitParameters(t *testing.T) {
	got, err := balloon.BalloonMHash("somepassword", "somesalt")
	if err != nil {
		t.Fatal(err)
	}
	digest, err := balloon.BalloonM("somepassword", "somesalt",
		balloon.DefaultSpaceCost, balloon.DefaultTimeCost,
		balloon.DefaultParallelCost, balloon.DefaultHashDelta)
	if err != nil {
		t.Fatal(err)
	}
	if want := hex.EncodeToString(digest); got != want {
		t.Errorf("BalloonMHash = %s, want %s", got, want)
	}
}

func TestBalloonHash_LowercaseHex(t *testing.T) {
	got, err := balloon.BalloonHash("password", "salt")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 64 {
		t.Errorf("hex length = %d, want 64", len(got))
	}
	for _, c := range got {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Fatalf("non-lowercase-hex character %q in %s", c, got)
		}
	}
}
