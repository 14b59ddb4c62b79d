package balloon

import "strings"

// DriverName identifies a balloon hashing driver.
type DriverName string

const (
	// DriverBalloon selects the sequential single-core driver.
	DriverBalloon DriverName = "balloon"
	// DriverBalloonM selects the multi-core driver (recommended: the
	// XOR-combined lanes add parallelism without weakening any single
	// lane's sequential dependency).
	DriverBalloonM DriverName = "balloon-m"
)

// Hasher is the interface satisfied by both balloon drivers.
//
// All implementations are safe for concurrent use by multiple
// goroutines: a driver is immutable after construction and every call
// works on private state.
type Hasher interface {
	// Make hashes a plaintext password and returns the encoded hash
	// string.  A fresh cryptographic salt is generated for every call,
	// so two calls with the same password produce different outputs.
	Make(password string) (string, error)

	// Check verifies that password matches the previously encoded
	// hash.  Returns (true, nil) on match, (false, nil) on mismatch,
	// or (false, err) if the hash is structurally invalid.
	//
	// Comparison is performed in constant time to prevent timing
	// attacks.
	Check(password, hash string) (bool, error)

	// NeedsRehash returns true when the hash was produced with
	// parameters different from the hasher's current configuration.
	// Callers should re-hash the password on next successful login
	// when this returns true.
	NeedsRehash(hash string) (bool, error)

	// Info extracts metadata from an encoded hash string without
	// verifying it.  Useful for auditing and migration tooling.
	Info(hash string) (HashInfo, error)

	// Driver returns the DriverName implemented by this hasher.
	Driver() DriverName
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Driver is the balloon variant that produced the hash.
	Driver DriverName

	// Params holds parameters extracted from the hash string:
	//
	//	"version"       → int
	//	"primitive"     → PrimitiveName
	//	"space_cost"    → int
	//	"time_cost"     → int
	//	"delta"         → int
	//	"parallel_cost" → int (balloon-m only)
	Params map[string]any
}

// DetectDriver inspects a hash string and returns the [DriverName] that
// produced it.  It is a prefix heuristic and does not verify the hash
// itself.
//
// The second return value is false when the hash format is not
// recognised.
func DetectDriver(hash string) (DriverName, bool) {
	switch {
	// balloon-m must be tested first: "$balloon$" is a prefix-sibling.
	case strings.HasPrefix(hash, "$balloon-m$"):
		return DriverBalloonM, true
	case strings.HasPrefix(hash, "$balloon$"):
		return DriverBalloon, true
	default:
		return "", false
	}
}
