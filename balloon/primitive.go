package balloon

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// PrimitiveName identifies the cryptographic hash primitive that drives
// a balloon computation.  Using a named string type prevents accidental
// confusion with plain strings.
//
// The primitive is a configuration value, not a per-call choice: the
// package-level functions ([Balloon], [BalloonM], [Verify], …) are bound
// to [DefaultPrimitive], and a driver is bound to the primitive in its
// [Options] at construction.
type PrimitiveName string

const (
	// SHA256 selects SHA-256 (crypto/sha256).  All published Balloon
	// test vectors use this primitive.
	SHA256 PrimitiveName = "sha256"
	// SHA512 selects SHA-512 (crypto/sha512), producing 64-byte blocks
	// and digests.
	SHA512 PrimitiveName = "sha512"
	// SHA3_256 selects SHA3-256 (golang.org/x/crypto/sha3).
	SHA3_256 PrimitiveName = "sha3-256"
	// BLAKE2b256 selects BLAKE2b with a 256-bit digest
	// (golang.org/x/crypto/blake2b).
	BLAKE2b256 PrimitiveName = "blake2b-256"
	// BLAKE2s256 selects BLAKE2s with a 256-bit digest
	// (golang.org/x/crypto/blake2s).
	BLAKE2s256 PrimitiveName = "blake2s-256"
)

// DefaultPrimitive is the primitive used by the package-level functions
// and by [DefaultOptions].  Swapping it changes every call site at once;
// nothing else in the package names a concrete hash function.
const DefaultPrimitive = SHA256

// New returns a constructor for the named primitive, or
// [ErrUnknownPrimitive] if the name is not registered.
//
// The constructor never fails: the keyed primitives (BLAKE2b, BLAKE2s)
// are instantiated keyless, which is the only mode that cannot error.
func (n PrimitiveName) New() (func() hash.Hash, error) {
	switch n {
	case SHA256:
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	case SHA3_256:
		return func() hash.Hash { return sha3.New256() }, nil
	case BLAKE2b256:
		return func() hash.Hash { h, _ := blake2b.New256(nil); return h }, nil
	case BLAKE2s256:
		return func() hash.Hash { h, _ := blake2s.New256(nil); return h }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, string(n))
	}
}

// Size returns the digest (and block) size in bytes of the named
// primitive, or [ErrUnknownPrimitive] if the name is not registered.
func (n PrimitiveName) Size() (int, error) {
	newDigest, err := n.New()
	if err != nil {
		return 0, err
	}
	return newDigest().Size(), nil
}

// mustPrimitive resolves a name known to be registered.  Only called
// with the [DefaultPrimitive] constant.
func mustPrimitive(n PrimitiveName) func() hash.Hash {
	newDigest, err := n.New()
	if err != nil {
		panic(err)
	}
	return newDigest
}
