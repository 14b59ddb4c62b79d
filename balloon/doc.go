// Package balloon implements Balloon Hashing, the provably memory-hard
// password-hashing function of Boneh, Corrigan-Gibbs, and Schechter
// (2016, https://eprint.iacr.org/2016/027).
//
// # Architecture
//
// The core is a pair of pure functions.  [Balloon] runs the sequential
// algorithm: a buffer of space_cost digest-sized blocks is filled from
// password and salt (expand), every block is rewritten time_cost times
// with a data-dependent access pattern (mix), and the last block is the
// digest (extract).  [BalloonM] runs parallel_cost independent Balloon
// lanes with distinct salts, XORs their outputs, and finalises with one
// more hash call.  [Verify] and [VerifyM] recompute a digest and compare
// it against a hex-encoded reference in constant time.
//
// On top of the core sit two password-hashing drivers in the style of
// PHC-format hashers: [BalloonHasher] (driver name "balloon") and
// [BalloonMHasher] (driver name "balloon-m").  Both implement the
// [Hasher] interface — Make generates a fresh random salt and returns a
// self-describing hash string; Check reads the parameters back out of
// the string, so previously produced hashes stay verifiable after the
// hasher's configuration changes.  The [Manager] is a named driver
// registry and dispatcher for applications where hashes from several
// drivers coexist.
//
// The underlying hash primitive is a single configuration value, not a
// per-call choice: the package-level functions use [DefaultPrimitive]
// (SHA-256, which all published test vectors assume), and a driver is
// bound to the [PrimitiveName] in its [Options] at construction.
//
// # Quick start
//
//	hash, err := balloon.BalloonHash("my-secret-password", salt)
//	if err != nil { log.Fatal(err) }
//
//	ok, _ := balloon.Verify(hash, "my-secret-password", salt, 16, 20, 4)
//
// Or with the driver layer, which manages salts for you:
//
//	h, err := balloon.NewBalloonMHasher(balloon.DefaultOptions())
//	if err != nil { log.Fatal(err) }
//
//	encoded, _ := h.Make("my-secret-password")
//	ok, _ := h.Check("my-secret-password", encoded)
//
// # Security defaults
//
//   - space_cost 16, time_cost 20, delta 4, parallel_cost 4 — the
//     parameters fixed by [BalloonHash], [BalloonMHash], and
//     [DefaultOptions].  Raise space_cost first when tuning: memory is
//     what prices out GPU and ASIC attackers.
//   - 16-byte random salts from crypto/rand for driver-produced hashes.
//   - SHA-256 as the default primitive; sha3-256, blake2b-256,
//     blake2s-256, and sha512 are also registered (see [PrimitiveName]).
//
// Within one lane the algorithm is deliberately sequential — each block
// rewrite reads the previous rewrite's output — so only the independent
// lanes of [BalloonM] run concurrently.
package balloon
