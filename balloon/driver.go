package balloon

import (
	"crypto/subtle"
	"fmt"
	"hash"
)

// ──────────────────────────────────────────────────────────────────────────────
// Options
// ──────────────────────────────────────────────────────────────────────────────

const (
	// DefaultSpaceCost is the buffer size in blocks used by
	// [BalloonHash], [BalloonMHash], and [DefaultOptions].
	DefaultSpaceCost = 16

	// DefaultTimeCost is the number of mixing rounds used by
	// [BalloonHash], [BalloonMHash], and [DefaultOptions].
	DefaultTimeCost = 20

	// DefaultHashDelta is the neighbor count fixed by [BalloonHash],
	// [BalloonMHash], and [DefaultOptions].  The bare algorithm's
	// reference default is [DefaultDelta] (3); the recommended entry
	// points deliberately mix one extra neighbor per rewrite.
	DefaultHashDelta = 4

	// DefaultSaltLen is the random salt length in bytes generated by a
	// driver's Make.
	DefaultSaltLen = 16
)

// Options configures a [BalloonHasher] or [BalloonMHasher].
//
// All cost parameters are encoded into the output hash string, so
// changing them only affects newly produced hashes; existing hashes
// remain verifiable because Check reads parameters back out of the
// string.
type Options struct {
	// Primitive selects the underlying hash function.  The zero value
	// selects [DefaultPrimitive].
	Primitive PrimitiveName

	// SpaceCost is the buffer size in digest-sized blocks.
	// Minimum: 1.  Raise this first when tuning; memory is the cost
	// an attacker cannot shortcut.
	SpaceCost int

	// TimeCost is the number of mixing rounds.  Minimum: 1.
	TimeCost int

	// Delta is the number of pseudorandom neighbor blocks folded into
	// every block rewrite.  Minimum: 1.
	Delta int

	// ParallelCost is the number of independent lanes.  Used by
	// [BalloonMHasher] only; [BalloonHasher] ignores it.  Minimum: 1.
	ParallelCost int

	// SaltLen is the length of the random salt in bytes generated by
	// Make.  Minimum: 8.  Default: [DefaultSaltLen].
	SaltLen int
}

// DefaultOptions returns Options with the recommended production
// parameters: sha256, space_cost 16, time_cost 20, delta 4,
// parallel_cost 4, 16-byte salts.
func DefaultOptions() Options {
	return Options{
		Primitive:    DefaultPrimitive,
		SpaceCost:    DefaultSpaceCost,
		TimeCost:     DefaultTimeCost,
		Delta:        DefaultHashDelta,
		ParallelCost: DefaultParallelCost,
		SaltLen:      DefaultSaltLen,
	}
}

// resolveOptions applies the Primitive zero-value default, validates
// the option set, and resolves the primitive constructor.
func resolveOptions(opts Options) (Options, func() hash.Hash, error) {
	if opts.Primitive == "" {
		opts.Primitive = DefaultPrimitive
	}
	if err := validateCosts(opts.SpaceCost, opts.TimeCost, opts.Delta, opts.ParallelCost); err != nil {
		return Options{}, nil, err
	}
	if opts.SaltLen < 8 {
		return Options{}, nil, fmt.Errorf("%w: salt_len must be ≥ 8, got %d", ErrInvalidOption, opts.SaltLen)
	}
	newDigest, err := opts.Primitive.New()
	if err != nil {
		return Options{}, nil, err
	}
	return opts, newDigest, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// BalloonHasher
// ──────────────────────────────────────────────────────────────────────────────

// BalloonHasher hashes passwords with the sequential balloon variant
// and encodes the result as a self-describing PHC-style string:
//
//	$balloon$v=1$h=sha256,s=16,t=20,d=4$<salt>$<digest>
//
// # Thread safety
//
// BalloonHasher is immutable after construction and safe for concurrent
// use.
type BalloonHasher struct {
	opts      Options
	newDigest func() hash.Hash
}

// NewBalloonHasher constructs a BalloonHasher with the given options.
// Use [DefaultOptions] for recommended defaults.
func NewBalloonHasher(opts Options) (*BalloonHasher, error) {
	opts, newDigest, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return &BalloonHasher{opts: opts, newDigest: newDigest}, nil
}

// Driver returns [DriverBalloon].
func (h *BalloonHasher) Driver() DriverName { return DriverBalloon }

// Options returns the current parameter set.
func (h *BalloonHasher) Options() Options { return h.opts }

// Make hashes password with a fresh random salt and returns the encoded
// hash string.
func (h *BalloonHasher) Make(password string) (string, error) {
	salt, err := randomSalt(h.opts.SaltLen)
	if err != nil {
		return "", err
	}
	digest := compute(h.newDigest(), textPart(password), bytesPart(salt),
		h.opts.SpaceCost, h.opts.TimeCost, h.opts.Delta)
	return encodePHC(DriverBalloon, h.opts.Primitive,
		h.opts.SpaceCost, h.opts.TimeCost, 0, h.opts.Delta, salt, digest), nil
}

// Check verifies that password matches the encoded hash.  Parameters,
// primitive, and salt are read from the hash string itself, so
// verification works even when the hasher's options have changed since
// the hash was produced.
func (h *BalloonHasher) Check(password, hash string) (bool, error) {
	p, err := decodePHC(hash)
	if err != nil {
		return false, err
	}
	if p.driver != DriverBalloon {
		return false, fmt.Errorf("%w: hash is %s, not balloon", ErrAlgorithmMismatch, p.driver)
	}
	newDigest, err := p.primitive.New()
	if err != nil {
		return false, err
	}
	computed := compute(newDigest(), textPart(password), bytesPart(p.salt),
		p.spaceCost, p.timeCost, p.delta)
	return subtle.ConstantTimeCompare(computed, p.digest) == 1, nil
}

// NeedsRehash returns true if any parameter stored in hash differs from
// the hasher's current configuration.
func (h *BalloonHasher) NeedsRehash(hash string) (bool, error) {
	p, err := decodePHC(hash)
	if err != nil {
		return false, err
	}
	if p.driver != DriverBalloon {
		return false, fmt.Errorf("%w: hash is %s, not balloon", ErrAlgorithmMismatch, p.driver)
	}
	return p.primitive != h.opts.Primitive ||
		p.spaceCost != h.opts.SpaceCost ||
		p.timeCost != h.opts.TimeCost ||
		p.delta != h.opts.Delta, nil
}

// Info parses the hash string and returns the encoded parameters.
func (h *BalloonHasher) Info(hash string) (HashInfo, error) {
	return balloonInfo(hash, DriverBalloon)
}

// ──────────────────────────────────────────────────────────────────────────────
// BalloonMHasher
// ──────────────────────────────────────────────────────────────────────────────

// BalloonMHasher hashes passwords with the multi-core balloon variant:
// parallel_cost independent lanes, XOR-combined and finalised with one
// more hash call.  Lanes run concurrently, so wall-clock cost stays
// close to a single lane while an attacker must pay for all of them.
//
// Output format:
//
//	$balloon-m$v=1$h=sha256,s=16,t=20,p=4,d=4$<salt>$<digest>
//
// # Thread safety
//
// BalloonMHasher is immutable after construction and safe for
// concurrent use.
type BalloonMHasher struct {
	opts      Options
	newDigest func() hash.Hash
}

// NewBalloonMHasher constructs a BalloonMHasher with the given options.
// Use [DefaultOptions] for recommended defaults.
func NewBalloonMHasher(opts Options) (*BalloonMHasher, error) {
	opts, newDigest, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return &BalloonMHasher{opts: opts, newDigest: newDigest}, nil
}

// Driver returns [DriverBalloonM].
func (h *BalloonMHasher) Driver() DriverName { return DriverBalloonM }

// Options returns the current parameter set.
func (h *BalloonMHasher) Options() Options { return h.opts }

// Make hashes password with a fresh random salt and returns the encoded
// hash string.
func (h *BalloonMHasher) Make(password string) (string, error) {
	salt, err := randomSalt(h.opts.SaltLen)
	if err != nil {
		return "", err
	}
	digest := computeM(h.newDigest, textPart(password), salt,
		h.opts.SpaceCost, h.opts.TimeCost, h.opts.ParallelCost, h.opts.Delta)
	return encodePHC(DriverBalloonM, h.opts.Primitive,
		h.opts.SpaceCost, h.opts.TimeCost, h.opts.ParallelCost, h.opts.Delta, salt, digest), nil
}

// Check verifies that password matches the encoded hash, recomputing
// with the parameters stored in the hash string.
func (h *BalloonMHasher) Check(password, hash string) (bool, error) {
	p, err := decodePHC(hash)
	if err != nil {
		return false, err
	}
	if p.driver != DriverBalloonM {
		return false, fmt.Errorf("%w: hash is %s, not balloon-m", ErrAlgorithmMismatch, p.driver)
	}
	newDigest, err := p.primitive.New()
	if err != nil {
		return false, err
	}
	computed := computeM(newDigest, textPart(password), p.salt,
		p.spaceCost, p.timeCost, p.parallelCost, p.delta)
	return subtle.ConstantTimeCompare(computed, p.digest) == 1, nil
}

// NeedsRehash returns true if any parameter stored in hash differs from
// the hasher's current configuration.
func (h *BalloonMHasher) NeedsRehash(hash string) (bool, error) {
	p, err := decodePHC(hash)
	if err != nil {
		return false, err
	}
	if p.driver != DriverBalloonM {
		return false, fmt.Errorf("%w: hash is %s, not balloon-m", ErrAlgorithmMismatch, p.driver)
	}
	return p.primitive != h.opts.Primitive ||
		p.spaceCost != h.opts.SpaceCost ||
		p.timeCost != h.opts.TimeCost ||
		p.parallelCost != h.opts.ParallelCost ||
		p.delta != h.opts.Delta, nil
}

// Info parses the hash string and returns the encoded parameters.
func (h *BalloonMHasher) Info(hash string) (HashInfo, error) {
	return balloonInfo(hash, DriverBalloonM)
}

// balloonInfo is the shared Info implementation for both drivers.
func balloonInfo(hash string, expected DriverName) (HashInfo, error) {
	p, err := decodePHC(hash)
	if err != nil {
		return HashInfo{}, err
	}
	if p.driver != expected {
		return HashInfo{}, fmt.Errorf("%w: hash is %s, not %s", ErrAlgorithmMismatch, p.driver, expected)
	}
	params := map[string]any{
		"version":    p.version,
		"primitive":  p.primitive,
		"space_cost": p.spaceCost,
		"time_cost":  p.timeCost,
		"delta":      p.delta,
	}
	if p.driver == DriverBalloonM {
		params["parallel_cost"] = p.parallelCost
	}
	return HashInfo{Driver: p.driver, Params: params}, nil
}
