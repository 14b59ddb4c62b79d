package balloon

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"math/big"
)

const (
	// DefaultDelta is the reference algorithm's default number of
	// pseudorandom neighbor blocks folded into every block rewrite.
	// Note that the fixed-parameter wrappers [BalloonHash] and
	// [BalloonMHash] use [DefaultHashDelta] (4) instead.
	DefaultDelta = 3

	// DefaultParallelCost is the reference algorithm's default number
	// of independent lanes for the multi-core variant.
	DefaultParallelCost = 4
)

// ──────────────────────────────────────────────────────────────────────────────
// Block-hash argument serialisation
// ──────────────────────────────────────────────────────────────────────────────

// part is one argument to a block-hash call: an unsigned integer, a
// byte block, or text.  The reference dispatches on runtime type; here
// the variants are tagged explicitly and consumed by one serialiser so
// the byte-level encoding stays pinned to the published vectors.
type part struct {
	kind  partKind
	num   uint64
	block []byte
	text  string
}

type partKind uint8

const (
	partUint partKind = iota
	partBytes
	partText
)

func uintPart(v uint64) part  { return part{kind: partUint, num: v} }
func bytesPart(b []byte) part { return part{kind: partBytes, block: b} }
func textPart(s string) part  { return part{kind: partText, text: s} }

// digestParts concatenates parts in call order and runs the result
// through one invocation of h.  Integers are serialised as 8-byte
// little-endian, text as its raw UTF-8 bytes, byte blocks verbatim.
// No part is reordered or deduplicated.
func digestParts(h hash.Hash, parts ...part) []byte {
	h.Reset()
	var buf [8]byte
	for _, p := range parts {
		switch p.kind {
		case partUint:
			binary.LittleEndian.PutUint64(buf[:], p.num)
			h.Write(buf[:])
		case partBytes:
			h.Write(p.block)
		case partText:
			h.Write([]byte(p.text))
		}
	}
	return h.Sum(nil)
}

// bytesToUint decodes b as a little-endian unsigned big integer into z:
// the bytes are reversed, then parsed as a base-256 big-endian
// magnitude.  The reference folds hash outputs into block indices
// exactly this way; it is a wire-level contract, not a quirk to fix —
// changing it breaks the published vectors.
func bytesToUint(z *big.Int, b []byte) *big.Int {
	rev := make([]byte, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	return z.SetBytes(rev)
}

// ──────────────────────────────────────────────────────────────────────────────
// Core algorithm
// ──────────────────────────────────────────────────────────────────────────────

// lane is the working state of one sequential balloon computation: the
// block buffer, a reusable digest, and the hash-call counter threaded
// through every phase.  A lane is never shared; each [BalloonM] lane
// owns a private one, so one lane's counter cannot leak into another's.
type lane struct {
	h      hash.Hash
	blocks [][]byte
	cnt    uint64
}

func (l *lane) hash(parts ...part) []byte {
	return digestParts(l.h, parts...)
}

// seed writes the first block, hash(0, password, salt), leaving the
// counter at 1.
func (l *lane) seed(password, salt part) {
	l.blocks = append(l.blocks, l.hash(uintPart(l.cnt), password, salt))
	l.cnt++
}

// expand fills the buffer up to spaceCost blocks; block s hashes the
// counter and block s-1.
func (l *lane) expand(spaceCost int) {
	for s := 1; s < spaceCost; s++ {
		l.blocks = append(l.blocks, l.hash(uintPart(l.cnt), bytesPart(l.blocks[s-1])))
		l.cnt++
	}
}

// mix rewrites every block timeCost times, in round-major order.  Each
// rewrite folds in the already-updated left neighbor (wrapping to the
// last block at s=0) and delta pseudorandomly selected blocks.  The
// neighbor-selection hash over (t, s, i) does not consume the counter;
// the two block rewrites and the salt fold each do.
func (l *lane) mix(salt part, spaceCost, timeCost, delta int) {
	spaceBig := big.NewInt(int64(spaceCost))
	otherBig := new(big.Int)
	for t := 0; t < timeCost; t++ {
		for s := 0; s < spaceCost; s++ {
			prev := l.blocks[(s+spaceCost-1)%spaceCost]
			l.blocks[s] = l.hash(uintPart(l.cnt), bytesPart(prev), bytesPart(l.blocks[s]))
			l.cnt++
			for i := 0; i < delta; i++ {
				idxBlock := l.hash(uintPart(uint64(t)), uintPart(uint64(s)), uintPart(uint64(i)))
				otherHash := l.hash(uintPart(l.cnt), salt, bytesPart(idxBlock))
				l.cnt++
				other := bytesToUint(otherBig, otherHash).Mod(otherBig, spaceBig).Uint64()
				l.blocks[s] = l.hash(uintPart(l.cnt), bytesPart(l.blocks[s]), bytesPart(l.blocks[other]))
				l.cnt++
			}
		}
	}
}

// extract returns the last block of the buffer.
func (l *lane) extract() []byte {
	return l.blocks[len(l.blocks)-1]
}

// compute runs one sequential balloon computation.  Costs must already
// be validated.
func compute(h hash.Hash, password, salt part, spaceCost, timeCost, delta int) []byte {
	l := &lane{h: h, blocks: make([][]byte, 0, spaceCost)}
	l.seed(password, salt)
	l.expand(spaceCost)
	l.mix(salt, spaceCost, timeCost, delta)
	return l.extract()
}

// computeM runs parallelCost independent lanes concurrently, XOR-folds
// their outputs, and finalises with hash(password, salt, fold).  Lane p
// derives its salt as salt ++ LE64(p), so no two lanes compute the same
// digest.  The fold is commutative, so lane completion order is
// irrelevant and the lanes need no coordination beyond the join.
func computeM(newDigest func() hash.Hash, password part, salt []byte, spaceCost, timeCost, parallelCost, delta int) []byte {
	results := make(chan []byte, parallelCost)
	for p := 1; p <= parallelCost; p++ {
		go func(laneIdx uint64) {
			laneSalt := make([]byte, 0, len(salt)+8)
			laneSalt = append(laneSalt, salt...)
			laneSalt = binary.LittleEndian.AppendUint64(laneSalt, laneIdx)
			results <- compute(newDigest(), password, bytesPart(laneSalt), spaceCost, timeCost, delta)
		}(uint64(p))
	}
	out := make([]byte, newDigest().Size())
	for p := 0; p < parallelCost; p++ {
		for i, v := range <-results {
			out[i] ^= v
		}
	}
	return digestParts(newDigest(), password, bytesPart(salt), bytesPart(out))
}

// validateCosts rejects non-positive cost parameters before any hashing
// work begins.  Values are never clamped.
func validateCosts(spaceCost, timeCost, delta, parallelCost int) error {
	if spaceCost < 1 {
		return fmt.Errorf("%w: space_cost must be ≥ 1, got %d", ErrInvalidCost, spaceCost)
	}
	if timeCost < 1 {
		return fmt.Errorf("%w: time_cost must be ≥ 1, got %d", ErrInvalidCost, timeCost)
	}
	if delta < 1 {
		return fmt.Errorf("%w: delta must be ≥ 1, got %d", ErrInvalidCost, delta)
	}
	if parallelCost < 1 {
		return fmt.Errorf("%w: parallel_cost must be ≥ 1, got %d", ErrInvalidCost, parallelCost)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Public API
// ──────────────────────────────────────────────────────────────────────────────

// Balloon computes the sequential memory-hard digest of password and
// salt using [DefaultPrimitive].  spaceCost is the number of
// digest-sized buffer blocks, timeCost the number of mixing rounds, and
// delta the number of pseudorandom neighbor blocks folded into every
// rewrite (the reference default is [DefaultDelta]).
//
// All parameters must be ≥ 1 or [ErrInvalidCost] is returned before any
// hashing work.  Empty password and empty salt are valid inputs.  The
// result is deterministic in all five arguments.
func Balloon(password, salt string, spaceCost, timeCost, delta int) ([]byte, error) {
	if err := validateCosts(spaceCost, timeCost, delta, 1); err != nil {
		return nil, err
	}
	h := mustPrimitive(DefaultPrimitive)()
	return compute(h, textPart(password), textPart(salt), spaceCost, timeCost, delta), nil
}

// BalloonHash is the recommended default-parameter entry point for the
// sequential variant.  It fixes space_cost [DefaultSpaceCost], time_cost
// [DefaultTimeCost], and delta [DefaultHashDelta], and returns the
// digest as a lowercase hex string.
func BalloonHash(password, salt string) (string, error) {
	digest, err := Balloon(password, salt, DefaultSpaceCost, DefaultTimeCost, DefaultHashDelta)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest), nil
}

// BalloonM computes the multi-core variant: parallelCost independent
// [Balloon] lanes over lane-specific salts, combined by byte-wise XOR
// and finalised with one more hash call.  Lanes run concurrently; each
// owns a private buffer and counter.
//
// All cost parameters must be ≥ 1 or [ErrInvalidCost] is returned
// before any hashing work.
func BalloonM(password, salt string, spaceCost, timeCost, parallelCost, delta int) ([]byte, error) {
	if err := validateCosts(spaceCost, timeCost, delta, parallelCost); err != nil {
		return nil, err
	}
	newDigest := mustPrimitive(DefaultPrimitive)
	return computeM(newDigest, textPart(password), []byte(salt), spaceCost, timeCost, parallelCost, delta), nil
}

// BalloonMHash is the recommended default-parameter entry point for the
// multi-core variant.  It fixes space_cost [DefaultSpaceCost],
// time_cost [DefaultTimeCost], parallel_cost [DefaultParallelCost], and
// delta [DefaultHashDelta], and returns the digest as a lowercase hex
// string.
func BalloonMHash(password, salt string) (string, error) {
	digest, err := BalloonM(password, salt, DefaultSpaceCost, DefaultTimeCost, DefaultParallelCost, DefaultHashDelta)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest), nil
}
