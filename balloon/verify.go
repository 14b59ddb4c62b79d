package balloon

import (
	"crypto/subtle"
	"encoding/hex"
)

// Verify recomputes the sequential balloon digest for password and salt
// with the supplied cost parameters and compares its lowercase hex
// encoding against hashHex in constant time.
//
// The comparison inspects every character position unconditionally, so
// its running time depends only on the string length, never on the
// position of the first mismatch.  Two strings of different lengths
// compare false without a byte-wise pass; leaking the length is an
// accepted, documented limitation.
//
// An error is returned only for invalid cost parameters; a mismatching
// digest is a false result, not an error.
func Verify(hashHex, password, salt string, spaceCost, timeCost, delta int) (bool, error) {
	digest, err := Balloon(password, salt, spaceCost, timeCost, delta)
	if err != nil {
		return false, err
	}
	return constantTimeEqual(hashHex, hex.EncodeToString(digest)), nil
}

// VerifyM is the multi-core analogue of [Verify], recomputing with
// [BalloonM].
func VerifyM(hashHex, password, salt string, spaceCost, timeCost, parallelCost, delta int) (bool, error) {
	digest, err := BalloonM(password, salt, spaceCost, timeCost, parallelCost, delta)
	if err != nil {
		return false, err
	}
	return constantTimeEqual(hashHex, hex.EncodeToString(digest)), nil
}

// constantTimeEqual compares two strings without short-circuiting.
// subtle.ConstantTimeCompare returns 0 immediately on a length
// mismatch and otherwise accumulates equality across every byte.
func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
