package balloon

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// phcVersion is the format version encoded into driver-produced hash
// strings.
const phcVersion = 1

// phcParams holds parameters and raw values decoded from a
// driver-produced hash string.
type phcParams struct {
	driver       DriverName
	version      int
	primitive    PrimitiveName
	spaceCost    int
	timeCost     int
	parallelCost int // 0 for single-core hashes
	delta        int
	salt         []byte
	digest       []byte
}

// encodePHC serialises a balloon hash in PHC-style string format:
//
//	$balloon$v=1$h=sha256,s=16,t=20,d=4$<salt_base64>$<digest_base64>
//	$balloon-m$v=1$h=sha256,s=16,t=20,p=4,d=4$<salt_base64>$<digest_base64>
//
// The base64 encoding uses the standard alphabet without padding
// (RFC 4648 §5 without "="), the convention shared by PHC-format
// Argon2 implementations.
func encodePHC(driver DriverName, primitive PrimitiveName, spaceCost, timeCost, parallelCost, delta int, salt, digest []byte) string {
	var params string
	if driver == DriverBalloonM {
		params = fmt.Sprintf("h=%s,s=%d,t=%d,p=%d,d=%d", primitive, spaceCost, timeCost, parallelCost, delta)
	} else {
		params = fmt.Sprintf("h=%s,s=%d,t=%d,d=%d", primitive, spaceCost, timeCost, delta)
	}
	return fmt.Sprintf("$%s$v=%d$%s$%s$%s",
		string(driver),
		phcVersion,
		params,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
}

// decodePHC parses a balloon hash string and returns its components.
//
// Expected format (6 dollar-delimited segments, first is empty):
//
//	$balloon$v=1$h=sha256,s=16,t=20,d=4$<salt>$<digest>
func decodePHC(encoded string) (*phcParams, error) {
	// Split on "$"; the leading "$" produces an empty first element.
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 5-segment PHC string, got %d segments",
			ErrInvalidHash, len(parts)-1)
	}

	// parts[1]: driver name
	var driver DriverName
	switch parts[1] {
	case string(DriverBalloon):
		driver = DriverBalloon
	case string(DriverBalloonM):
		driver = DriverBalloonM
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidHash, parts[1])
	}

	// parts[2]: "v=<version>"
	version, err := parseVersion(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	// parts[3]: "h=<primitive>,s=<space>,t=<time>[,p=<parallel>],d=<delta>"
	kvs, err := parseParams(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	primitive, ok := kvs["h"]
	if !ok {
		return nil, fmt.Errorf("%w: missing h in parameter segment %q", ErrInvalidHash, parts[3])
	}
	p := &phcParams{
		driver:    driver,
		version:   version,
		primitive: PrimitiveName(primitive),
	}
	if p.spaceCost, err = costParam(kvs, "s"); err != nil {
		return nil, err
	}
	if p.timeCost, err = costParam(kvs, "t"); err != nil {
		return nil, err
	}
	if p.delta, err = costParam(kvs, "d"); err != nil {
		return nil, err
	}
	if driver == DriverBalloonM {
		if p.parallelCost, err = costParam(kvs, "p"); err != nil {
			return nil, err
		}
	}

	// parts[4]: base64-encoded salt
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: invalid salt base64: %v", ErrInvalidHash, err)
	}

	// parts[5]: base64-encoded digest
	if p.digest, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: invalid digest base64: %v", ErrInvalidHash, err)
	}

	return p, nil
}

// parseVersion parses the "v=<n>" segment.
func parseVersion(s string) (int, error) {
	if !strings.HasPrefix(s, "v=") {
		return 0, fmt.Errorf("expected %q prefix in %q", "v=", s)
	}
	return strconv.Atoi(s[len("v="):])
}

// parseParams splits "h=sha256,s=16,t=20,d=4" into a map.  Values stay
// strings; the primitive name is not numeric.
func parseParams(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, kv := range strings.Split(s, ",") {
		eq := strings.IndexByte(kv, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("malformed param %q", kv)
		}
		out[kv[:eq]] = kv[eq+1:]
	}
	return out, nil
}

// costParam extracts a positive integer parameter from a parsed
// parameter map.  A missing or non-positive value makes the whole hash
// string invalid.
func costParam(kvs map[string]string, key string) (int, error) {
	raw, ok := kvs[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s in parameter segment", ErrInvalidHash, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric value for %s: %v", ErrInvalidHash, key, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("%w: %s must be ≥ 1, got %d", ErrInvalidHash, key, v)
	}
	return v, nil
}

// randomSalt returns n cryptographically random bytes.
func randomSalt(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("balloon: failed to generate salt: %w", err)
	}
	return b, nil
}
