package balloon

import "errors"

// Sentinel errors returned by balloon operations.
//
// Use [errors.Is] for comparisons:
//
//	_, err := balloon.Balloon(password, salt, 0, 3, 3)
//	if errors.Is(err, balloon.ErrInvalidCost) {
//	    // a cost parameter was out of range
//	}
var (
	// ErrInvalidCost is returned when space_cost, time_cost, delta, or
	// parallel_cost is less than 1.  Cost parameters are never clamped;
	// the call fails before any hashing work begins.
	ErrInvalidCost = errors.New("balloon: cost parameter out of range")

	// ErrUnknownPrimitive is returned when a [PrimitiveName] does not
	// correspond to a registered hash primitive.  This is a
	// configuration error, deliberately distinct from the
	// cost-parameter validation covered by [ErrInvalidCost].
	ErrUnknownPrimitive = errors.New("balloon: unknown hash primitive")

	// ErrInvalidOption is returned when a driver constructor is called
	// with an option value outside the allowed range (e.g., a salt
	// length below 8 bytes).
	ErrInvalidOption = errors.New("balloon: invalid option value")

	// ErrInvalidHash is returned when a hash string cannot be parsed
	// because it has an unrecognised format, missing fields, or invalid
	// encoding.
	ErrInvalidHash = errors.New("balloon: invalid or unrecognised hash string")

	// ErrAlgorithmMismatch is returned by a [Hasher]'s Check,
	// NeedsRehash, or Info method when the hash string was produced by
	// a different driver than the one implemented by that hasher.
	ErrAlgorithmMismatch = errors.New("balloon: hash was produced by a different driver")

	// ErrDriverNotFound is returned by [Manager.Driver], or indirectly
	// by the Manager's hashing operations, when the requested driver
	// has not been registered.
	ErrDriverNotFound = errors.New("balloon: driver not found")

	// ErrEmptyDriverName is returned by [Manager.RegisterDriver] when
	// the supplied driver name is an empty string.
	ErrEmptyDriverName = errors.New("balloon: driver name must not be empty")

	// ErrNilHasher is returned by [Manager.RegisterDriver] when a nil
	// [Hasher] is supplied.
	ErrNilHasher = errors.New("balloon: hasher must not be nil")
)
