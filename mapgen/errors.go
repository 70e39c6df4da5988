package mapgen

import "errors"

// Errors reporting a mis-composed builder chain. They are configuration bugs
// and should be caught by tests.
var (
	ErrMultipleStarters = errors.New("only one starting builder is allowed")
	ErrNoStarter        = errors.New("no starting builder")
	ErrAlreadyBuilt     = errors.New("builder chain already built")
	ErrNotBuilt         = errors.New("builder chain not built yet")
	ErrMissingRooms     = errors.New("requires a room-based builder first")
	ErrMissingStart     = errors.New("requires a starting position first")
	ErrMissingCorridors = errors.New("requires a corridor builder first")
)

// Errors reporting a generation failure.
var (
	// ErrExhausted is returned when a generator did not converge within its
	// retry budget. Callers may retry with another chain.
	ErrExhausted = errors.New("generation budget exhausted")
	// ErrNoFloor is returned when a map has no usable floor tile.
	ErrNoFloor = errors.New("no floor tile available")
	// ErrNoExit is returned when no tile other than the start is reachable.
	ErrNoExit = errors.New("no reachable exit position")
	// ErrEmptyTable is returned when drawing from a table with zero total
	// weight.
	ErrEmptyTable = errors.New("random table has no weight")
	// ErrBadPrefab is returned for malformed prefab templates.
	ErrBadPrefab = errors.New("bad prefab template")
)
