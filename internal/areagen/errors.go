package areagen

import "errors"

// ErrConfig is the root of every configuration failure. Callers must change
// settings or areas before retrying.
var ErrConfig = errors.New("areagen: invalid configuration")

var (
	// ErrSeedUnset is returned for a negative seed when no seed was configured before.
	ErrSeedUnset = configError("no seed configured")
	// ErrRadiusTooLarge is returned when a height area could spill past the loaded window.
	ErrRadiusTooLarge = configError("area radius exceeds half a grid cell")
	// ErrMapTooLarge is returned when a whole-map generation exceeds MaxWholeMapTiles.
	ErrMapTooLarge = configError("map exceeds tile limit")
	// ErrWorldTooSmall is returned when a world has fewer than 3 cells along
	// an axis, so a 3×3 window would load one cell twice.
	ErrWorldTooSmall = configError("world smaller than 3x3 cells")
)

type cfgErr struct{ msg string }

func configError(msg string) error { return &cfgErr{msg: msg} }

func (e *cfgErr) Error() string        { return "areagen: " + e.msg }
func (e *cfgErr) Is(target error) bool { return target == ErrConfig }
