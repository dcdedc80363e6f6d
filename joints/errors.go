package joints

import (
	"github.com/pkg/errors"
)

// Skip reasons. Each one ends the classification of a single component.
var (
	ErrNoCenter          = errors.New("NoCenter")
	ErrUnresolvedABT     = errors.New("UnresolvedABT")
	ErrNoCEdge           = errors.New("NoCEdge")
	ErrNoCCorner         = errors.New("NoCCorner")
	ErrNoACorner         = errors.New("NoACorner")
	ErrUndefinedGeometry = errors.New("UndefinedGeometry")

	// Critical weld groups
	ErrNonstandardGroup = errors.New("NonstandardGroup")
	ErrNoShortElements  = errors.New("NoShortElements")
	ErrShortNotParallel = errors.New("ShortNotParallel")
	ErrObliqueGroup     = errors.New("ObliqueGroup")
)

var skipReasons = []error{
	ErrNoCenter, ErrUnresolvedABT, ErrNoCEdge, ErrNoCCorner, ErrNoACorner, ErrUndefinedGeometry,
	ErrNonstandardGroup, ErrNoShortElements, ErrShortNotParallel, ErrObliqueGroup,
}

// Reason returns the skip reason code carried by err, or "" when err is not a skip
func Reason(err error) string {
	for _, r := range skipReasons {
		if errors.Is(err, r) {
			return r.Error()
		}
	}
	return ""
}

// IsSkip reports whether err is a component-local skip rather than a failure of the pass
func IsSkip(err error) bool {
	return Reason(err) != ""
}
