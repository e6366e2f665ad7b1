package nickname

import (
	"errors"
	"fmt"
)

// Sentinel kinds for nickname table errors.
var (
	// ErrDataIntegrity reports a violated table invariant. The wrapped
	// message names the invariant; the artifact must not be published.
	ErrDataIntegrity = errors.New("nickname table integrity violated")

	// ErrNotConverged is the integrity failure raised when chain collapse
	// does not settle within the pass cap.
	ErrNotConverged = fmt.Errorf("%w: chain collapse did not converge", ErrDataIntegrity)
)
