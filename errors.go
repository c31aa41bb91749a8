package gfp

import "github.com/pkg/errors"

// Error kinds returned by this package. All are deterministic validation
// failures on the input at hand; callers can match them with errors.Is
// through wrapped context.
var (
	// ErrBadProbe marks a probe with more than one non-trivial dimension.
	ErrBadProbe = errors.New("probe must be a vector or scalar")

	// ErrSizeMismatch marks a distribution whose column count disagrees
	// with its probe, or misaligned group distributions.
	ErrSizeMismatch = errors.New("distribution and probe sizes differ")

	// ErrSubjectCountMismatch marks condition inputs with different
	// numbers of subjects.
	ErrSubjectCountMismatch = errors.New("subject counts differ between conditions")

	// ErrFileNotFound marks a missing data file in low-memory mode.
	ErrFileNotFound = errors.New("data file not found")
)
