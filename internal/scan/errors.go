package scan

import "errors"

// Bind-time error taxonomy.
var (
	// ErrConfigError covers bad option combinations, a nickname not found
	// in a conf file, or an unreadable conf file. Unknown built-ins are
	// reported as ErrInvalidFormatType.
	ErrConfigError = errors.New("scan: config error")

	// ErrInvalidFormat wraps logformat.ErrInvalidFormat at the scan seam.
	ErrInvalidFormat = errors.New("scan: invalid format")

	// ErrInvalidFormatType is raised for an unrecognized built-in format_type
	// (anything other than "common"/"combined" when no conf is supplied).
	ErrInvalidFormatType = errors.New("scan: invalid format_type")

	// ErrNoMatchingFormat is raised when detection found nothing usable and
	// raw mode was not requested as a fallback.
	ErrNoMatchingFormat = errors.New("scan: no matching format")
)
