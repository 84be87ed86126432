package engagement

import "errors"

// Domain errors for engagement.
var (
	ErrInvalidPlan     = errors.New("invalid plan")
	ErrInvalidActivity = errors.New("invalid activity type")
)
