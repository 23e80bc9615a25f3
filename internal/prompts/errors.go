package prompts

import "errors"

// ErrInvalidStage indicates an unrecognized audit stage value.
var ErrInvalidStage = errors.New("invalid audit stage")
