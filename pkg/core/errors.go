package core

import (
	"errors"
)

// Validation errors
var (
	ErrInvalidTemplateID   = errors.New("recurring: invalid template id (must be alphanumeric, start with letter)")
	ErrTemplateIDTooLong   = errors.New("recurring: template id too long")
	ErrTemplateNameTooLong = errors.New("recurring: template name too long")
	ErrInvalidRule         = errors.New("recurring: rule fields out of range for kind")
	ErrInvalidStartTime    = errors.New("recurring: start time must be HH:MM")
	ErrTaskNotFound        = errors.New("recurring: task not found")
)
