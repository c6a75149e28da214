package skills

import "errors"

var (
	ErrEmptyInput      = errors.New("skill is empty")
	ErrDuplicateSkill  = errors.New("skill already exists")
	ErrIndexOutOfRange = errors.New("skill position out of range")
	ErrRemovalPending  = errors.New("skill is already being removed")
)
