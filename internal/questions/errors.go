package questions

import "errors"

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSetNotFound      = errors.New("set not found")
	ErrEmptyContent     = errors.New("content is empty or invalid")
)
