package splitter

import (
	"errors"
)

var (
	ErrUsage     = errors.New("usage")
	ErrInput     = errors.New("input")
	ErrOutput    = errors.New("output")
	ErrCodec     = errors.New("gzip")
	ErrParse     = errors.New("malformed xml")
	ErrStructure = errors.New("invalid catalog")
)
