package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse        = errors.New("parse error")
	ErrDuplicateKey = fmt.Errorf("%w: duplicate key", ErrParse)
	ErrTrailing     = fmt.Errorf("%w: data after document", ErrParse)
)
