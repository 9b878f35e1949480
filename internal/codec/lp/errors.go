package lp

import "errors"

var (
	errEmbeddedNUL = errors.New("string contains a NUL byte")
	errUnknownAlgo = errors.New("unknown compression algorithm")
)
