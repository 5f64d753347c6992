package models

import "errors"

var (
	// ErrConfigParse reports a malformed or invalid watermark configuration.
	ErrConfigParse = errors.New("config parse error")
	// ErrFontLoad reports a missing or unparseable font file.
	ErrFontLoad = errors.New("font load error")
	// ErrInvalidInputPath reports an input that is neither a directory nor an image file.
	ErrInvalidInputPath = errors.New("invalid input path")
	// ErrDecode reports corrupt or unsupported image data.
	ErrDecode = errors.New("decode error")
	// ErrWrite reports a failure to encode or persist a result.
	ErrWrite = errors.New("write error")
)
