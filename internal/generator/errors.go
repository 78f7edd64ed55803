package generator

import "errors"

var (
	ErrInvalidConfig = errors.New("icon generator configuration invalid")
	ErrOutputDir     = errors.New("icon output directory could not be created")
	ErrWriteIcon     = errors.New("icon could not be written")
)
