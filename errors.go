package note2site

import "errors"

// Sentinel errors for library operations.
var (
	ErrSourceNotFound = errors.New("source directory not found")
	ErrEmptyOutput    = errors.New("output directory cannot be empty")
	ErrInvalidMode    = errors.New("invalid aggregation mode")
	ErrInvalidLayout  = errors.New("invalid layout name")
	ErrUnsafeClean    = errors.New("refusing to clean output directory")
	ErrWriteOutput    = errors.New("failed to write site output")
	ErrSiteBuild      = errors.New("site build failed")
	ErrTransform      = errors.New("page transform failed")
	ErrNilTransformer = errors.New("transformer cannot be nil")

	// Manifest validation errors.
	ErrInvalidManifest = errors.New("invalid manifest file name")
)
