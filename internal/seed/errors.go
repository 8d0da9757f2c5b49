package seed

import "errors"

var (
	ErrSolutionServiceRequired = errors.New("seed: solution service is required")
	ErrUnknownDocumentKind     = errors.New("seed: unknown document kind")
	ErrSlugRequired            = errors.New("seed: document has no usable slug")
	ErrParentNotFound          = errors.New("seed: parent solution not found")
	ErrHierarchyRequired       = errors.New("seed: hierarchy manager is required to link parents")
)
