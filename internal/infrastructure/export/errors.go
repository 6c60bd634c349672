package csvexport

import "errors"

var (
	// ErrMissingHeader is returned when rows are written before the header
	ErrMissingHeader = errors.New("export header has not been written")

	// ErrHeaderAlreadyWritten is returned when the header is written twice
	ErrHeaderAlreadyWritten = errors.New("export header already written")

	// ErrFieldCountMismatch is returned when a row does not match the header width
	ErrFieldCountMismatch = errors.New("row field count does not match header")
)
