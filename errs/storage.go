package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Blob-storage errors. Failures while writing or listing are propagated;
// failures while removing assets during a record delete are logged by the
// caller and never surfaced (asset cleanup is best-effort).
var (
	ErrStorageWrite = errors.New("storage write failed")
	ErrStorageList  = errors.New("storage list failed")
)

func NewStorageError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageWrite,
		Details:    fmt.Sprintf("Failed to %s", operation),
		Cause:      cause,
	}
}

func NewStorageListError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageList,
		Details:    "Failed to list storage objects",
		Cause:      cause,
	}
}
