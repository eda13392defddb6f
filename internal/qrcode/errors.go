package qrcode

import "fmt"

// ValidationError is a problem with the caller's input. Msg is safe to
// return to clients verbatim.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// RenderError means the QR encoder failed or produced no image.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "render qr code: " + e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }

// StorageError means the object store rejected or failed the upload.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
