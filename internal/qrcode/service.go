// Package qrcode turns text into QR code images stored in object storage.
package qrcode

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"github.com/qrcodeapi/service/internal/storage"
)

// ContentType of every stored image.
const ContentType = "image/png"

// Client-facing validation messages.
const (
	MsgMissingData      = "Missing 'data' parameter"
	MsgInvalidURLFormat = "Invalid URL format"
)

// ImageRenderer encodes text as PNG bytes.
type ImageRenderer interface {
	Render(data string) ([]byte, error)
}

// Result describes a stored QR code.
type Result struct {
	Key string `json:"key"`
	URL string `json:"qrCodeUrl"`
}

// Service contains the QR code generation logic.
type Service struct {
	renderer ImageRenderer
	store    storage.Storage
	logger   *zap.Logger
}

// NewService creates a new Service.
func NewService(renderer ImageRenderer, store storage.Storage, logger *zap.Logger) *Service {
	return &Service{renderer: renderer, store: store, logger: logger}
}

// Generate renders data as a QR code, uploads it and returns where it lives.
// Errors are *ValidationError, *RenderError or *StorageError.
func (s *Service) Generate(ctx context.Context, data string) (*Result, error) {
	if data == "" {
		return nil, &ValidationError{Msg: MsgMissingData, Err: ErrMissingData}
	}

	key, err := DeriveKey(data)
	if err != nil {
		s.logger.Debug("derive key failed", zap.Error(err))
		return nil, &ValidationError{Msg: MsgInvalidURLFormat, Err: err}
	}

	png, err := s.renderer.Render(data)
	if err == nil && len(png) == 0 {
		err = ErrEmptyImage
	}
	if err != nil {
		s.logger.Error("render qr code failed", zap.String("key", key), zap.Error(err))
		return nil, &RenderError{Err: err}
	}

	if err := s.store.Upload(ctx, key, bytes.NewReader(png), int64(len(png)), ContentType); err != nil {
		s.logger.Error("upload qr code failed", zap.String("key", key), zap.Error(err))
		return nil, &StorageError{Key: key, Err: err}
	}

	url := s.store.PublicURL(key)
	s.logger.Debug("qr code stored", zap.String("key", key), zap.String("url", url), zap.Int("bytes", len(png)))
	return &Result{Key: key, URL: url}, nil
}

// Delete removes the stored image for data.
func (s *Service) Delete(ctx context.Context, data string) (string, error) {
	key, err := DeriveKey(data)
	if err != nil {
		return "", &ValidationError{Msg: MsgMissingData, Err: err}
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return "", &StorageError{Key: key, Err: err}
	}
	return key, nil
}
