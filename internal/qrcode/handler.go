package qrcode

import (
	"errors"
	"net/http"

	"github.com/qrcodeapi/service/internal/response"
)

// MsgServerError is the 500 message for render and storage failures.
const MsgServerError = "Server error while generating QR code"

// Handler holds HTTP handlers for QR code endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new qrcode Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type generateData struct {
	QRCodeURL string `json:"qrCodeUrl" example:"http://localhost:9000/qr-codes/qr_codes/68656c6c6f.png"`
}

// Generate godoc
//
//	@Summary		Generate QR code
//	@Description	Render data as a PNG QR code, store it under qr_codes/ in the bucket and return its public URL. Absolute URLs get a readable slug key, any other text a hex key.
//	@Tags			qrcode
//	@Produce		json
//	@Param			data	query		string	true	"Text to encode"
//	@Success		200		{object}	generateData
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/generate [get]
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	data := r.URL.Query().Get("data")
	if data == "" {
		response.BadRequest(w, MsgMissingData)
		return
	}

	res, err := h.svc.Generate(r.Context(), data)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			response.BadRequest(w, verr.Msg)
			return
		}
		response.ServerError(w, MsgServerError, err.Error())
		return
	}

	response.OK(w, generateData{QRCodeURL: res.URL})
}
