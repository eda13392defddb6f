package qrcode

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/qrcodeapi/service/internal/response"
	"github.com/qrcodeapi/service/internal/storage"
)

const testBase = "http://localhost:9000/qr-codes"

func newTestHandler(store storage.Storage) *Handler {
	return NewHandler(NewService(NewRenderer(DefaultSize), store, zap.NewNop()))
}

func doGenerate(h *Handler, rawQuery string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/generate?"+rawQuery, nil)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)
	return rec
}

func TestGenerate_Text(t *testing.T) {
	store := storage.NewMemoryStorage(testBase)
	rec := doGenerate(newTestHandler(store), "data=hello")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body generateData
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, testBase+"/qr_codes/68656c6c6f.png", body.QRCodeURL)

	obj, err := store.Get("qr_codes/68656c6c6f.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, "hello", decodeQR(t, obj.Data))
}

func TestGenerate_URL(t *testing.T) {
	store := storage.NewMemoryStorage(testBase)
	rec := doGenerate(newTestHandler(store), "data="+url.QueryEscape("https://example.com/a/b"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"qrCodeUrl":"`+testBase+`/qr_codes/example.com-a-b.png"}`, rec.Body.String())

	obj, err := store.Get("qr_codes/example.com-a-b.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a/b", decodeQR(t, obj.Data))
}

func TestGenerate_MissingData(t *testing.T) {
	for _, q := range []string{"", "data=", "other=1"} {
		t.Run(q, func(t *testing.T) {
			store := storage.NewMemoryStorage(testBase)
			rec := doGenerate(newTestHandler(store), q)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Missing 'data' parameter"}`, rec.Body.String())
			assert.Equal(t, 0, store.Len())
		})
	}
}

func TestGenerate_FirstValueWins(t *testing.T) {
	store := storage.NewMemoryStorage(testBase)
	rec := doGenerate(newTestHandler(store), "data=hello&data=world")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, store.Len())
	_, err := store.Get("qr_codes/68656c6c6f.png")
	assert.NoError(t, err)
}

func TestGenerate_StorageFailure(t *testing.T) {
	h := newTestHandler(&failingStore{err: errors.New("dial tcp 127.0.0.1:9000: connection refused")})
	rec := doGenerate(h, "data=hello")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body response.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, MsgServerError, body.Error)
	assert.Contains(t, body.Details, "connection refused")
}

func TestGenerate_RenderFailureLeavesNoObject(t *testing.T) {
	store := storage.NewMemoryStorage(testBase)
	renderFails := NewHandler(NewService(&stubRenderer{err: errors.New("encoder exploded")}, store, zap.NewNop()))

	rec := doGenerate(renderFails, "data=hello")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server error while generating QR code","details":"render qr code: encoder exploded"}`, rec.Body.String())

	_, err := store.Get("qr_codes/68656c6c6f.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
