package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mrops-br/products-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(contentType, body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodPatch, "/products/1", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return httptest.NewRecorder(), req
}

func TestDecodeProductRequestJSON(t *testing.T) {
	h := &ProductHandler{formDecoder: newFormDecoder()}

	w, r := newRequest("application/json; charset=utf-8", `{"title":"Widget","brand":null}`)
	req, err := h.decodeProductRequest(w, r)
	require.NoError(t, err)

	assert.Equal(t, domain.Some("Widget"), req.Title)
	assert.Equal(t, domain.Null[string](), req.Brand)
	assert.False(t, req.Price.Set)
}

func TestDecodeProductRequestEmptyBody(t *testing.T) {
	h := &ProductHandler{formDecoder: newFormDecoder()}

	w, r := newRequest("", "")
	req, err := h.decodeProductRequest(w, r)
	require.NoError(t, err)
	assert.True(t, req.ToPatch().IsEmpty())
}

func TestDecodeProductRequestForm(t *testing.T) {
	h := &ProductHandler{formDecoder: newFormDecoder()}

	form := url.Values{"brand": {"Acme"}, "price": {""}, "ignored": {"x"}}
	w, r := newRequest("application/x-www-form-urlencoded", form.Encode())
	req, err := h.decodeProductRequest(w, r)
	require.NoError(t, err)

	assert.Equal(t, domain.Some("Acme"), req.Brand)
	assert.Equal(t, domain.Null[float64](), req.Price)
	assert.False(t, req.Title.Set)
}

func TestDecodeProductRequestFormInvalidNumber(t *testing.T) {
	h := &ProductHandler{formDecoder: newFormDecoder()}

	w, r := newRequest("application/x-www-form-urlencoded", "price=cheap")
	_, err := h.decodeProductRequest(w, r)
	assert.Error(t, err)
}

func TestDecodeProductRequestTooLarge(t *testing.T) {
	h := &ProductHandler{formDecoder: newFormDecoder()}

	body := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	w, r := newRequest("application/json", body)
	_, err := h.decodeProductRequest(w, r)

	var tooLarge *http.MaxBytesError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestDecodeProductRequestCastsJSONValues(t *testing.T) {
	h := &ProductHandler{formDecoder: newFormDecoder()}

	w, r := newRequest("application/json", `{"price":"12.5","title":123,"brand":true}`)
	req, err := h.decodeProductRequest(w, r)
	require.NoError(t, err)

	assert.Equal(t, domain.Some(12.5), req.Price)
	assert.Equal(t, domain.Some("123"), req.Title)
	assert.Equal(t, domain.Some("true"), req.Brand)
}

func TestDecodeProductRequestOtherMediaTypeIsEmpty(t *testing.T) {
	h := &ProductHandler{formDecoder: newFormDecoder()}

	for _, contentType := range []string{"text/plain", "application/octet-stream"} {
		t.Run(contentType, func(t *testing.T) {
			w, r := newRequest(contentType, "not json at all")
			req, err := h.decodeProductRequest(w, r)
			require.NoError(t, err)
			assert.True(t, req.ToPatch().IsEmpty())
		})
	}
}

func TestDecodeProductRequestRejectsTrailingData(t *testing.T) {
	h := &ProductHandler{formDecoder: newFormDecoder()}

	for _, body := range []string{
		`{"title":"A"} trailing`,
		`{"title":"A"}}`,
		`{"title":"A"} {"title":"B"}`,
	} {
		t.Run(body, func(t *testing.T) {
			w, r := newRequest("application/json", body)
			_, err := h.decodeProductRequest(w, r)
			assert.Error(t, err)
		})
	}

	w, r := newRequest("application/json", "{\"title\":\"A\"}\n  ")
	_, err := h.decodeProductRequest(w, r)
	assert.NoError(t, err)
}
