package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-playground/form/v4"
	"github.com/mrops-br/products-api/internal/app/dto"
	"github.com/mrops-br/products-api/internal/domain"
)

// maxBodyBytes caps product request bodies
const maxBodyBytes = 1 << 20

// newFormDecoder builds a decoder that marks Optional fields present only for submitted keys
func newFormDecoder() *form.Decoder {
	decoder := form.NewDecoder()

	decoder.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return domain.Some(vals[0]), nil
	}, domain.Optional[string]{})

	// a blank number clears the field, the way a JSON null does
	decoder.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		n, err := domain.ParseNumber(vals[0])
		if err != nil {
			return nil, err
		}
		return n, nil
	}, domain.Optional[float64]{})

	return decoder
}

// decodeProductRequest reads a JSON or URL-encoded product body.
// An empty body, or a body of any other media type, decodes to an empty request.
func (h *ProductHandler) decodeProductRequest(w http.ResponseWriter, r *http.Request) (*dto.ProductRequest, error) {
	var req dto.ProductRequest
	if r.Body == nil {
		return &req, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		if err := h.formDecoder.Decode(&req, r.PostForm); err != nil {
			return nil, err
		}
	case "", "application/json":
		if err := decodeJSON(r.Body, &req); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// decodeJSON decodes a single JSON value and rejects anything after it
func decodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
