package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockitout/drywallbackend/dto"
	"github.com/rockitout/drywallbackend/utils"
)

func submittableRequest() *dto.CreateQuoteRequestDTO {
	return &dto.CreateQuoteRequestDTO{
		Name:     "Jordan Mason",
		Phone:    "3196102050",
		Location: "Raymond, IA",
		Message:  "Two bedrooms need new drywall after a pipe burst last week.",
	}
}

func TestSubmit_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true,"message":"Quote request sent successfully"}`))
	}))
	defer srv.Close()

	res := New(srv.URL).Submit(context.Background(), submittableRequest())
	assert.Equal(t, OutcomeSuccess, res.Outcome)
	assert.Equal(t, "Quote request sent successfully", res.Message)
}

func TestSubmit_ValidationShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	req := submittableRequest()
	req.Message = "short"

	res := New(srv.URL).Submit(context.Background(), req)
	assert.Equal(t, OutcomeValidationError, res.Outcome)
	assert.Equal(t, "message", res.Field)
	assert.False(t, called, "no network call on validation failure")
}

func TestSubmit_OversizeImagesRejectedBeforeNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	req := submittableRequest()
	// over the aggregate budget: every item also busts the per-image cap
	for i := 0; i < 5; i++ {
		req.Images = append(req.Images, dto.QuoteImageDTO{
			Name:     "huge.jpg",
			MimeType: "image/jpeg",
			Data:     utils.EncodeDataURI("image/jpeg", make([]byte, (5<<20)+(1<<20))),
		})
	}

	res := New(srv.URL).Submit(context.Background(), req)
	assert.Equal(t, OutcomeValidationError, res.Outcome)
	assert.Equal(t, "images", res.Field)
	assert.False(t, called, "rejected client-side before any network call")
}

func TestSubmit_ServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to send quote request"}`))
	}))
	defer srv.Close()

	res := New(srv.URL).Submit(context.Background(), submittableRequest())
	assert.Equal(t, OutcomeTransportError, res.Outcome)
	assert.Equal(t, "failed to send quote request", res.Message)
	require.Error(t, res.Err)
}

func TestSubmit_NetworkFailureIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	res := New(srv.URL).Submit(context.Background(), submittableRequest())
	assert.Equal(t, OutcomeTransportError, res.Outcome)
	require.Error(t, res.Err)
}
