package upload

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vitrina/pkg/domain-errors"
)

// stubPutter records PutObject calls.
type stubPutter struct {
	inputs []*s3.PutObjectInput
	err    error
}

func (p *stubPutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	p.inputs = append(p.inputs, params)
	if p.err != nil {
		return nil, p.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newService(putter *stubPutter, opts ...Option) *Service {
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return New(putter, "vitrina-media", "https://cdn.example.com/", opts...)
}

func TestUpload_StoresUnderUploadsKey(t *testing.T) {
	putter := &stubPutter{}
	svc := newService(putter)

	url, err := svc.Upload(context.Background(), "image/png", 4, strings.NewReader("data"))
	require.NoError(t, err)

	require.Len(t, putter.inputs, 1)
	input := putter.inputs[0]
	assert.Equal(t, "vitrina-media", *input.Bucket)
	assert.True(t, strings.HasPrefix(*input.Key, "uploads/"))
	assert.True(t, strings.HasSuffix(*input.Key, ".png"))
	assert.Equal(t, "https://cdn.example.com/"+*input.Key, url)
}

func TestUpload_RejectsUnknownContentType(t *testing.T) {
	putter := &stubPutter{}
	svc := newService(putter)

	_, err := svc.Upload(context.Background(), "application/pdf", 4, strings.NewReader("data"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Empty(t, putter.inputs, "rejected uploads never reach the store")
}

func TestUpload_RejectsOversize(t *testing.T) {
	putter := &stubPutter{}
	svc := newService(putter, WithMaxBytes(10))

	_, err := svc.Upload(context.Background(), "image/jpeg", 11, strings.NewReader("0123456789a"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestUpload_StoreFailureIsInternal(t *testing.T) {
	putter := &stubPutter{err: io.ErrUnexpectedEOF}
	svc := newService(putter)

	_, err := svc.Upload(context.Background(), "image/jpeg", 4, strings.NewReader("data"))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestHandleUpload_MultipartRoundTrip(t *testing.T) {
	putter := &stubPutter{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := newService(putter)

	r := chi.NewRouter()
	NewHandler(svc, logger).Register(r)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="photo.png"`},
		"Content-Type":        {"image/png"},
	})
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://cdn.example.com/uploads/")
}

func TestHandleUpload_MissingFilePart(t *testing.T) {
	putter := &stubPutter{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := newService(putter)

	r := chi.NewRouter()
	NewHandler(svc, logger).Register(r)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("not-multipart"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
