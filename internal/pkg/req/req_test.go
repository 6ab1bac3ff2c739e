package req

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandacare/internal/pkg/errs"
)

type samplePayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func bind(t *testing.T, contentType, body string) (*samplePayload, *errs.CustomError) {
	t.Helper()

	r := httptest.NewRequest("POST", "/", strings.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	var dst samplePayload
	return &dst, BindJSON(w, r, &dst)
}

func TestBindJSON(t *testing.T) {
	dst, err := bind(t, "application/json", `{"name":"a","count":2}`)
	require.Nil(t, err)
	assert.Equal(t, "a", dst.Name)
	assert.Equal(t, 2, dst.Count)
}

func TestBindJSONRejectsWrongContentType(t *testing.T) {
	_, err := bind(t, "text/plain", `{"name":"a"}`)
	require.NotNil(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrUnsupportedMediaType))
}

func TestBindJSONRejectsUnknownFields(t *testing.T) {
	_, err := bind(t, "application/json", `{"name":"a","bogus":true}`)
	require.NotNil(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrInvalidJSONFormat))
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	_, err := bind(t, "application/json", `{"name":`)
	require.NotNil(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrInvalidJSONFormat))
}

func TestBindJSONRejectsTrailingContent(t *testing.T) {
	_, err := bind(t, "application/json", `{"name":"a"}{"name":"b"}`)
	require.NotNil(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrExtraContentInBody))
}
