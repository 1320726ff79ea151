package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/notes/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusConflict, httpx.KindConflict, "Email already exists")

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"success":false,"error":"Conflict","message":"Email already exists"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"object", `{"email":"a@x.com"}`, "a@x.com", false},
		{"empty body", ``, "", false},
		{"not json", `email=a@x.com`, "", true},
		{"trailing data", `{"email":"a"}{"email":"b"}`, "", true},
		{"too large", `{"email":"` + strings.Repeat("a", httpx.MaxBodyBytes) + `"}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := httpx.DecodeJSON(httptest.NewRecorder(), req, &p)
			if tt.wantErr {
				require.ErrorIs(t, err, httpx.ErrInvalidJSON)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, p.Email)
		})
	}
}
