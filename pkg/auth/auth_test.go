package auth_test

import (
	"net/http"
	"testing"

	"github.com/glorpus-work/hymod/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderAuth(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		expect  map[string]string
	}{
		{
			name:    "curseforge key",
			headers: map[string]string{"x-api-key": "cf-key"},
			expect:  map[string]string{"X-Api-Key": "cf-key"}, // http.Header canonicalizes headers
		},
		{
			name:    "modtale key",
			headers: map[string]string{"X-MODTALE-KEY": "mt-key"},
			expect:  map[string]string{"X-Modtale-Key": "mt-key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "http://example.com", nil)
			headerAuth := auth.HeaderAuth{Headers: tt.headers}

			require.NoError(t, headerAuth.Apply(req))
			for k, v := range tt.expect {
				assert.Equal(t, v, req.Header.Get(k))
			}
			assert.Equal(t, auth.HeaderAuthType, headerAuth.Type())
		})
	}
}

func TestAPIKey(t *testing.T) {
	assert.Nil(t, auth.APIKey("x-api-key", ""))

	req, _ := http.NewRequest("GET", "http://example.com", nil)
	require.NoError(t, auth.Apply(auth.APIKey("x-api-key", "k"), req))
	assert.Equal(t, "k", req.Header.Get("x-api-key"))

	bare, _ := http.NewRequest("GET", "http://example.com", nil)
	require.NoError(t, auth.Apply(nil, bare))
	assert.Empty(t, bare.Header)
}
