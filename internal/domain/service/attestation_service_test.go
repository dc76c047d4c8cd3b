package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attestationRequest() AttestationRequest {
	return AttestationRequest{
		AttestationID:   "att-1",
		Proof:           json.RawMessage(`{"pi_a":["1","2"]}`),
		PublicSignals:   json.RawMessage(`["1","2","3"]`),
		UserContextData: json.RawMessage(`"0xabc"`),
	}
}

func TestVerifyAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/verify", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-scope", body["scope"])
		assert.Equal(t, "att-1", body["attestationId"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","result":true,"data":{"name":"Ada Lovelace","nationality":"GBR","documentType":"passport"}}`))
	}))
	defer server.Close()

	svc := NewAttestationService(server.URL, "test-scope")

	result, err := svc.Verify(context.Background(), attestationRequest())
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "att-1", result.AttestationID)
	assert.Equal(t, "Ada Lovelace", result.FullName)
	assert.Equal(t, "GBR", result.Nationality)
	assert.Equal(t, "passport", result.DocumentType)
}

func TestVerifyRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"error","result":false,"reason":"proof did not verify"}`))
	}))
	defer server.Close()

	svc := NewAttestationService(server.URL, "test-scope")

	result, err := svc.Verify(context.Background(), attestationRequest())
	require.NoError(t, err, "a rejection is an answer, not a transport failure")
	assert.False(t, result.Valid)
}

func TestVerifyMissingData(t *testing.T) {
	svc := NewAttestationService("http://unused", "test-scope")

	req := attestationRequest()
	req.Proof = nil
	_, err := svc.Verify(context.Background(), req)
	assert.Error(t, err)
}

func TestVerifyUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewAttestationService(server.URL, "test-scope")

	_, err := svc.Verify(context.Background(), attestationRequest())
	assert.Error(t, err)
}
