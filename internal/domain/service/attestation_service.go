package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"waypost/pkg/logger"
)

// AttestationService forwards identity proofs to the external attestation
// verifier. The proof mechanics (zero-knowledge passport checks, age and
// country policy) live entirely on the verifier side; this client only
// relays the payload and reads back the disclosed identity fields.
type AttestationService struct {
	baseURL    string
	scope      string
	httpClient *http.Client
}

func NewAttestationService(baseURL, scope string) *AttestationService {
	return &AttestationService{
		baseURL:    baseURL,
		scope:      scope,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type AttestationRequest struct {
	AttestationID   string          `json:"attestationId"`
	Proof           json.RawMessage `json:"proof"`
	PublicSignals   json.RawMessage `json:"publicSignals"`
	UserContextData json.RawMessage `json:"userContextData"`
}

type AttestationResult struct {
	Valid         bool
	AttestationID string
	FullName      string
	Nationality   string
	DocumentType  string
}

type verifierRequest struct {
	Scope           string          `json:"scope"`
	AttestationID   string          `json:"attestationId"`
	Proof           json.RawMessage `json:"proof"`
	PublicSignals   json.RawMessage `json:"publicSignals"`
	UserContextData json.RawMessage `json:"userContextData"`
}

type verifierResponse struct {
	Status string `json:"status"`
	Result bool   `json:"result"`
	Reason string `json:"reason,omitempty"`
	Data   struct {
		Name         string `json:"name"`
		Nationality  string `json:"nationality"`
		DocumentType string `json:"documentType"`
	} `json:"data"`
}

// Verify submits the attestation to the verifier and returns the outcome.
// A reachable verifier that rejects the proof yields Valid=false with no
// error; transport failures are errors.
func (s *AttestationService) Verify(ctx context.Context, req AttestationRequest) (*AttestationResult, error) {
	if req.AttestationID == "" || len(req.Proof) == 0 || len(req.PublicSignals) == 0 || len(req.UserContextData) == 0 {
		return nil, fmt.Errorf("missing verification data")
	}

	body, err := json.Marshal(verifierRequest{
		Scope:           s.scope,
		AttestationID:   req.AttestationID,
		Proof:           req.Proof,
		PublicSignals:   req.PublicSignals,
		UserContextData: req.UserContextData,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/verify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("attestation verifier unreachable: %w", err)
	}
	defer resp.Body.Close()

	var out verifierResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("invalid verifier response: %w", err)
	}

	if out.Status != "success" || !out.Result {
		logger.Info("Attestation rejected: attestationId=%s reason=%s", req.AttestationID, out.Reason)
		return &AttestationResult{Valid: false, AttestationID: req.AttestationID}, nil
	}

	return &AttestationResult{
		Valid:         true,
		AttestationID: req.AttestationID,
		FullName:      out.Data.Name,
		Nationality:   out.Data.Nationality,
		DocumentType:  out.Data.DocumentType,
	}, nil
}
