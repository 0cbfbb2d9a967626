package hawk

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// DecodedToken is the parsed contents of a Hawk integration token.
//
// The token is base64-encoded JSON of the form
// {"integrationId": "...", "secret": "..."}. Only the integration id is
// used by the SDK, to derive the default collector endpoint; the raw token
// string is what gets passed through in every envelope.
type DecodedToken struct {
	IntegrationID string `json:"integrationId"`
	Secret        string `json:"secret"`
}

// DecodeToken decodes and validates a base64-encoded integration token.
// It returns an error wrapping ErrInvalidToken when the token is not valid
// base64, not valid JSON, or carries an empty integrationId.
func DecodeToken(token string) (*DecodedToken, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: base64 decode failed: %v", ErrInvalidToken, err)
	}

	var decoded DecodedToken
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: token payload is not valid JSON: %v", ErrInvalidToken, err)
	}

	if decoded.IntegrationID == "" {
		return nil, fmt.Errorf("%w: integrationId is empty", ErrInvalidToken)
	}

	return &decoded, nil
}

// DefaultEndpoint returns the collector URL derived from an integration id:
// https://{integrationId}.k1.hawk.so/
func DefaultEndpoint(integrationID string) string {
	return fmt.Sprintf("https://%s.k1.hawk.so/", integrationID)
}
