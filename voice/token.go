package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

var tokenClient = &http.Client{Timeout: 10 * time.Second}

// FetchToken retrieves a voice-access credential from the agent service.
// Any failure here means voice is unavailable; the caller degrades to a
// visible state instead of retrying.
func FetchToken(ctx context.Context, baseURL string) (Credential, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/voice-token", nil)
	if err != nil {
		return Credential{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := tokenClient.Do(req)
	if err != nil {
		return Credential{}, fmt.Errorf("voice token fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Credential{}, fmt.Errorf("voice token fetch: %s", resp.Status)
	}

	var cred Credential
	if err := json.NewDecoder(resp.Body).Decode(&cred); err != nil {
		return Credential{}, fmt.Errorf("voice token decode: %w", err)
	}
	if cred.AccessToken == "" {
		return Credential{}, fmt.Errorf("voice token fetch: empty accessToken")
	}
	return cred, nil
}
