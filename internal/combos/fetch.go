package combos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nimixiss/tarobot/internal/errors"
)

// FetchTwoCard downloads the two-card combination feed once and normalizes
// it. On any failure (network, HTTP status, malformed body) it returns an
// empty map together with the error so the caller can log and continue in
// degraded mode; the feed is never re-fetched during the process lifetime.
func FetchTwoCard(ctx context.Context, client *http.Client, url string) (map[string]string, error) {
	empty := map[string]string{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return empty, errors.NewUpstreamUnavailable(url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return empty, errors.NewUpstreamUnavailable(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return empty, errors.NewUpstreamUnavailable(url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var raw any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return empty, errors.NewUpstreamUnavailable(url, err)
	}

	return NormalizeTwoCard(raw), nil
}
