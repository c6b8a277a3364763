package mapper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Classifier assigns unknown particulars terms to taxonomy category labels.
// The returned map may cover any subset of the submitted terms.
type Classifier interface {
	MapTerms(ctx context.Context, terms, categories []string) (map[string]string, error)
}

// Disabled is a Classifier that maps nothing. Used when no endpoint is
// configured.
type Disabled struct{}

// MapTerms returns an empty mapping.
func (Disabled) MapTerms(context.Context, []string, []string) (map[string]string, error) {
	return nil, nil
}

// classifyRequest is the wire format of the classification call.
type classifyRequest struct {
	TermsToMap          []string `json:"terms_to_map"`
	AvailableCategories []string `json:"available_categories"`
}

// HTTPClassifier submits terms to an external classification service with
// bearer-token auth. The response body is a flat {term: category} map.
type HTTPClassifier struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClassifier creates a classifier client with a bounded timeout.
func NewHTTPClassifier(url, apiKey string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// MapTerms performs the single synchronous classification request. Callers
// treat any returned error as "no classification"; the pipeline never fails
// on classifier trouble.
func (c *HTTPClassifier) MapTerms(ctx context.Context, terms, categories []string) (map[string]string, error) {
	body, err := json.Marshal(classifyRequest{
		TermsToMap:          terms,
		AvailableCategories: categories,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building classify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("classifier returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading classifier response: %w", err)
	}

	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("decoding classifier response: %w", err)
	}
	return mapping, nil
}
