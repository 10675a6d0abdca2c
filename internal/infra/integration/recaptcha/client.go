package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const verifyURL = "https://www.google.com/recaptcha/api/siteverify"

// minScore rejects low-confidence v3 assessments. v2 responses carry no score
// and are judged on the success flag alone.
const minScore = 0.5

type Client struct {
	secret  string
	baseURL string
	http    *http.Client
}

func NewClient(secret string) *Client {
	return &Client{
		secret:  secret,
		baseURL: verifyURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify submits the caller's attestation token to the siteverify endpoint and
// fails on transport errors, an unsuccessful assessment, or a score below the
// confidence threshold.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) error {
	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("siteverify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode siteverify response: %w", err)
	}

	if !result.Success {
		if len(result.ErrorCodes) > 0 {
			return fmt.Errorf("verification rejected: %s", strings.Join(result.ErrorCodes, ", "))
		}
		return fmt.Errorf("verification rejected")
	}
	if result.Score != nil && *result.Score < minScore {
		return fmt.Errorf("verification score %.2f below threshold", *result.Score)
	}
	return nil
}
