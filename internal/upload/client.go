package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/synheart-ai/synheart-core/internal/hsierrors"
)

// Client posts signed HSI 1.0 snapshot batches to the upload endpoint.
type Client struct {
	BaseURL    string
	TenantID   string
	APIKey     string
	Signer     *Signer
	httpClient *retryablehttp.Client
	now        func() time.Time
}

// NewClient constructs a Client. maxRetries is the number of
// additional attempts after the first transient failure, per the
// open-question decision recorded in DESIGN.md.
func NewClient(baseURL, tenantID, apiKey string, signer *Signer, maxRetries int) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = maxRetries
	rc.Logger = nil
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		log.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("attempt", attempt).
			Msg("uploading HSI snapshot batch")
	}
	rc.CheckRetry = checkRetry

	return &Client{
		BaseURL:    baseURL,
		TenantID:   tenantID,
		APIKey:     apiKey,
		Signer:     signer,
		httpClient: rc,
		now:        time.Now,
	}
}

// checkRetry never retries a well-formed 4xx response (those are
// permanent per §4.8/§7); the library's default policy already
// retries 5xx and transport-level errors, which is exactly the
// transient set this client wants retried.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Upload serializes req as given (a subject plus its snapshot batch),
// signs it, and posts it. See §4.8 for the full request/response contract.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &hsierrors.InternalError{Component: "upload", Err: fmt.Errorf("marshal request: %w", err)}
	}

	nonce := uuid.NewString()
	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
	signature := c.Signer.Sign(nonce, timestamp, body)

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/hsi/snapshots", bytes.NewReader(body))
	if err != nil {
		return nil, &hsierrors.InternalError{Component: "upload", Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Synheart-Tenant", c.TenantID)
	httpReq.Header.Set("X-Synheart-Nonce", nonce)
	httpReq.Header.Set("X-Synheart-Timestamp", timestamp)
	httpReq.Header.Set("X-Synheart-Signature", signature)
	httpReq.Header.Set("X-Synheart-SDK-Version", SDKVersion)
	httpReq.Header.Set("X-API-Key", c.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &hsierrors.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &hsierrors.NetworkError{StatusCode: resp.StatusCode, Err: err}
	}

	return decodeResponse(resp.StatusCode, respBody)
}

func decodeResponse(statusCode int, body []byte) (*UploadResponse, error) {
	if statusCode >= 200 && statusCode < 300 {
		var out UploadResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, &hsierrors.InternalError{Component: "upload", Err: fmt.Errorf("decode response: %w", err)}
		}
		return &out, nil
	}

	var errResp errorResponse
	_ = json.Unmarshal(body, &errResp)

	switch statusCode {
	case http.StatusBadRequest:
		return nil, &hsierrors.SchemaValidationError{Detail: errResp.Message}
	case http.StatusUnauthorized:
		return nil, &hsierrors.InvalidSignatureError{Detail: errResp.Message}
	case http.StatusForbidden:
		return nil, &hsierrors.InvalidTenantError{Detail: errResp.Message}
	case http.StatusTooManyRequests:
		return nil, &hsierrors.RateLimitExceededError{RetryAfterS: errResp.RetryAfterS}
	default:
		return nil, &hsierrors.NetworkError{StatusCode: statusCode, Err: fmt.Errorf("unexpected status %d", statusCode)}
	}
}
