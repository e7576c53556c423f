package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/agrisense/advisor-cli/internal/engine"
	"github.com/agrisense/advisor-cli/internal/invest"
	"github.com/agrisense/advisor-cli/internal/market"
)

// ErrRemoteUnavailable marks transport-level failures: the backend could
// not be reached or kept failing after retries. Failover switches to the
// in-process engine only on this condition; domain errors (not found,
// invalid area) propagate untouched.
var ErrRemoteUnavailable = eris.New("service: remote backend unavailable")

// RemoteOptions configures the remote advisory client.
type RemoteOptions struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64
}

// Remote is the Advisor backed by the advisory HTTP backend. It returns
// the same shapes as Local, so callers can only tell the two apart by
// latency.
type Remote struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	retries int
}

// NewRemote creates a Remote advisor client.
func NewRemote(opts RemoteOptions) *Remote {
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.RatePerSec == 0 {
		opts.RatePerSec = 5
	}
	return &Remote{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), int(math.Ceil(opts.RatePerSec))),
		retries: opts.MaxRetries,
	}
}

// Recommend posts the sample to the backend's recommend endpoint.
func (r *Remote) Recommend(ctx context.Context, sample engine.Sample) (engine.Recommendation, error) {
	var rec engine.Recommendation
	body, err := json.Marshal(sample.Normalized())
	if err != nil {
		return rec, eris.Wrap(err, "service: encode sample")
	}
	err = r.call(ctx, http.MethodPost, "/recommend-crop", body, &rec)
	return rec, err
}

// Analyze fetches the investment analysis, mapping the backend's 404 and
// 400 responses back onto the analyzer's sentinel errors.
func (r *Remote) Analyze(ctx context.Context, cropID string, areaHectares float64) (*invest.Analysis, error) {
	path := fmt.Sprintf("/investment-analysis/%s?area_hectares=%g", url.PathEscape(cropID), areaHectares)
	var out invest.Analysis
	if err := r.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		switch {
		case eris.Is(err, errStatusNotFound):
			return nil, invest.ErrUnknownCrop
		case eris.Is(err, errStatusBadRequest):
			return nil, invest.ErrInvalidArea
		}
		return nil, err
	}
	return &out, nil
}

// Prices fetches the current market quotes.
func (r *Remote) Prices(ctx context.Context) ([]market.Quote, error) {
	var out struct {
		Prices []market.Quote `json:"prices"`
	}
	if err := r.call(ctx, http.MethodGet, "/crop-prices", nil, &out); err != nil {
		return nil, err
	}
	return out.Prices, nil
}

// CropInfo fetches the detail view for one crop.
func (r *Remote) CropInfo(ctx context.Context, cropID string) (*CropInfo, error) {
	var out CropInfo
	err := r.call(ctx, http.MethodGet, "/crop-info/"+url.PathEscape(cropID), nil, &out)
	if err != nil {
		if eris.Is(err, errStatusNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Climate fetches the district climate view.
func (r *Remote) Climate(ctx context.Context, district string) (*Climate, error) {
	var out Climate
	err := r.call(ctx, http.MethodGet, "/climate-data/"+url.PathEscape(district), nil, &out)
	if err != nil {
		if eris.Is(err, errStatusNotFound) {
			return nil, ErrDistrictNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Districts fetches the district name list.
func (r *Remote) Districts(ctx context.Context) ([]string, error) {
	var out struct {
		Districts []string `json:"districts"`
	}
	if err := r.call(ctx, http.MethodGet, "/districts", nil, &out); err != nil {
		return nil, err
	}
	return out.Districts, nil
}

// Internal markers for non-retriable HTTP statuses.
var (
	errStatusNotFound   = eris.New("service: remote 404")
	errStatusBadRequest = eris.New("service: remote 400")
)

// call performs one API call with rate limiting and bounded retry on
// transport errors and 5xx responses. 4xx statuses are not retried.
func (r *Remote) call(ctx context.Context, method, path string, body []byte, out any) error {
	var lastErr error
	for attempt := range r.retries {
		if err := r.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "service: rate limiter wait")
		}

		var reqBody io.Reader
		if body != nil {
			reqBody = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reqBody)
		if err != nil {
			return eris.Wrap(err, "service: create request")
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := r.client.Do(req)
		if err != nil {
			lastErr = err
			zap.L().Warn("service: remote request failed, retrying",
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			r.backoff(ctx, attempt)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			_ = resp.Body.Close()
			return errStatusNotFound
		case resp.StatusCode == http.StatusBadRequest ||
			resp.StatusCode == http.StatusUnprocessableEntity:
			_ = resp.Body.Close()
			return errStatusBadRequest
		case resp.StatusCode >= 500:
			_ = resp.Body.Close()
			lastErr = eris.Errorf("service: remote status %d on %s", resp.StatusCode, path)
			zap.L().Warn("service: remote server error, retrying",
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			r.backoff(ctx, attempt)
			continue
		case resp.StatusCode != http.StatusOK:
			_ = resp.Body.Close()
			return eris.Errorf("service: unexpected status %d on %s", resp.StatusCode, path)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		_ = resp.Body.Close()
		if err != nil {
			return eris.Wrap(err, "service: decode response")
		}
		return nil
	}

	return eris.Wrapf(ErrRemoteUnavailable, "retries exhausted on %s: %v", path, lastErr)
}

func (r *Remote) backoff(ctx context.Context, attempt int) {
	d := time.Duration(float64(250*time.Millisecond) * math.Pow(2, float64(attempt)))
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
