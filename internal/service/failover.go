package service

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/agrisense/advisor-cli/internal/engine"
	"github.com/agrisense/advisor-cli/internal/invest"
	"github.com/agrisense/advisor-cli/internal/market"
)

// Failover prefers the remote backend and falls back to the in-process
// advisor when the backend is unreachable. Domain errors from the remote
// (not found, invalid area) propagate as-is; only transport failures
// trigger the fallback, so both paths stay contract-identical.
type Failover struct {
	remote *Remote
	local  *Local
}

// NewFailover wires a Failover advisor.
func NewFailover(remote *Remote, local *Local) *Failover {
	return &Failover{remote: remote, local: local}
}

func fallback(err error) bool {
	return eris.Is(err, ErrRemoteUnavailable)
}

func logFallback(op string, err error) {
	zap.L().Warn("service: remote unavailable, using offline engine",
		zap.String("op", op),
		zap.Error(err),
	)
}

// Recommend tries the backend and falls back to offline scoring.
func (f *Failover) Recommend(ctx context.Context, sample engine.Sample) (engine.Recommendation, error) {
	rec, err := f.remote.Recommend(ctx, sample)
	if err == nil {
		return rec, nil
	}
	if !fallback(err) {
		return rec, err
	}
	logFallback("recommend", err)
	return f.local.Recommend(ctx, sample)
}

// Analyze tries the backend and falls back to the offline analyzer.
func (f *Failover) Analyze(ctx context.Context, cropID string, areaHectares float64) (*invest.Analysis, error) {
	out, err := f.remote.Analyze(ctx, cropID, areaHectares)
	if err == nil {
		return out, nil
	}
	if !fallback(err) {
		return nil, err
	}
	logFallback("analyze", err)
	return f.local.Analyze(ctx, cropID, areaHectares)
}

// Prices tries the backend and falls back to simulated quotes.
func (f *Failover) Prices(ctx context.Context) ([]market.Quote, error) {
	out, err := f.remote.Prices(ctx)
	if err == nil {
		return out, nil
	}
	if !fallback(err) {
		return nil, err
	}
	logFallback("prices", err)
	return f.local.Prices(ctx)
}

// CropInfo tries the backend and falls back to the embedded tables.
func (f *Failover) CropInfo(ctx context.Context, cropID string) (*CropInfo, error) {
	out, err := f.remote.CropInfo(ctx, cropID)
	if err == nil {
		return out, nil
	}
	if !fallback(err) {
		return nil, err
	}
	logFallback("crop_info", err)
	return f.local.CropInfo(ctx, cropID)
}

// Climate tries the backend and falls back to the embedded tables.
func (f *Failover) Climate(ctx context.Context, district string) (*Climate, error) {
	out, err := f.remote.Climate(ctx, district)
	if err == nil {
		return out, nil
	}
	if !fallback(err) {
		return nil, err
	}
	logFallback("climate", err)
	return f.local.Climate(ctx, district)
}

// Districts tries the backend and falls back to the embedded tables.
func (f *Failover) Districts(ctx context.Context) ([]string, error) {
	out, err := f.remote.Districts(ctx)
	if err == nil {
		return out, nil
	}
	if !fallback(err) {
		return nil, err
	}
	logFallback("districts", err)
	return f.local.Districts(ctx)
}
