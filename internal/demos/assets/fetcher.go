package assets

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/2beens/gymdemos/internal/telemetry/metrics"
	"github.com/2beens/gymdemos/internal/telemetry/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultFetchTimeout = 8 * time.Second
	DefaultMaxBytes     = 50 << 20
)

// Fetcher downloads media bytes for the cache backends.
type Fetcher struct {
	httpClient *http.Client
	timeout    time.Duration
	maxBytes   int64
	metrics    *metrics.Manager
}

type NewFetcherParams struct {
	HttpClient *http.Client
	Timeout    time.Duration
	MaxBytes   int64
	Metrics    *metrics.Manager
}

func NewFetcher(params NewFetcherParams) *Fetcher {
	httpClient := params.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	maxBytes := params.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &Fetcher{
		httpClient: httpClient,
		timeout:    timeout,
		maxBytes:   maxBytes,
		metrics:    params.Metrics,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (_ *Asset, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "assets.fetch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		f.observe(err)
	}()
	span.SetAttributes(attribute.String("asset.url", url))

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: content length %d", ErrAssetTooLarge, resp.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrAssetTooLarge, f.maxBytes)
	}

	span.SetAttributes(attribute.Int("asset.size", len(data)))

	return &Asset{
		URL:         url,
		ContentType: contentType(resp.Header.Get("Content-Type"), data),
		Data:        data,
		StoredAt:    time.Now(),
	}, nil
}

func (f *Fetcher) observe(err error) {
	if f.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	f.metrics.CounterAssetFetches.WithLabelValues(outcome).Inc()
}

// contentType trusts the server header unless it is missing or generic,
// then falls back to sniffing the payload.
func contentType(header string, data []byte) string {
	if header != "" {
		mediaType, params, err := mime.ParseMediaType(header)
		if err == nil && mediaType != "application/octet-stream" {
			return mime.FormatMediaType(mediaType, params)
		}
	}
	return http.DetectContentType(data)
}
