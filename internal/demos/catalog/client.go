package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2beens/gymdemos/internal/telemetry/metrics"
	"github.com/2beens/gymdemos/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://wger.de/api/v2"
	DefaultTimeout = 8 * time.Second

	// wger replies with a small JSON document; anything bigger is not what we asked for
	maxResponseBytes = 2 << 20

	opSearch = "search"
	opVideo  = "video"
	opImage  = "image"
)

// Client talks to the wger exercise catalog. All of its lookups fail soft:
// any network error, non-2xx response, malformed payload or timeout is
// reported as "no result" and logged, never returned to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	metrics    *metrics.Manager
}

type NewClientParams struct {
	BaseURL    string
	HttpClient *http.Client
	// Timeout bounds every single request; a timed out request does not affect the next one.
	Timeout time.Duration
	// RequestsPerSecond limits outgoing requests to the public catalog, 0 disables the limit.
	RequestsPerSecond float64
	Metrics           *metrics.Manager
}

func NewClient(params NewClientParams) *Client {
	baseURL := strings.TrimSuffix(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := params.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if params.RequestsPerSecond > 0 {
		burst := int(params.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(params.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    timeout,
		limiter:    limiter,
		metrics:    params.Metrics,
	}
}

// SearchByTerm returns the first suggestion the catalog gives for term.
// There is no ranking beyond the provider order.
func (c *Client) SearchByTerm(ctx context.Context, term string) (Suggestion, bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Suggestion{}, false
	}

	searchURL := fmt.Sprintf(
		"%s/exercise/search/?term=%s&language=en&format=json",
		c.baseURL, url.QueryEscape(term),
	)

	var resp searchResponse
	if err := c.getJSON(ctx, opSearch, searchURL, &resp); err != nil {
		log.Warnf("catalog: search [%s]: %s", term, err)
		return Suggestion{}, false
	}

	if len(resp.Suggestions) == 0 {
		log.Debugf("catalog: search [%s]: no suggestions", term)
		return Suggestion{}, false
	}

	best := resp.Suggestions[0].Data
	id := best.BaseID
	if id == 0 {
		id = best.ID
	}
	if id == 0 {
		log.Warnf("catalog: search [%s]: first suggestion has no id", term)
		return Suggestion{}, false
	}

	thumbnail := best.Image
	if thumbnail == "" {
		thumbnail = best.ImageThumbnail
	}

	log.Debugf("catalog: search [%s]: best match [%d] %s", term, id, best.Name)

	return Suggestion{
		ID:           id,
		Name:         best.Name,
		ThumbnailURL: c.absoluteURL(thumbnail),
	}, true
}

// FetchVideo returns the first video associated with the catalog id.
func (c *Client) FetchVideo(ctx context.Context, catalogID int) (string, bool) {
	videoURL := fmt.Sprintf("%s/video/?exercise_base=%d&format=json", c.baseURL, catalogID)

	var resp videoListResponse
	if err := c.getJSON(ctx, opVideo, videoURL, &resp); err != nil {
		log.Warnf("catalog: videos for [%d]: %s", catalogID, err)
		return "", false
	}

	for _, v := range resp.Results {
		if v.Video != "" {
			return c.absoluteURL(v.Video), true
		}
	}

	log.Debugf("catalog: no videos for [%d]", catalogID)
	return "", false
}

// FetchImage returns the image flagged as main, or the first image if none is flagged.
func (c *Client) FetchImage(ctx context.Context, catalogID int) (string, bool) {
	imagesURL := fmt.Sprintf("%s/exerciseimage/?exercise_base=%d&format=json", c.baseURL, catalogID)

	var resp imageListResponse
	if err := c.getJSON(ctx, opImage, imagesURL, &resp); err != nil {
		log.Warnf("catalog: images for [%d]: %s", catalogID, err)
		return "", false
	}

	first := ""
	for _, img := range resp.Results {
		if img.Image == "" {
			continue
		}
		if img.IsMain {
			return c.absoluteURL(img.Image), true
		}
		if first == "" {
			first = img.Image
		}
	}

	if first == "" {
		log.Debugf("catalog: no images for [%d]", catalogID)
		return "", false
	}

	return c.absoluteURL(first), true
}

func (c *Client) getJSON(ctx context.Context, op, reqURL string, target any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "catalog."+op)
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("catalog.url", reqURL))

	// each request gets its own deadline, independent of earlier failures
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		c.observe(op, start, err)
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response bytes: %w", err)
	}

	if err := json.Unmarshal(respBytes, target); err != nil {
		return fmt.Errorf("unmarshal response bytes: %w", err)
	}

	return nil
}

func (c *Client) observe(op string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.CounterCatalogRequests.WithLabelValues(op, outcome).Inc()
	c.metrics.HistogramCatalogRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// absoluteURL resolves media paths the catalog sometimes returns relative to its host.
func (c *Client) absoluteURL(mediaURL string) string {
	if mediaURL == "" || strings.HasPrefix(mediaURL, "http://") || strings.HasPrefix(mediaURL, "https://") {
		return mediaURL
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return mediaURL
	}
	ref, err := url.Parse(mediaURL)
	if err != nil {
		return mediaURL
	}
	return base.ResolveReference(ref).String()
}
