package gate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/farmily/farmily/internal/client/attribution"
	"github.com/farmily/farmily/internal/client/models"
	"github.com/farmily/farmily/internal/devicex"
)

const (
	DefaultTimeout = 15 * time.Second

	// maxBodySize bounds the response read; a real answer is a token and a URL.
	maxBodySize = 64 << 10
)

// Client fetches the gate credential.
type Client interface {
	FetchGate(ctx context.Context) (models.GateCredential, error)
}

// Params are the query parameters of a gate request.
type Params struct {
	Secret        string
	OSVersion     string
	Language      string
	DeviceModel   string
	Country       string
	AttributionID string
}

type HTTPClient struct {
	endpoint    string
	secret      string
	http        *http.Client
	attribution attribution.Provider
	device      func() devicex.Info
}

// NewHTTPClient returns a gate client for endpoint. A non-positive timeout
// means DefaultTimeout.
func NewHTTPClient(endpoint, secret string, timeout time.Duration, attr attribution.Provider) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		endpoint:    endpoint,
		secret:      secret,
		http:        &http.Client{Timeout: timeout},
		attribution: attr,
		device:      devicex.Current,
	}
}

func (c *HTTPClient) params(ctx context.Context) Params {
	info := c.device()
	p := Params{
		Secret:      c.secret,
		OSVersion:   info.OSVersion,
		Language:    info.Language,
		DeviceModel: info.Model,
		Country:     info.Region,
	}
	if c.attribution != nil {
		p.AttributionID = c.attribution.AttributionID(ctx)
	}
	return p
}

// FetchGate performs one GET against the endpoint and parses the body.
// The HTTP status is not inspected; only the body decides the outcome.
func (c *HTTPClient) FetchGate(ctx context.Context) (models.GateCredential, error) {
	link, err := BuildURL(c.endpoint, c.params(ctx))
	if err != nil {
		return models.GateCredential{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return models.GateCredential{}, fmt.Errorf("%w: %w", ErrInvalidRequestURL, err)
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.GateCredential{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return models.GateCredential{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if len(body) > maxBodySize {
		return models.GateCredential{}, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedResponse, maxBodySize)
	}

	return ParseResponse(body)
}

// BuildURL adds the gate query parameters to endpoint. Parameters already
// present in endpoint are kept unless overwritten.
func BuildURL(endpoint string, p Params) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRequestURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute http(s) url", ErrInvalidRequestURL, endpoint)
	}

	q := u.Query()
	q.Set("p", p.Secret)
	q.Set("os", p.OSVersion)
	q.Set("lng", p.Language)
	q.Set("devicemodel", p.DeviceModel)
	q.Set("country", p.Country)
	q.Set("appsflyerid", p.AttributionID)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// ParseResponse splits "<token>#<url>" on the first '#'.
func ParseResponse(body []byte) (models.GateCredential, error) {
	if !utf8.Valid(body) {
		return models.GateCredential{}, fmt.Errorf("%w: body is not utf-8 text", ErrMalformedResponse)
	}

	token, link, ok := strings.Cut(string(body), "#")
	if !ok {
		return models.GateCredential{}, fmt.Errorf("%w: missing '#' separator", ErrMalformedResponse)
	}

	return models.GateCredential{Token: token, ContentURL: link}, nil
}
