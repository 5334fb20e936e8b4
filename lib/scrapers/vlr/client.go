package vlr

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"vlrdata-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/vlr")

// the site serves descriptive 404 pages, this marker is how a
// missing player or match is positively identified.
const notFoundMarker = "Page not found"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
	Timeout time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = "https://www.vlr.gg"
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, "scrapers/vlr/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

// getDocument performs a single GET and classifies the response before
// parsing. The order matters: content type is checked before the status
// code, and the not-found marker only after both gates, since a 404
// page is still well-formed html.
func (c *Client) getDocument(ctx context.Context, path string, query url.Values) (*goquery.Document, error) {
	req := c.Http.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	res, err := req.Get(path)
	if err != nil {
		return nil, err
	}

	contentType := res.Header().Get("Content-Type")
	if !strings.Contains(contentType, "text/html") {
		return nil, fmt.Errorf("%w: got %q", ErrInvalidContentType, contentType)
	}
	if res.StatusCode() != http.StatusOK && res.StatusCode() != http.StatusNotFound {
		return nil, fmt.Errorf("%w: status code %d", ErrRequestFailed, res.StatusCode())
	}
	if bytes.Contains(res.Body(), []byte(notFoundMarker)) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}
