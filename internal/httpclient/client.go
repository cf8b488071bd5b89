package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"

	"github.com/pagevet/pagevet/internal/common/errorwrapper"
)

// bufferPool reuses read buffers across requests
var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 32*1024)
		return &buf
	},
}

// Client wraps http.Client with link-checking oriented defaults: tuned
// connection pooling, optional HTTP/2, a redirect cap, and a browser-like
// header set applied to every request.
type Client struct {
	client *http.Client
	config HTTPClientConfig
	logger zerolog.Logger
}

// HTTPRequest represents a request to perform
type HTTPRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
	Context context.Context
}

// HTTPResponse represents a completed response. FinalURL is the URL of the
// last request in the redirect chain, which equals the request URL when no
// redirect occurred.
type HTTPResponse struct {
	StatusCode int
	Headers    map[string][]string
	Body       []byte
	FinalURL   string
	Duration   time.Duration
}

// NewClient creates an HTTP client from the given configuration
func NewClient(config HTTPClientConfig, logger zerolog.Logger) (*Client, error) {
	transport := &http.Transport{
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		MaxConnsPerHost:       config.MaxConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		}
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "invalid proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	if config.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= config.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", config.MaxRedirects)
			}
			return nil
		}
	} else {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return &Client{
		client: client,
		config: config,
		logger: logger.With().Str("component", "HTTPClient").Logger(),
	}, nil
}

// Do executes an HTTP request and reads the response body up to the
// configured size limit. A non-2xx status is not an error; the caller
// inspects StatusCode.
func (c *Client) Do(req *HTTPRequest) (*HTTPResponse, error) {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create request")
	}

	c.applyHeaders(httpReq, req.Headers)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errorwrapper.NewNetworkError(req.URL, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp.Body)
	if err != nil {
		return nil, errorwrapper.NewNetworkError(req.URL, "failed to read response body", err)
	}

	finalURL := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		FinalURL:   finalURL,
		Duration:   time.Since(start),
	}, nil
}

// Get performs a GET request against the given URL
func (c *Client) Get(ctx context.Context, targetURL string) (*HTTPResponse, error) {
	return c.Do(&HTTPRequest{
		URL:     targetURL,
		Method:  http.MethodGet,
		Context: ctx,
	})
}

// applyHeaders layers headers onto the request: configured defaults first,
// then per-request headers, then the forced User-Agent
func (c *Client) applyHeaders(httpReq *http.Request, headers map[string]string) {
	for key, value := range c.config.CustomHeaders {
		httpReq.Header.Set(key, value)
	}

	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "*/*")
	}
}

// readBody drains the response body through a pooled buffer
func (c *Client) readBody(r io.Reader) ([]byte, error) {
	if c.config.MaxBodySize > 0 {
		r = io.LimitReader(r, int64(c.config.MaxBodySize))
	}

	bufPtr := bufferPool.Get().(*[]byte)
	defer bufferPool.Put(bufPtr)

	out := bytes.NewBuffer(nil)
	if _, err := io.CopyBuffer(out, r, *bufPtr); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Close releases idle connections held by the underlying transport
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}
