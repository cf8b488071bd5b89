package httpclient

import (
	"time"

	"github.com/rs/zerolog"
)

// ClientBuilder builds HTTP clients with a fluent interface
type ClientBuilder struct {
	config HTTPClientConfig
	logger zerolog.Logger
}

// NewClientBuilder creates a new ClientBuilder with default configuration
func NewClientBuilder(logger zerolog.Logger) *ClientBuilder {
	return &ClientBuilder{
		config: DefaultHTTPClientConfig(),
		logger: logger,
	}
}

// WithTimeout sets the request timeout
func (b *ClientBuilder) WithTimeout(timeout time.Duration) *ClientBuilder {
	b.config.Timeout = timeout
	return b
}

// WithInsecureSkipVerify sets whether to skip TLS verification
func (b *ClientBuilder) WithInsecureSkipVerify(skip bool) *ClientBuilder {
	b.config.InsecureSkipVerify = skip
	return b
}

// WithFollowRedirects sets whether to follow redirects
func (b *ClientBuilder) WithFollowRedirects(follow bool) *ClientBuilder {
	b.config.FollowRedirects = follow
	return b
}

// WithMaxRedirects sets the maximum number of redirects to follow
func (b *ClientBuilder) WithMaxRedirects(max int) *ClientBuilder {
	b.config.MaxRedirects = max
	return b
}

// WithUserAgent sets the User-Agent header
func (b *ClientBuilder) WithUserAgent(userAgent string) *ClientBuilder {
	b.config.UserAgent = userAgent
	return b
}

// WithProxy sets the proxy URL
func (b *ClientBuilder) WithProxy(proxy string) *ClientBuilder {
	b.config.Proxy = proxy
	return b
}

// WithHeader adds a header sent with every request
func (b *ClientBuilder) WithHeader(key, value string) *ClientBuilder {
	if b.config.CustomHeaders == nil {
		b.config.CustomHeaders = make(map[string]string)
	}
	b.config.CustomHeaders[key] = value
	return b
}

// WithMaxBodySize sets the maximum response body bytes read (0 for no limit)
func (b *ClientBuilder) WithMaxBodySize(size int) *ClientBuilder {
	b.config.MaxBodySize = size
	return b
}

// WithConnectionPooling sets connection pooling parameters
func (b *ClientBuilder) WithConnectionPooling(maxIdle, maxIdlePerHost, maxPerHost int) *ClientBuilder {
	b.config.MaxIdleConns = maxIdle
	b.config.MaxIdleConnsPerHost = maxIdlePerHost
	b.config.MaxConnsPerHost = maxPerHost
	return b
}

// WithHTTP2 enables or disables HTTP/2 support
func (b *ClientBuilder) WithHTTP2(enabled bool) *ClientBuilder {
	b.config.EnableHTTP2 = enabled
	return b
}

// Build creates and returns a new Client
func (b *ClientBuilder) Build() (*Client, error) {
	return NewClient(b.config, b.logger)
}
