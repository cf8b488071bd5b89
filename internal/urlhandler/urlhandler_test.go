package urlhandler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{
			name:     "already normalized",
			input:    "https://example.com/page",
			expected: "https://example.com/page",
		},
		{
			name:     "adds default scheme",
			input:    "example.com/page",
			expected: "http://example.com/page",
		},
		{
			name:     "lowercases scheme and host",
			input:    "HTTPS://EXAMPLE.COM/Page",
			expected: "https://example.com/Page",
		},
		{
			name:     "strips fragment",
			input:    "https://example.com/page#section",
			expected: "https://example.com/page",
		},
		{
			name:     "protocol relative",
			input:    "//example.com/asset",
			expected: "http://example.com/asset",
		},
		{
			name:     "keeps query",
			input:    "https://example.com/page?id=1&x=2",
			expected: "https://example.com/page?id=1&x=2",
		},
		{
			name:    "empty input",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "no hostname",
			input:   "http:///path-only",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizeURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResolveURL(t *testing.T) {
	base, err := url.Parse("https://example.com/dir/page.html")
	require.NoError(t, err)

	tests := []struct {
		name     string
		href     string
		base     *url.URL
		expected string
		wantErr  bool
	}{
		{
			name:     "absolute href ignores base",
			href:     "https://other.com/x",
			base:     base,
			expected: "https://other.com/x",
		},
		{
			name:     "root relative",
			href:     "/about",
			base:     base,
			expected: "https://example.com/about",
		},
		{
			name:     "directory relative",
			href:     "contact.html",
			base:     base,
			expected: "https://example.com/dir/contact.html",
		},
		{
			name:     "parent relative",
			href:     "../up.html",
			base:     base,
			expected: "https://example.com/up.html",
		},
		{
			name:     "fragment stripped after resolution",
			href:     "/about#team",
			base:     base,
			expected: "https://example.com/about",
		},
		{
			name:     "absolute without base",
			href:     "https://example.com/solo",
			base:     nil,
			expected: "https://example.com/solo",
		},
		{
			name:    "relative without base",
			href:    "/no-base",
			base:    nil,
			wantErr: true,
		},
		{
			name:    "empty href",
			href:    "  ",
			base:    base,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolveURL(tt.href, tt.base)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResolveURL_Deterministic(t *testing.T) {
	base, err := url.Parse("https://example.com/a/b")
	require.NoError(t, err)

	first, err := ResolveURL("../x?q=1#frag", base)
	require.NoError(t, err)
	second, err := ResolveURL("../x?q=1#frag", base)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidateInputURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid https", input: "https://example.com"},
		{name: "valid http with path", input: "http://example.com/page?x=1"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace", input: "   ", wantErr: true},
		{name: "missing scheme", input: "example.com", wantErr: true},
		{name: "unsupported scheme", input: "ftp://example.com", wantErr: true},
		{name: "scheme only", input: "https://", wantErr: true},
		{name: "garbage", input: "://nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsAbsoluteHTTPURL(t *testing.T) {
	assert.True(t, IsAbsoluteHTTPURL("https://example.com/page"))
	assert.True(t, IsAbsoluteHTTPURL("http://example.com"))
	assert.False(t, IsAbsoluteHTTPURL("/relative/path"))
	assert.False(t, IsAbsoluteHTTPURL("mailto:a@example.com"))
	assert.False(t, IsAbsoluteHTTPURL("javascript:void(0)"))
	assert.False(t, IsAbsoluteHTTPURL(""))
	assert.False(t, IsAbsoluteHTTPURL("Open the menu"))
}

func TestIsInternalURL(t *testing.T) {
	base, err := url.Parse("https://www.example.com/page")
	require.NoError(t, err)

	tests := []struct {
		name     string
		link     string
		expected bool
	}{
		{name: "same host", link: "https://www.example.com/other", expected: true},
		{name: "subdomain", link: "https://blog.www.example.com/post", expected: true},
		{name: "different host", link: "https://other.com/x", expected: false},
		{name: "sibling subdomain", link: "https://api.example.com/x", expected: false},
		{name: "unparsable", link: "://bad", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsInternalURL(tt.link, base))
		})
	}
}
