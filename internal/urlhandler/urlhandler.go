package urlhandler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL normalizes a URL string, ensuring it has a scheme, a lowercase
// scheme and host, and no fragment. Non-network schemes are rejected by the
// caller; this function only guarantees structural validity.
func NormalizeURL(rawURL string) (string, error) {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return "", errors.New("URL is empty or only whitespace")
	}

	// Add scheme if missing. Protocol-relative URLs keep their host part and
	// receive the default scheme through the parsed form below.
	if !strings.Contains(trimmedURL, "://") && !strings.HasPrefix(trimmedURL, "//") {
		trimmedURL = "http://" + trimmedURL
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return "", fmt.Errorf("could not parse URL '%s': %w", trimmedURL, err)
	}

	if parsedURL.Host == "" {
		return "", errors.New("URL lacks a valid hostname")
	}

	if parsedURL.Scheme == "" {
		parsedURL.Scheme = "http"
	}
	parsedURL.Scheme = strings.ToLower(parsedURL.Scheme)
	parsedURL.Host = strings.ToLower(parsedURL.Host)
	parsedURL.Fragment = ""

	return parsedURL.String(), nil
}

// ResolveURL resolves a (possibly relative) URL string against a base URL.
// The returned URL is also normalized.
func ResolveURL(href string, base *url.URL) (string, error) {
	trimmedHref := strings.TrimSpace(href)
	if trimmedHref == "" {
		return "", fmt.Errorf("href is empty")
	}

	var resolvedURL *url.URL

	if base == nil {
		// If no base, href must be an absolute URL.
		parsedHref, parseErr := url.Parse(trimmedHref)
		if parseErr != nil {
			return "", fmt.Errorf("error parsing base-less href '%s': %w", trimmedHref, parseErr)
		}
		if !parsedHref.IsAbs() {
			return "", fmt.Errorf("cannot process relative URL '%s' without a base URL", trimmedHref)
		}
		resolvedURL = parsedHref
	} else {
		resolved, resolveErr := base.Parse(trimmedHref)
		if resolveErr != nil {
			return "", fmt.Errorf("error resolving href '%s' with base '%s': %w", trimmedHref, base.String(), resolveErr)
		}
		resolvedURL = resolved
	}

	return NormalizeURL(resolvedURL.String())
}

// ValidateInputURL checks that the URL supplied as the inspection target is an
// absolute http(s) URL with a hostname. It runs before any network activity so
// malformed input fails fast.
func ValidateInputURL(rawURL string) error {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return errors.New("URL is empty")
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return fmt.Errorf("invalid URL format '%s': %w", trimmedURL, err)
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("URL '%s' must use the http or https scheme", trimmedURL)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("URL '%s' lacks a hostname", trimmedURL)
	}

	return nil
}

// IsAbsoluteHTTPURL reports whether the value parses as an absolute http(s)
// URL with a hostname. Used by the attribute scan to recognize link-bearing
// attribute values.
func IsAbsoluteHTTPURL(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

// IsInternalURL reports whether the link URL belongs to the same site as the
// base URL. Subdomains of the base host count as internal.
func IsInternalURL(linkURL string, base *url.URL) bool {
	if base == nil {
		return false
	}
	parsed, err := url.Parse(linkURL)
	if err != nil {
		return false
	}
	linkHost := strings.ToLower(parsed.Hostname())
	baseHost := strings.ToLower(base.Hostname())
	if linkHost == "" || baseHost == "" {
		return false
	}
	return linkHost == baseHost || strings.HasSuffix(linkHost, "."+baseHost)
}
