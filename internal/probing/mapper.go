package probing

import (
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/projectdiscovery/httpx/runner"
	"github.com/rs/zerolog"

	"github.com/pagevet/pagevet/internal/models"
)

// resultMapper converts raw httpx results into the probe model.
type resultMapper struct {
	logger zerolog.Logger
}

func newResultMapper(logger zerolog.Logger) *resultMapper {
	return &resultMapper{
		logger: logger.With().Str("component", "ProbeResultMapper").Logger(),
	}
}

// mapResult converts one httpx runner.Result into a PageProbe.
func (rm *resultMapper) mapResult(res runner.Result) *models.PageProbe {
	probe := &models.PageProbe{
		InputURL:      res.Input,
		FinalURL:      res.URL,
		Method:        res.Method,
		Timestamp:     res.Timestamp,
		Error:         res.Error,
		StatusCode:    res.StatusCode,
		ContentLength: int64(res.ContentLength),
		ContentType:   res.ContentType,
		WebServer:     res.WebServer,
	}

	rm.mapDuration(probe, res)
	rm.mapHeaders(probe, res)

	if len(res.Technologies) > 0 {
		probe.Technologies = append([]string(nil), res.Technologies...)
	}
	if len(res.A) > 0 {
		probe.IPs = res.A
	}

	return probe
}

// mapDuration parses the engine's response time string.
func (rm *resultMapper) mapDuration(probe *models.PageProbe, res runner.Result) {
	if res.ResponseTime == "" {
		return
	}

	if dur, err := time.ParseDuration(res.ResponseTime); err == nil {
		probe.Duration = dur.Seconds()
		return
	}

	// Older engine versions emitted a bare number of seconds.
	durationStr := strings.TrimSuffix(res.ResponseTime, "s")
	if dur, err := strconv.ParseFloat(durationStr, 64); err == nil {
		probe.Duration = dur
	} else {
		rm.logger.Debug().
			Str("response_time", res.ResponseTime).
			Err(err).
			Msg("Failed to parse probe response time")
	}
}

// mapHeaders copies response headers, restoring canonical header names. The
// engine reports keys in lowercase underscore form (content_type), which
// would defeat name lookups by the rule catalog.
func (rm *resultMapper) mapHeaders(probe *models.PageProbe, res runner.Result) {
	if len(res.ResponseHeaders) == 0 {
		return
	}

	probe.ResponseHeaders = make(map[string]string, len(res.ResponseHeaders))
	for key, value := range res.ResponseHeaders {
		probe.ResponseHeaders[canonicalHeaderKey(key)] = rm.convertHeaderValue(key, value)
	}
}

func canonicalHeaderKey(key string) string {
	return textproto.CanonicalMIMEHeaderKey(strings.ReplaceAll(key, "_", "-"))
}

// convertHeaderValue flattens the engine's loosely typed header values.
func (rm *resultMapper) convertHeaderValue(headerKey string, value interface{}) string {
	switch val := value.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case []interface{}:
		return rm.convertInterfaceSliceToString(val)
	default:
		rm.logger.Debug().
			Str("header_key", headerKey).
			Interface("value", value).
			Msg("Unknown header value type")
		return ""
	}
}

func (rm *resultMapper) convertInterfaceSliceToString(values []interface{}) string {
	var strVals []string
	for _, value := range values {
		if sv, ok := value.(string); ok {
			strVals = append(strVals, sv)
		}
	}
	return strings.Join(strVals, ", ")
}
