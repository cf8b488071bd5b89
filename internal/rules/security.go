package rules

import (
	"regexp"
	"strings"

	"github.com/pagevet/pagevet/internal/models"
)

// securityHeaders are the response headers the hardening check looks for.
var securityHeaders = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Content-Type-Options",
	"X-Frame-Options",
}

var serverVersionPattern = regexp.MustCompile(`\d+\.\d+`)

// secretRule pairs a finding label with its detection pattern. Patterns with
// a capture group report the group, not the whole match.
type secretRule struct {
	id    string
	regex *regexp.Regexp
}

var secretRules = []secretRule{
	{"AWS access key ID", regexp.MustCompile(`\b(AKIA[0-9A-Z]{16})\b`)},
	{"AWS secret access key", regexp.MustCompile(`(?i)(?:aws_secret_access_key|aws_secret_key)\s*[:=]\s*['"]([A-Za-z0-9/+=]{40})['"]`)},
	{"GitHub personal access token", regexp.MustCompile(`\b(ghp_[A-Za-z0-9]{36})\b`)},
	{"generic API key", regexp.MustCompile(`\b(sk-[a-zA-Z0-9]{32,50})\b`)},
	{"JWT", regexp.MustCompile(`\b(eyJ[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_]+\.[A-Za-z0-9\-_/+=]*)\b`)},
	{"Slack bot token", regexp.MustCompile(`(xoxb-[0-9a-zA-Z]{10,48})`)},
	{"Slack webhook", regexp.MustCompile(`(https://hooks\.slack\.com/services/T[a-zA-Z0-9]{8}/B[a-zA-Z0-9]{8}/[a-zA-Z0-9]{24})`)},
	{"private key block", regexp.MustCompile(`(-----BEGIN(?: [A-Z]+)? PRIVATE KEY-----)`)},
}

func (c *Catalog) securityChecks(snapshot *models.PageSnapshot, probe *models.PageProbe) []models.CheckResult {
	return []models.CheckResult{
		c.checkHTTPS(snapshot),
		c.checkLoginFormTransport(snapshot),
		c.checkMixedContent(snapshot),
		c.checkSecurityHeaders(probe),
		c.checkServerVersion(probe),
		c.checkSecretExposure(snapshot),
	}
}

func (c *Catalog) checkHTTPS(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "https"

	if !isHTTPS(snapshot.URL) {
		return fail(test, models.CheckCategorySecurity, "page served over plain http")
	}
	return pass(test, models.CheckCategorySecurity, "page served over https")
}

func (c *Catalog) checkLoginFormTransport(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "login form transport"

	pageSecure := isHTTPS(snapshot.URL)
	var loginForms, insecure int
	for _, form := range snapshot.Forms {
		if !form.HasPasswordField {
			continue
		}
		loginForms++
		if !pageSecure || strings.HasPrefix(strings.ToLower(form.Action), "http://") {
			insecure++
		}
	}

	if loginForms == 0 {
		return pass(test, models.CheckCategorySecurity, "no login forms on the page")
	}
	if insecure > 0 {
		return fail(test, models.CheckCategorySecurity,
			"%d login form(s) handle credentials over plain http", insecure)
	}
	return pass(test, models.CheckCategorySecurity, "all %d login form(s) use https", loginForms)
}

func (c *Catalog) checkMixedContent(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "mixed content"

	if !isHTTPS(snapshot.URL) {
		return warn(test, models.CheckCategorySecurity, "not evaluated: page is not served over https")
	}

	var insecure []string
	for _, image := range snapshot.Images {
		if strings.HasPrefix(strings.ToLower(image.Src), "http://") {
			insecure = append(insecure, image.Src)
		}
	}
	for _, favicon := range snapshot.Favicons {
		if strings.HasPrefix(strings.ToLower(favicon), "http://") {
			insecure = append(insecure, favicon)
		}
	}

	if len(insecure) == 0 {
		return pass(test, models.CheckCategorySecurity, "no mixed content detected")
	}
	result := fail(test, models.CheckCategorySecurity,
		"%d subresource(s) loaded over plain http on an https page", len(insecure))
	result.Details = map[string]any{"resources": capStrings(insecure, 10)}
	return result
}

func (c *Catalog) checkSecurityHeaders(probe *models.PageProbe) models.CheckResult {
	const test = "security headers"

	if !probe.Completed() {
		return warn(test, models.CheckCategorySecurity, "not evaluated: %s", probeGap(probe))
	}

	var missing []string
	for _, header := range securityHeaders {
		if probe.Header(header) == "" {
			missing = append(missing, header)
		}
	}

	if len(missing) == 0 {
		return pass(test, models.CheckCategorySecurity, "all expected security headers present")
	}
	result := warn(test, models.CheckCategorySecurity,
		"missing security headers: %s", strings.Join(missing, ", "))
	result.Details = map[string]any{"missing": missing}
	return result
}

func (c *Catalog) checkServerVersion(probe *models.PageProbe) models.CheckResult {
	const test = "server version disclosure"

	if !probe.Completed() {
		return warn(test, models.CheckCategorySecurity, "not evaluated: %s", probeGap(probe))
	}

	banner := probe.WebServer
	if banner == "" {
		banner = probe.Header("Server")
	}
	switch {
	case banner == "":
		return pass(test, models.CheckCategorySecurity, "no server software disclosed")
	case serverVersionPattern.MatchString(banner):
		return fail(test, models.CheckCategorySecurity, "server header discloses software version: %s", banner)
	default:
		return pass(test, models.CheckCategorySecurity, "server header present without version: %s", banner)
	}
}

func (c *Catalog) checkSecretExposure(snapshot *models.PageSnapshot) models.CheckResult {
	const test = "secret exposure"

	if len(snapshot.InlineScripts) == 0 {
		return pass(test, models.CheckCategorySecurity, "no inline scripts to scan")
	}

	seen := make(map[string]struct{})
	kindSeen := make(map[string]struct{})
	var kinds []string
	var findings []map[string]string

	for _, rule := range secretRules {
		for _, script := range snapshot.InlineScripts {
			for _, match := range rule.regex.FindAllStringSubmatch(script, -1) {
				secret := match[0]
				if len(match) > 1 && match[1] != "" {
					secret = match[1]
				}
				if _, dup := seen[secret]; dup {
					continue
				}
				seen[secret] = struct{}{}
				findings = append(findings, map[string]string{
					"rule":  rule.id,
					"match": redactSecret(secret),
				})
				if _, dup := kindSeen[rule.id]; !dup {
					kindSeen[rule.id] = struct{}{}
					kinds = append(kinds, rule.id)
				}
			}
		}
	}

	if len(findings) == 0 {
		return pass(test, models.CheckCategorySecurity,
			"no secrets found in %d inline script(s)", len(snapshot.InlineScripts))
	}
	result := fail(test, models.CheckCategorySecurity,
		"%d potential secret(s) in inline scripts: %s", len(findings), strings.Join(kinds, ", "))
	result.Details = map[string]any{"findings": findings}
	return result
}

func isHTTPS(rawURL string) bool {
	return strings.HasPrefix(strings.ToLower(rawURL), "https://")
}

// probeGap explains why probe-backed checks could not run.
func probeGap(probe *models.PageProbe) string {
	switch {
	case probe == nil:
		return "no probe data"
	case probe.Error != "":
		return "probe failed: " + probe.Error
	default:
		return "probe returned no response"
	}
}

// redactSecret keeps a short prefix so the report does not republish the
// credential it found.
func redactSecret(secret string) string {
	const keep = 6
	runes := []rune(secret)
	if len(runes) <= keep {
		return string(runes)
	}
	return string(runes[:keep]) + "..."
}

// capStrings bounds detail lists in the report.
func capStrings(values []string, limit int) []string {
	if len(values) <= limit {
		return values
	}
	return values[:limit]
}
