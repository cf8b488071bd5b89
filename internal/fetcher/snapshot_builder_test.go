package fetcher

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectHTMLVersion(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "html5",
			html:     "<!DOCTYPE html><html></html>",
			expected: "HTML 5",
		},
		{
			name:     "html5 lowercase with whitespace",
			html:     "<!doctype   html >\n<html></html>",
			expected: "HTML 5",
		},
		{
			name:     "html 4.01 strict",
			html:     `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd"><html></html>`,
			expected: "HTML 4.01 Strict",
		},
		{
			name:     "html 4.01 transitional",
			html:     `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN"><html></html>`,
			expected: "HTML 4.01 Transitional",
		},
		{
			name:     "xhtml 1.0 strict",
			html:     `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd"><html></html>`,
			expected: "XHTML 1.0 Strict",
		},
		{
			name:     "no doctype",
			html:     "<html><body></body></html>",
			expected: "unknown",
		},
		{
			name:     "empty",
			html:     "",
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detectHTMLVersion(tt.html))
		})
	}
}

func TestBuildResolvesRelativeReferences(t *testing.T) {
	sb := NewSnapshotBuilder(zerolog.Nop(), false)

	html := `<html><head>
		<link rel="canonical" href="../about">
		<link rel="icon" href="icons/fav.png">
	</head><body>
		<img src="pic.jpg">
		<form action="submit"></form>
	</body></html>`

	snapshot, err := sb.Build("https://example.com/a/b/", "https://example.com/a/b/", html)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/a/about", snapshot.CanonicalURL)
	assert.Equal(t, []string{"https://example.com/a/b/icons/fav.png"}, snapshot.Favicons)
	require.Len(t, snapshot.Images, 1)
	assert.Equal(t, "https://example.com/a/b/pic.jpg", snapshot.Images[0].Src)
	require.Len(t, snapshot.Forms, 1)
	assert.Equal(t, "https://example.com/a/b/submit", snapshot.Forms[0].Action)
}

func TestBuildCountsFormControls(t *testing.T) {
	sb := NewSnapshotBuilder(zerolog.Nop(), false)

	html := `<html><body><form action="/login" method="post">
		<label for="user">Username</label>
		<input type="text" id="user">
		<input type="password" id="pass">
		<label><input type="checkbox" name="remember"> Remember me</label>
		<input type="email" aria-label="Recovery email">
		<select name="region"><option>EU</option></select>
		<textarea title="Notes"></textarea>
		<input type="hidden" name="csrf" value="tok">
		<input type="submit" value="Sign in">
	</form></body></html>`

	snapshot, err := sb.Build("https://example.com", "https://example.com", html)
	require.NoError(t, err)

	require.Len(t, snapshot.Forms, 1)
	form := snapshot.Forms[0]
	assert.Equal(t, "POST", form.Method)
	assert.True(t, form.HasPasswordField)
	// hidden and submit inputs are not user-facing controls
	assert.Equal(t, 6, form.Inputs)
	// the password field and the region select have no label association
	assert.Equal(t, 2, form.UnlabeledInputs)
}

func TestBuildKeepsDataImageURIs(t *testing.T) {
	sb := NewSnapshotBuilder(zerolog.Nop(), false)

	html := `<html><body><img src="data:image/png;base64,iVBOR" alt="dot"></body></html>`

	snapshot, err := sb.Build("https://example.com", "https://example.com", html)
	require.NoError(t, err)
	require.Len(t, snapshot.Images, 1)
	assert.Equal(t, "data:image/png;base64,iVBOR", snapshot.Images[0].Src)
}

func TestBuildInlineScriptsGated(t *testing.T) {
	html := `<html><body>
		<script src="/app.js"></script>
		<script>var x = 1;</script>
	</body></html>`

	withScripts, err := NewSnapshotBuilder(zerolog.Nop(), true).Build("https://example.com", "https://example.com", html)
	require.NoError(t, err)
	require.Len(t, withScripts.InlineScripts, 1)
	assert.Equal(t, "var x = 1;", withScripts.InlineScripts[0])

	withoutScripts, err := NewSnapshotBuilder(zerolog.Nop(), false).Build("https://example.com", "https://example.com", html)
	require.NoError(t, err)
	assert.Empty(t, withoutScripts.InlineScripts)
}

func TestBuildEmptyPage(t *testing.T) {
	sb := NewSnapshotBuilder(zerolog.Nop(), true)

	snapshot, err := sb.Build("https://example.com", "https://example.com", "")
	require.NoError(t, err)

	assert.Empty(t, snapshot.Title)
	assert.Nil(t, snapshot.Headings)
	assert.Nil(t, snapshot.Meta)
	assert.Empty(t, snapshot.Favicons)
	assert.Equal(t, "unknown", snapshot.HTMLVersion)
}
