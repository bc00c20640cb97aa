package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	body := templ.Raw(`<main id="content"></main>`)
	scripts := templ.Raw(`<script src="/embed.js" async></script>`)

	var buf bytes.Buffer
	require.NoError(t, Layout("Videos & more", body, scripts).Render(context.Background(), &buf))
	page := buf.String()

	assert.True(t, strings.HasPrefix(page, "<!doctype html>"))
	assert.Contains(t, page, "<title>Videos &amp; more</title>")
	assert.Less(t, strings.Index(page, `<main id="content">`), strings.Index(page, `/embed.js`))
	assert.True(t, strings.HasSuffix(page, `async></script></body></html>`))
}

func TestLayout_NoScripts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Layout("Videos", templ.NopComponent, nil).Render(context.Background(), &buf))

	assert.True(t, strings.HasSuffix(buf.String(), `<body class="bg-neutral-50"></body></html>`))
}
