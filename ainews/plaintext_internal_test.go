package ainews

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestNodeTextBreaksAtBlocks(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		"<h2>Recap</h2><p>First <b>bold</b>\n  line</p><ul><li>One</li><li>Two<br>lines</li></ul>" +
			"<script>ignored()</script><div>Tail</div>"))
	require.NoError(t, err)

	assert.Equal(t, "Recap\nFirst bold line\n- One\n- Two\nlines\nTail", nodeText(doc))
}
