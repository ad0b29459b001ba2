package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("done"), "done")
	assert.Contains(t, FormatError("broken"), "broken")
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatInfo("fyi"), "fyi")
}

func TestRenderFolderTree(t *testing.T) {
	tree := map[string]any{
		"vector": map[string]any{
			"hydrography": map[string]any{},
			"other":       map[string]any{},
		},
		"raster": map[string]any{},
	}

	rendered := RenderFolderTree(tree)
	lines := strings.Split(rendered, "\n")
	assert.Len(t, lines, 4)
	// Siblings come out sorted, children indented under parents.
	assert.Contains(t, lines[0], "raster")
	assert.Contains(t, lines[1], "vector")
	assert.True(t, strings.HasPrefix(lines[2], "  "))
	assert.Contains(t, lines[2], "hydrography")
}
