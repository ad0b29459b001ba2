package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoshelf/geoshelf/internal/common"
	"github.com/geoshelf/geoshelf/internal/model"
)

func archiveTemplate() model.OrganizationTemplate {
	return model.OrganizationTemplate{
		Name:        "Archive",
		Description: "archival layout",
		FolderStructure: model.FolderTree{Roots: []*model.FolderNode{
			{Name: "incoming", Children: []*model.FolderNode{
				{Name: "review"},
			}},
			{Name: "stored"},
		}},
		NamingConvention: &model.NamingConvention{Prefix: "arch"},
	}
}

func TestTemplate_Lookup(t *testing.T) {
	o := New()

	template, err := o.Template(TemplateFlat)
	require.NoError(t, err)
	assert.Equal(t, TemplateFlat, template.Name)

	_, err = o.Template("No Such Template")
	assert.ErrorIs(t, err, common.ErrTemplateNotFound)
}

func TestSaveTemplate_CreatesFile(t *testing.T) {
	o := New()
	path := filepath.Join(t.TempDir(), "templates.json")

	require.NoError(t, o.SaveTemplate(archiveTemplate(), path))
	assert.FileExists(t, path)

	loaded := New()
	require.NoError(t, loaded.LoadTemplates(path))

	template, err := loaded.Template("Archive")
	require.NoError(t, err)
	assert.Equal(t, "archival layout", template.Description)
	require.True(t, template.FolderStructure.HasRoot("incoming"))
	assert.True(t, template.FolderStructure.Root("incoming").HasChild("review"))
	require.NotNil(t, template.NamingConvention)
	assert.Equal(t, "arch", template.NamingConvention.Prefix)
}

func TestSaveTemplate_UpsertsByName(t *testing.T) {
	o := New()
	path := filepath.Join(t.TempDir(), "templates.json")

	require.NoError(t, o.SaveTemplate(archiveTemplate(), path))

	replacement := archiveTemplate()
	replacement.Description = "revised archival layout"
	require.NoError(t, o.SaveTemplate(replacement, path))

	other := archiveTemplate()
	other.Name = "Cold Storage"
	require.NoError(t, o.SaveTemplate(other, path))

	loaded := New()
	require.NoError(t, loaded.LoadTemplates(path))

	// Re-saving "Archive" replaced the entry instead of appending a second
	// one: the built-ins plus two custom templates.
	assert.Len(t, loaded.Templates(), len(DefaultTemplates())+2)

	template, err := loaded.Template("Archive")
	require.NoError(t, err)
	assert.Equal(t, "revised archival layout", template.Description)
}

func TestSaveTemplate_RejectsMalformedFile(t *testing.T) {
	o := New()
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	err := o.SaveTemplate(archiveTemplate(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse existing templates file")
}
