package styles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisel-ui/chisel/internal/types"
)

func TestMatch_ExactBeatsPrefix(t *testing.T) {
	catalog := Default()

	// "text-base" is an exact fontSize token even though it also carries
	// the textColor "text-" prefix.
	group, ok := catalog.Match("text-base")
	require.True(t, ok)
	assert.Equal(t, "fontSize", group.Name)

	group, ok = catalog.Match("text-center")
	require.True(t, ok)
	assert.Equal(t, "textAlign", group.Name)

	group, ok = catalog.Match("text-white")
	require.True(t, ok)
	assert.Equal(t, "textColor", group.Name)

	// Prefix-only membership still matches.
	group, ok = catalog.Match("text-rose-400")
	require.True(t, ok)
	assert.Equal(t, "textColor", group.Name)
}

func TestMatch_CommonTokens(t *testing.T) {
	catalog := Default()
	tests := []struct {
		token string
		group string
	}{
		{"bg-slate-900", "backgroundColor"},
		{"bg-white", "backgroundColor"},
		{"p-6", "padding"},
		{"m-auto", "margin"},
		{"rounded-lg", "borderRadius"},
		{"border", "borderWidth"},
		{"border-2", "borderWidth"},
		{"border-gray-200", "borderColor"},
		{"shadow-md", "shadow"},
		{"font-bold", "fontWeight"},
		{"flex", "display"},
		{"w-full", "width"},
	}
	for _, tt := range tests {
		group, ok := catalog.Match(tt.token)
		require.True(t, ok, "token %s", tt.token)
		assert.Equal(t, tt.group, group.Name, "token %s", tt.token)
	}
}

func TestMatch_Unknown(t *testing.T) {
	catalog := Default()
	_, ok := catalog.Match("hover:underline")
	assert.False(t, ok)
	_, ok = catalog.Match("container")
	assert.False(t, ok)
}

func TestRequiresUnit(t *testing.T) {
	catalog := Default()
	assert.True(t, catalog.RequiresUnit("padding"))
	assert.True(t, catalog.RequiresUnit("fontSize"))
	assert.True(t, catalog.RequiresUnit("borderWidth"))
	assert.False(t, catalog.RequiresUnit("backgroundColor"))
	assert.False(t, catalog.RequiresUnit("fontWeight"))
}

func TestDefinition(t *testing.T) {
	catalog := Default()
	group, _ := catalog.Group("padding")

	def := catalog.Definition(group, "p-4")
	assert.Equal(t, "padding", def.Name)
	assert.Equal(t, types.MappingClassGroup, def.Mapping)
	assert.Equal(t, "p-4", def.DefaultValue)
	assert.Equal(t, types.PropertyTypeSelect, def.Type)
	assert.NotEmpty(t, def.Options)
}

func TestResolveProperty(t *testing.T) {
	catalog := Default()
	elem := &types.ComponentElement{
		ID:   "el-0",
		Type: "div",
		Properties: []types.PropertyDefinition{
			{Name: "backgroundColor", Mapping: types.MappingClassGroup, DefaultValue: "bg-white"},
		},
	}

	// Already surfaced: returned as-is.
	prop, ok := catalog.ResolveProperty(elem, "backgroundColor")
	require.True(t, ok)
	assert.Equal(t, "bg-white", prop.DefaultValue)

	// Class-group not yet on the element: baseline definition.
	prop, ok = catalog.ResolveProperty(elem, "padding")
	require.True(t, ok)
	assert.Equal(t, types.MappingClassGroup, prop.Mapping)
	assert.Empty(t, prop.DefaultValue)

	// Attribute restricted to other tags does not resolve.
	_, ok = catalog.ResolveProperty(elem, "placeholder")
	assert.False(t, ok)

	// Unrestricted attribute resolves on any tag.
	prop, ok = catalog.ResolveProperty(elem, "title")
	require.True(t, ok)
	assert.Equal(t, types.MappingAttribute, prop.Mapping)

	_, ok = catalog.ResolveProperty(elem, "nonsense")
	assert.False(t, ok)
}

func TestMerge_OverlayReplacesAndAppends(t *testing.T) {
	base := Default()
	overlay := &Catalog{
		Groups: []ClassGroup{
			{Name: "padding", Label: "Padding", Category: "Spacing", Prefixes: []string{"p-", "px-", "py-"}},
			{Name: "gap", Label: "Gap", Category: "Spacing", Unit: true, Prefixes: []string{"gap-"}},
		},
	}
	merged := Merge(base, overlay)

	padding, ok := merged.Group("padding")
	require.True(t, ok)
	assert.Contains(t, padding.Prefixes, "px-")
	assert.Empty(t, padding.Tokens)

	_, ok = merged.Group("gap")
	assert.True(t, ok)

	// Base catalog is untouched.
	origPadding, _ := base.Group("padding")
	assert.NotContains(t, origPadding.Prefixes, "px-")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")
	overlay := `groups:
  - name: opacity
    label: Opacity
    category: Appearance
    prefixes: ["opacity-"]
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	catalog, err := LoadFile(path)
	require.NoError(t, err)

	group, ok := catalog.Match("opacity-50")
	require.True(t, ok)
	assert.Equal(t, "opacity", group.Name)

	// Defaults are still present underneath.
	_, ok = catalog.Group("padding")
	assert.True(t, ok)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestEnsureUnit(t *testing.T) {
	tests := []struct{ in, want string }{
		{"16", "16px"},
		{"1.5", "1.5px"},
		{"-4", "-4px"},
		{"1.5rem", "1.5rem"},
		{"16px", "16px"},
		{"auto", "auto"},
		{"50%", "50%"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EnsureUnit(tt.in), "input %q", tt.in)
	}
}

func TestIsZeroValue(t *testing.T) {
	assert.True(t, IsZeroValue("0"))
	assert.True(t, IsZeroValue("0px"))
	assert.True(t, IsZeroValue("0rem"))
	assert.True(t, IsZeroValue(""))
	assert.False(t, IsZeroValue("2px"))
	assert.False(t, IsZeroValue("border-2"))
}
