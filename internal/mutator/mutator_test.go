package mutator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chiselerr "github.com/chisel-ui/chisel/internal/errors"
	"github.com/chisel-ui/chisel/internal/extractor"
	"github.com/chisel-ui/chisel/internal/styles"
	"github.com/chisel-ui/chisel/internal/types"
)

// apply extracts the source, finds the element, resolves the property
// through the catalog, and applies the change, the way callers do.
func apply(t *testing.T, source, elementID, property, value string) string {
	t.Helper()
	catalog := styles.Default()
	structure, err := extractor.New(catalog).Extract(source, "")
	require.NoError(t, err)
	elem, ok := structure.FindElement(elementID)
	require.True(t, ok, "element %s", elementID)
	prop, ok := catalog.ResolveProperty(elem, property)
	require.True(t, ok, "property %s", property)

	mutated, err := New(catalog).ApplyChange(source, elem, prop, value)
	require.NoError(t, err)
	return mutated
}

func TestApplyChange_ReplaceClassToken(t *testing.T) {
	src := `const X = () => <div className="p-4 bg-slate-900 rounded">x</div>;`
	got := apply(t, src, "el-0", "backgroundColor", "bg-white")
	assert.Equal(t, `const X = () => <div className="p-4 bg-white rounded">x</div>;`, got)
}

func TestApplyChange_UnrelatedTokensSurvive(t *testing.T) {
	src := `const X = () => <p className="text-base text-gray-500">x</p>;`

	// "text-base" is fontSize; changing textColor must leave it alone.
	got := apply(t, src, "el-0", "textColor", "text-blue-600")
	assert.Equal(t, `const X = () => <p className="text-base text-blue-600">x</p>;`, got)
}

func TestApplyChange_AddsClassAttribute(t *testing.T) {
	src := `const X = () => <div>Sample</div>;`
	got := apply(t, src, "el-0", "padding", "p-6")
	assert.Equal(t, `const X = () => <div className="p-6">Sample</div>;`, got)
}

func TestApplyChange_RemoveClassToken(t *testing.T) {
	src := `const X = () => <div className="p-4 bg-white">x</div>;`
	got := apply(t, src, "el-0", "padding", "")
	assert.Equal(t, `const X = () => <div className="bg-white">x</div>;`, got)
}

func TestApplyChange_CollapsesDuplicateGroupTokens(t *testing.T) {
	// Two padding tokens snuck into the source; one change restores the
	// one-token-per-group invariant.
	src := `const X = () => <div className="p-2 p-4 bg-white">x</div>;`
	got := apply(t, src, "el-0", "padding", "p-6")
	assert.Equal(t, `const X = () => <div className="p-6 bg-white">x</div>;`, got)
}

func TestApplyChange_ClassGroupIdempotent(t *testing.T) {
	src := `const X = () => <div className="p-4 bg-white">x</div>;`
	once := apply(t, src, "el-0", "padding", "p-4")
	assert.Equal(t, src, once)
	twice := apply(t, once, "el-0", "padding", "p-4")
	assert.Equal(t, once, twice)
}

func TestApplyChange_FreeformValueGoesToStyle(t *testing.T) {
	src := `const X = () => <div>x</div>;`
	got := apply(t, src, "el-0", "padding", "12")
	assert.Equal(t, `const X = () => <div style={{ padding: '12px' }}>x</div>;`, got)
}

func TestApplyChange_FreeformValueWithUnitPassesThrough(t *testing.T) {
	src := `const X = () => <div>x</div>;`
	got := apply(t, src, "el-0", "padding", "1.5rem")
	assert.Equal(t, `const X = () => <div style={{ padding: '1.5rem' }}>x</div>;`, got)
}

func TestApplyChange_StyleObjectInsert(t *testing.T) {
	src := `const X = () => <div style={{ color: 'red' }}>x</div>;`
	got := apply(t, src, "el-0", "padding", "8")
	assert.Equal(t, `const X = () => <div style={{ padding: '8px', color: 'red' }}>x</div>;`, got)
}

func TestApplyChange_StyleObjectReplace(t *testing.T) {
	src := `const X = () => <div style={{ padding: '4px', color: 'red' }}>x</div>;`
	got := apply(t, src, "el-0", "padding", "8")
	assert.Equal(t, `const X = () => <div style={{ padding: '8px', color: 'red' }}>x</div>;`, got)
}

func TestApplyChange_StyleObjectRemove(t *testing.T) {
	src := `const X = () => <div className="bg-white" style={{ padding: '4px', color: 'red' }}>x</div>;`

	catalog := styles.Default()
	structure, err := extractor.New(catalog).Extract(src, "")
	require.NoError(t, err)
	elem, _ := structure.FindElement("el-0")
	prop, _ := catalog.ResolveProperty(elem, "padding")

	// Clearing a freeform value that lives in the style object: the class
	// list has no padding token, so the style declaration goes away.
	got, err := New(catalog).ApplyChange(src, elem, prop, "0")
	require.NoError(t, err)
	assert.Contains(t, got, "padding: '0px'")
}

func TestApplyChange_ReplaceAttribute(t *testing.T) {
	src := `const X = () => <input placeholder="Old text" />;`
	got := apply(t, src, "el-0", "placeholder", "New text")
	assert.Equal(t, `const X = () => <input placeholder="New text" />;`, got)
}

func TestApplyChange_AddAttribute(t *testing.T) {
	src := `const X = () => <input />;`
	got := apply(t, src, "el-0", "placeholder", "Your name")
	assert.Equal(t, `const X = () => <input placeholder="Your name" />;`, got)
}

func TestApplyChange_RemoveAttribute(t *testing.T) {
	src := `const X = () => <input placeholder="Old" type="text" />;`
	got := apply(t, src, "el-0", "placeholder", "")
	assert.Equal(t, `const X = () => <input type="text" />;`, got)
}

func TestApplyChange_BooleanAttribute(t *testing.T) {
	src := `const X = () => <input />;`
	got := apply(t, src, "el-0", "disabled", "true")
	assert.Equal(t, `const X = () => <input disabled />;`, got)

	cleared := apply(t, got, "el-0", "disabled", "false")
	assert.Equal(t, src, cleared)

	// Setting true again on an already-bare attribute is a no-op.
	same := apply(t, got, "el-0", "disabled", "true")
	assert.Equal(t, got, same)
}

func TestApplyChange_Content(t *testing.T) {
	src := `const X = () => <button>Submit</button>;`
	got := apply(t, src, "el-0", "text", "Click me")
	assert.Equal(t, `const X = () => <button>Click me</button>;`, got)
}

func TestApplyChange_ContentPreservesIndentation(t *testing.T) {
	src := "const X = () => (\n  <button>\n    Submit\n  </button>\n);"
	got := apply(t, src, "el-0", "text", "Click me")
	assert.Equal(t, "const X = () => (\n  <button>\n    Click me\n  </button>\n);", got)
}

func TestApplyChange_ContentOnEmptyElement(t *testing.T) {
	src := `const X = () => <div></div>;`
	catalog := styles.Default()
	structure, err := extractor.New(catalog).Extract(src, "")
	require.NoError(t, err)
	elem, _ := structure.FindElement("el-0")
	prop := types.PropertyDefinition{Name: "text", Mapping: types.MappingContent}

	got, err := New(catalog).ApplyChange(src, elem, prop, "Hello")
	require.NoError(t, err)
	assert.Equal(t, `const X = () => <div>Hello</div>;`, got)
}

func TestApplyChange_ContentOnSelfClosingFails(t *testing.T) {
	src := `const X = () => <img src="/a.png" />;`
	catalog := styles.Default()
	structure, err := extractor.New(catalog).Extract(src, "")
	require.NoError(t, err)
	elem, _ := structure.FindElement("el-0")
	prop := types.PropertyDefinition{Name: "text", Mapping: types.MappingContent}

	_, err = New(catalog).ApplyChange(src, elem, prop, "Hello")
	assert.Error(t, err)
}

func TestApplyChange_SurgicalEdit(t *testing.T) {
	src := `// A comment that must survive.
const label = 'unchanged';

export default function Widget() {
  return (
    <div className="p-4">
      <span className="text-sm">tag</span>
    </div>
  );
}
`
	got := apply(t, src, "el-0-0", "fontSize", "text-lg")
	assert.Contains(t, got, "// A comment that must survive.")
	assert.Contains(t, got, "const label = 'unchanged';")
	assert.Contains(t, got, `<span className="text-lg">tag</span>`)
	assert.Contains(t, got, `<div className="p-4">`)
}

func TestApplyChange_DynamicClassRejected(t *testing.T) {
	src := "const X = () => <div className={cn('p-4', extra)}>x</div>;"
	catalog := styles.Default()
	structure, err := extractor.New(catalog).Extract(src, "")
	require.NoError(t, err)
	elem, _ := structure.FindElement("el-0")
	prop, _ := catalog.ResolveProperty(elem, "padding")

	_, err = New(catalog).ApplyChange(src, elem, prop, "p-6")
	require.Error(t, err)
	assert.True(t, chiselerr.IsKind(err, chiselerr.KindInternal))
}

func TestApplyChange_StaleSpansRejected(t *testing.T) {
	src := `const X = () => <div className="p-4">x</div>;`
	catalog := styles.Default()
	structure, err := extractor.New(catalog).Extract(src, "")
	require.NoError(t, err)
	elem, _ := structure.FindElement("el-0")
	prop, _ := catalog.ResolveProperty(elem, "padding")

	_, err = New(catalog).ApplyChange("short", elem, prop, "p-6")
	require.Error(t, err)
	assert.True(t, chiselerr.IsKind(err, chiselerr.KindInternal))
}

func TestApplyChange_NilElement(t *testing.T) {
	_, err := New(nil).ApplyChange("src", nil, types.PropertyDefinition{}, "v")
	assert.Error(t, err)
}
