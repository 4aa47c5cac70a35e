package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspile_SimpleElement(t *testing.T) {
	got, err := Transpile(`const X = () => <div className="p-4">Hello</div>;`)
	require.NoError(t, err)
	assert.Equal(t, `const X = () => h("div", { className: "p-4" }, "Hello");`, got)
}

func TestTranspile_ComponentTagStaysIdentifier(t *testing.T) {
	got, err := Transpile(`const X = () => <Badge label="New" />;`)
	require.NoError(t, err)
	assert.Equal(t, `const X = () => h(Badge, { label: "New" });`, got)
}

func TestTranspile_Fragment(t *testing.T) {
	got, err := Transpile(`const X = () => <><span>a</span><span>b</span></>;`)
	require.NoError(t, err)
	assert.Equal(t, `const X = () => h(Fragment, null, h("span", null, "a"), h("span", null, "b"));`, got)
}

func TestTranspile_ExpressionAttributeAndChild(t *testing.T) {
	got, err := Transpile(`const X = () => <div id={key}>{label}</div>;`)
	require.NoError(t, err)
	assert.Equal(t, `const X = () => h("div", { id: (key) }, (label));`, got)
}

func TestTranspile_BareBooleanAttribute(t *testing.T) {
	got, err := Transpile(`const X = () => <input disabled />;`)
	require.NoError(t, err)
	assert.Equal(t, `const X = () => h("input", { disabled: true });`, got)
}

func TestTranspile_NestedCallbackMarkup(t *testing.T) {
	got, err := Transpile(`const X = () => <ul>{items.map(i => <li key={i}>{i}</li>)}</ul>;`)
	require.NoError(t, err)
	assert.Contains(t, got, `h("ul", null, `)
	assert.Contains(t, got, `items.map(i => h("li", { key: (i) }, (i)))`)
}

func TestTranspile_TextWhitespaceCollapses(t *testing.T) {
	got, err := Transpile("const X = () => <p>\n  two   words\n</p>;")
	require.NoError(t, err)
	assert.Contains(t, got, `h("p", null, "two words")`)
}

func TestTranspile_TextKeepsSpaceBeforeExpression(t *testing.T) {
	got, err := Transpile(`const X = () => <span>Hello {name}</span>;`)
	require.NoError(t, err)
	assert.Equal(t, `const X = () => h("span", null, "Hello ", (name));`, got)
}

func TestTranspile_SpaceBetweenExpressionsSurvives(t *testing.T) {
	got, err := Transpile(`const X = () => <p>{first} {last}</p>;`)
	require.NoError(t, err)
	assert.Equal(t, `const X = () => h("p", null, (first), " ", (last));`, got)
}

func TestTranspile_NewlineEdgesStillDropped(t *testing.T) {
	got, err := Transpile("const X = () => <p>\n  lead {x} trail\n</p>;")
	require.NoError(t, err)
	assert.Contains(t, got, `h("p", null, "lead ", (x), " trail")`)
}

func TestTranspile_ComparisonsUntouched(t *testing.T) {
	tests := []string{
		`if (a < b) { c = 1; }`,
		`const less = x<y;`,
		`for (var i = 0; i < n; i++) {}`,
	}
	for _, src := range tests {
		got, err := Transpile(src)
		require.NoError(t, err, src)
		assert.Equal(t, src, got, src)
	}
}

func TestTranspile_StringsAndCommentsUntouched(t *testing.T) {
	src := "const s = '<div>not markup</div>';\n// <span>also not</span>\nconst t = `<p>${x}</p>`;\n"
	got, err := Transpile(src)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestTranspile_ReturnStatement(t *testing.T) {
	got, err := Transpile("function X() {\n  return <div>ok</div>;\n}")
	require.NoError(t, err)
	assert.Contains(t, got, `return h("div", null, "ok");`)
}

func TestTranspile_MalformedMarkup(t *testing.T) {
	_, err := Transpile(`const X = () => <div><span></div>;`)
	assert.Error(t, err)
}

func TestTranspile_UnterminatedString(t *testing.T) {
	_, err := Transpile(`const s = "oops`)
	assert.Error(t, err)
}
