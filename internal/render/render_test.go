package render

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/gddocs/internal/model"
	"github.com/phobologic/gddocs/internal/reference"
)

func newRenderer(t *testing.T, opts Options, logger *slog.Logger, classes ...reference.Class) *Renderer {
	t.Helper()
	r, err := New(model.NewCollection(classes), opts, logger)
	require.NoError(t, err)
	return r
}

func renderClass(t *testing.T, r *Renderer, name string) string {
	t.Helper()
	cls, ok := r.classes.Lookup(name)
	require.True(t, ok, "class %s", name)
	doc, err := r.Class(cls)
	require.NoError(t, err)
	return doc.String()
}

func player() reference.Class {
	return reference.Class{
		Name:         "Player",
		ExtendsClass: []string{"Actor"},
		Description:  "The player.\ncategory: Nodes",
		Methods: []reference.Function{
			{
				Name:        "move",
				Signature:   "func move(dir: Vector2) -> null",
				ReturnType:  "null",
				Description: "Moves at [.speed] toward [Enemy].",
			},
			{
				Name:        "attack",
				Signature:   "func attack() -> void",
				ReturnType:  "void",
				Description: "tags: virtual",
			},
		},
		StaticFunctions: []reference.Function{
			{Name: "create", Signature: "static func create() -> Player", ReturnType: "Player"},
		},
		Members: []reference.Member{
			{
				Name:        "speed",
				Signature:   "var speed: float = 1.0",
				DataType:    "float",
				Setter:      "set_speed",
				Getter:      "_get_speed",
				Description: "Units per second.",
			},
		},
		Signals: []reference.Signal{
			{Name: "died", Signature: "died(cause)", Description: "Emitted once."},
			{Name: "spawned", Signature: "spawned()"},
		},
		Constants: []reference.Constant{
			{Name: "MAX_LIVES", Signature: "const MAX_LIVES = 3", DataType: "int", Value: "3"},
			{
				Name:      "State",
				Signature: "const State = {IDLE = 0}",
				DataType:  "Dictionary",
				Values:    map[string]int{"IDLE": 0},
			},
		},
	}
}

func enemy() reference.Class {
	return reference.Class{
		Name:         "Enemy",
		ExtendsClass: []string{"Actor"},
		Methods: []reference.Function{
			{Name: "take_damage", Signature: "func take_damage(amount: int) -> void", ReturnType: "void"},
		},
	}
}

func TestClassScenario(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, reference.Class{
		Name:         "Foo",
		ExtendsClass: []string{"Node"},
		Description:  "A foo.\ntags: experimental\ncategory: Utilities",
	})

	want := strings.Join([]string{
		"<!-- " + generatorComment + " -->",
		"",
		"# Foo",
		"",
		"**Extends:** [Node](../Node)",
		"",
		"## Description",
		"",
		"A foo.",
		"",
	}, "\n")
	assert.Equal(t, want, renderClass(t, r, "Foo"))
}

func TestClassCollapsesBlankLinesInDescription(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, reference.Class{
		Name:        "Foo",
		Description: "First paragraph.\n\ntags: experimental\n\nSecond paragraph.",
	})

	out := renderClass(t, r, "Foo")
	assert.NotContains(t, out, "\n\n\n")
	assert.True(t, strings.HasSuffix(out, "## Description\n\nFirst paragraph.\n\nSecond paragraph.\n"), out)
}

func TestClassSectionOrder(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, player(), enemy(), reference.Class{Name: "Actor"})
	out := renderClass(t, r, "Player")

	headings := []string{
		"# Player",
		"**Extends:** [Actor](../Actor)",
		"## Description",
		"## Properties",
		"## Methods",
		"## Signals",
		"## Enumerations",
		"## Constants",
		"## Property Descriptions",
		"## Method Descriptions",
	}
	last := -1
	for _, h := range headings {
		idx := strings.Index(out, "\n"+h+"\n")
		require.NotEqual(t, -1, idx, "missing %q in:\n%s", h, out)
		assert.Greater(t, idx, last, "%q out of order", h)
		last = idx
	}
}

func TestClassTablesAndDetails(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, player(), enemy())
	out := renderClass(t, r, "Player")

	for _, want := range []string{
		"| Type | Name |\n| --- | --- |\n| float | speed |",
		"| void | func move(dir: Vector2) -> void |",
		"| Type | Name | Value |\n| --- | --- | --- |\n| int | MAX_LIVES | 3 |",
		"- died(cause): Emitted once.\n- spawned()",
		"### State\n\n```gdscript\nconst State = {IDLE = 0}\n```",
		"### speed\n\n```gdscript\nvar speed: float = 1.0\n```\n\n- **Setter**: `set_speed`\n\nUnits per second.",
		"### create <small>(static)</small>",
		"### attack <small>(virtual)</small>",
		"Moves at [speed](#speed) toward [Enemy](../Enemy).",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "_get_speed")
	assert.NotContains(t, out, "-> null")

	// Static functions come first in the detailed descriptions.
	assert.Less(t, strings.Index(out, "### create"), strings.Index(out, "### move"))
}

func TestClassOmitsEmptySections(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, reference.Class{Name: "Bare"})
	out := renderClass(t, r, "Bare")

	assert.Equal(t, "<!-- "+generatorComment+" -->\n\n# Bare\n", out)
}

func TestClassAbstractTitle(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, reference.Class{Name: "Shape", Description: "tags: abstract"})
	assert.Contains(t, renderClass(t, r, "Shape"), "# Shape <small>(abstract)</small>\n")
}

func TestClassEscapesHeadings(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, enemy())
	assert.Contains(t, renderClass(t, r, "Enemy"), "### take\\_damage\n")
}

func TestClassExtendsChain(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil,
		reference.Class{Name: "Knight", ExtendsClass: []string{"Soldier"}},
		reference.Class{Name: "Soldier", ExtendsClass: []string{"Actor"}},
		reference.Class{Name: "Actor", ExtendsClass: []string{"Node2D"}},
	)
	assert.Contains(t, renderClass(t, r, "Knight"),
		"**Extends:** [Soldier](../Soldier) < [Actor](../Actor) < [Node2D](../Node2D)\n")
}

func TestClassSubClasses(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, reference.Class{
		Name: "Weapon",
		SubClasses: []reference.Class{{
			Name:        "Stats",
			Description: "Weapon statistics.",
			Members: []reference.Member{
				{Name: "damage", Signature: "var damage: int", DataType: "int"},
			},
		}},
	})
	out := renderClass(t, r, "Weapon")

	assert.Contains(t, out, "## Sub\\-classes\n\n### Stats\n\nWeapon statistics.\n\n#### Property Descriptions\n\n##### damage\n")
}

func TestClassIsIdempotent(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, player(), enemy())
	cls, _ := r.classes.Lookup("Player")

	first, err := r.Class(cls)
	require.NoError(t, err)
	second, err := r.Class(cls)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, first.Finalize())
}

func TestReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"class", "See [Enemy].", "See [Enemy](../Enemy)."},
		{"class member", "Calls [Enemy.take_damage].", "Calls [Enemy.take_damage](../Enemy/#take-damage)."},
		{"own member with dot", "Uses [.speed].", "Uses [speed](#speed)."},
		{"own member", "Uses [speed].", "Uses [speed](#speed)."},
		{"unknown class", "See [Missing].", "See [Missing]."},
		{"unknown member", "See [Enemy.heal].", "See [Enemy.heal]."},
		{"existing link", "See [Enemy](https://example.com).", "See [Enemy](https://example.com)."},
		{"code span", "Write `[Enemy]` literally.", "Write `[Enemy]` literally."},
		{"fenced code", "```\n[Enemy]\n```", "```\n[Enemy]\n```"},
		{"empty brackets", "Array []", "Array []"},
	}

	r := newRenderer(t, Options{}, nil, player(), enemy())
	cls, _ := r.classes.Lookup("Player")
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.resolveReferences(cls, tt.in))
		})
	}
}

func TestReferencesLogUnresolved(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := newRenderer(t, Options{}, logger, player())
	cls, _ := r.classes.Lookup("Player")

	assert.Equal(t, "See [Ghost].", r.resolveReferences(cls, "See [Ghost]."))
	assert.Contains(t, buf.String(), "unresolved reference")
	assert.Contains(t, buf.String(), "[Ghost]")
}

func TestHugoTOML(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{Format: Hugo, Author: "ada", Date: "2024-01-02"}, nil, player())
	out := renderClass(t, r, "Player")
	lines := strings.Split(out, "\n")

	assert.Equal(t, "+++", lines[0])
	assert.Contains(t, out, `title = "Player"`)
	assert.Contains(t, out, `description = "The player."`)
	assert.Contains(t, out, `author = "ada"`)
	assert.Contains(t, out, `date = "2024-01-02"`)
	assert.Contains(t, out, `"Nodes"`)
	assert.Contains(t, out, "{{< highlight gdscript >}}\nvar speed: float = 1.0\n{{< /highlight >}}")
	assert.NotContains(t, out, "# Player")
	assert.NotContains(t, out, "```")
}

func TestHugoYAML(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{Format: Hugo, FrontMatter: YAML}, nil, player())
	out := renderClass(t, r, "Player")
	lines := strings.Split(out, "\n")

	assert.Equal(t, "---", lines[0])
	assert.Equal(t, "title: Player", lines[1])
	assert.Contains(t, out, "description: The player.")
	assert.Contains(t, out, "- Nodes")
	assert.NotContains(t, out, "author:")
}

func TestNewRejectsUnknownFormats(t *testing.T) {
	t.Parallel()

	col := model.NewCollection(nil)
	_, err := New(col, Options{Format: "html"}, nil)
	assert.Error(t, err)
	_, err = New(col, Options{FrontMatter: "json"}, nil)
	assert.Error(t, err)
}

func TestShortcode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"{{< note >}}", "hi", "{{< /note >}}"}, Shortcode("note", "hi"))
	assert.Equal(t,
		[]string{"{{< highlight gdscript >}}", "x", "{{< /highlight >}}"},
		Shortcode("highlight", "x", "gdscript"))
}

func indexClasses() []reference.Class {
	return []reference.Class{
		{Name: "Alpha"},
		{Name: "Bravo", Description: "category: Nodes"},
		{Name: "Charlie"},
		{Name: "Delta", Description: "category: Nodes"},
	}
}

func TestTableOfContents(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, indexClasses()...)
	assert.Equal(t, []string{
		"- [Alpha](Alpha)",
		"- [Charlie](Charlie)",
		"- **Nodes**",
		"  - [Bravo](Bravo)",
		"  - [Delta](Delta)",
	}, r.TableOfContents())
}

func TestIndex(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, indexClasses()...)
	doc, err := r.Index(model.ProjectInfo{Name: "Demo", Description: "A demo.", Version: "1.0.0"})
	require.NoError(t, err)

	assert.Equal(t, "index.md", doc.Filename())
	assert.Equal(t, strings.Join([]string{
		"<!-- " + generatorComment + " -->",
		"",
		"# Demo (<small>1.0.0</small>)",
		"",
		"A demo.",
		"",
		"## Contents",
		"",
		"- [Alpha](Alpha)",
		"- [Charlie](Charlie)",
		"- **Nodes**",
		"  - [Bravo](Bravo)",
		"  - [Delta](Delta)",
		"",
	}, "\n"), doc.String())
}

func TestIndexWithoutVersion(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, indexClasses()...)
	doc, err := r.Index(model.ProjectInfo{Name: "Demo"})
	require.NoError(t, err)
	assert.Contains(t, doc.String(), "\n# Demo\n")
}

func TestDocuments(t *testing.T) {
	t.Parallel()

	r := newRenderer(t, Options{}, nil, indexClasses()...)

	docs, err := r.Documents(&model.ProjectInfo{Name: "Demo"}, true)
	require.NoError(t, err)
	var names []string
	for _, d := range docs {
		names = append(names, d.Filename())
	}
	assert.Equal(t, []string{"index.md", "Alpha.md", "Bravo.md", "Charlie.md", "Delta.md"}, names)

	docs, err = r.Documents(nil, false)
	require.NoError(t, err)
	assert.Len(t, docs, 4)
}
