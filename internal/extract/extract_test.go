package extract

import (
	"testing"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_CanonicalHeaders(t *testing.T) {
	fields := Extract("NAME: Granny Square\nNOTATION: ch4, 12 dc\nINSTRUCTIONS: Round 1: sc around")

	assert.Equal(t, Fields{
		FieldName:         "Granny Square",
		FieldNotation:     "ch4, 12 dc",
		FieldInstructions: "Round 1: sc around",
	}, fields)
}

func TestExtract_AliasOnly(t *testing.T) {
	fields := Extract("Pattern Name: Beanie")
	assert.Equal(t, Fields{FieldName: "Beanie"}, fields)
}

func TestExtract_NoHeaders(t *testing.T) {
	assert.Empty(t, Extract("Sure! Crochet is a lovely hobby. Let me know what you'd like to make."))
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("   \n\t"))
}

func TestExtract_Variants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Fields
	}{
		{
			name: "bold headers",
			text: "**NAME:** Amigurumi Cat\n**Difficulty Level:** Intermediate",
			want: Fields{FieldName: "Amigurumi Cat", FieldDifficulty: "Intermediate"},
		},
		{
			name: "bold alias with colon outside",
			text: "**Pattern Name**: Market Bag\n__Materials Needed__: cotton yarn, 5mm hook",
			want: Fields{FieldName: "Market Bag", FieldMaterials: "cotton yarn, 5mm hook"},
		},
		{
			name: "numbered list",
			text: "1. Name: Sunburst Coaster\n2. Notation: mr, 8 sc\n3) Estimated Time: 45 minutes",
			want: Fields{FieldName: "Sunburst Coaster", FieldNotation: "mr, 8 sc", FieldTime: "45 minutes"},
		},
		{
			name: "dash bullets",
			text: "- **Name**: Cowl\n- **Time**: 3 hours",
			want: Fields{FieldName: "Cowl", FieldTime: "3 hours"},
		},
		{
			name: "mixed bullets",
			text: "* Name: Shawl\n+ Materials: lace yarn\n• Difficulty: Advanced",
			want: Fields{FieldName: "Shawl", FieldMaterials: "lace yarn", FieldDifficulty: "Advanced"},
		},
		{
			name: "bullet with number",
			text: "- 1. Notation: ch 10\n- 2. Instructions: turn",
			want: Fields{FieldNotation: "ch 10", FieldInstructions: "turn"},
		},
		{
			name: "markdown heading",
			text: "## Instructions:\nRow 1: ch 20\nRow 2: dc across\n## Supplies: worsted yarn",
			want: Fields{FieldInstructions: "Row 1: ch 20\nRow 2: dc across", FieldMaterials: "worsted yarn"},
		},
		{
			name: "lower case",
			text: "name: Scrunchie\ntime: 20 min",
			want: Fields{FieldName: "Scrunchie", FieldTime: "20 min"},
		},
		{
			name: "single line",
			text: "NAME: Dishcloth NOTATION: ch 25 DIFFICULTY: Beginner",
			want: Fields{FieldName: "Dishcloth", FieldNotation: "ch 25", FieldDifficulty: "Beginner"},
		},
		{
			name: "preamble before first header",
			text: "Here is your pattern!\n\nName: Ear Warmer\nSkill Level: Easy",
			want: Fields{FieldName: "Ear Warmer", FieldDifficulty: "Easy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtract_EmptyContentIsAbsent(t *testing.T) {
	fields := Extract("NAME:\nNOTATION:   \nINSTRUCTIONS: work in rounds")

	_, ok := fields.Get(FieldName)
	assert.False(t, ok)
	_, ok = fields.Get(FieldNotation)
	assert.False(t, ok)
	assert.Equal(t, "work in rounds", fields[FieldInstructions])
}

func TestExtract_FirstAliasWins(t *testing.T) {
	fields := Extract("Name: Casual Name\nNOTATION: sc\nNAME: Formal Name")
	assert.Equal(t, "Casual Name", fields[FieldName])
}

func TestExtract_HeaderInsideWordIgnored(t *testing.T) {
	fields := Extract("NOTATION: surname: stitch pattern")
	assert.Equal(t, Fields{FieldNotation: "surname: stitch pattern"}, fields)
}

func TestExtractor_CustomAliases(t *testing.T) {
	e := New(map[Field][]string{
		FieldName: {"Título"},
		"yarn":    {"Yarn Weight"},
	})

	fields := e.Extract("Título: Gorro\nYarn Weight: DK")
	assert.Equal(t, Fields{FieldName: "Gorro", "yarn": "DK"}, fields)
}

func TestApply_OnlyPresentFields(t *testing.T) {
	form := &types.PatternForm{
		Name:      "Old Name",
		Materials: "4mm hook",
	}

	applied := Apply(form, Extract("Pattern Name: Beanie"))

	assert.Equal(t, []Field{FieldName}, applied)
	assert.Equal(t, "Beanie", form.Name)
	assert.Equal(t, "4mm hook", form.Materials)
}

func TestApply_NoMatchLeavesForm(t *testing.T) {
	form := &types.PatternForm{Name: "Keep", Notation: "ch4"}
	before := *form

	assert.Empty(t, Apply(form, Extract("no headers here")))
	assert.Equal(t, before, *form)
	assert.Nil(t, Apply(nil, Fields{FieldName: "x"}))
}

func TestApply_StripsMarkup(t *testing.T) {
	form := &types.PatternForm{Name: "Keep"}

	Apply(form, Fields{
		FieldName:     "<b>Granny</b> Square &amp; Border",
		FieldNotation: "<script>alert(1)</script>",
	})

	assert.Equal(t, "Granny Square & Border", form.Name)
	assert.Equal(t, "", form.Notation)
}

func TestFromExtraction(t *testing.T) {
	name, notation, blank := "Granny Square", "ch4, 12 dc", "  "
	fields := FromExtraction(types.PatternExtraction{
		Success:         true,
		PatternName:     &name,
		PatternNotation: &notation,
		Materials:       &blank,
	})

	require.Len(t, fields, 2)
	assert.Equal(t, "Granny Square", fields[FieldName])
	assert.Equal(t, "ch4, 12 dc", fields[FieldNotation])

	assert.Empty(t, FromExtraction(types.PatternExtraction{Success: false, PatternName: &name}))
}
