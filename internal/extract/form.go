package extract

import (
	"html"
	"strings"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/types"
	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Clean strips markup from captured text and decodes entities
func Clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Apply writes the present fields onto form and returns which ones changed.
// Fields that are missing, or empty after cleaning, leave the form as is.
func Apply(form *types.PatternForm, fields Fields) []Field {
	if form == nil {
		return nil
	}

	var applied []Field
	for _, f := range Order {
		raw, ok := fields[f]
		if !ok {
			continue
		}
		value := Clean(raw)
		if value == "" {
			continue
		}
		if target := slot(form, f); target != nil {
			*target = value
			applied = append(applied, f)
		}
	}
	return applied
}

func slot(form *types.PatternForm, f Field) *string {
	switch f {
	case FieldName:
		return &form.Name
	case FieldNotation:
		return &form.Notation
	case FieldInstructions:
		return &form.Instructions
	case FieldDifficulty:
		return &form.Difficulty
	case FieldMaterials:
		return &form.Materials
	case FieldTime:
		return &form.Time
	}
	return nil
}

// FromExtraction maps a server-side transcript extraction onto Fields so it
// can be applied the same way as parsed chat text
func FromExtraction(p types.PatternExtraction) Fields {
	fields := make(Fields)
	set := func(f Field, v *string) {
		if v == nil {
			return
		}
		if s := strings.TrimSpace(*v); s != "" {
			fields[f] = s
		}
	}
	if !p.Success {
		return fields
	}
	set(FieldName, p.PatternName)
	set(FieldNotation, p.PatternNotation)
	set(FieldInstructions, p.PatternInstructions)
	set(FieldDifficulty, p.DifficultyLevel)
	set(FieldMaterials, p.Materials)
	set(FieldTime, p.EstimatedTime)
	return fields
}
