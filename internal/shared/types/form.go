package types

// PatternForm is the editable pattern state behind the UI form
type PatternForm struct {
	Name         string `json:"name,omitempty"`
	Notation     string `json:"notation,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	Materials    string `json:"materials,omitempty"`
	Time         string `json:"time,omitempty"`
}

// ProjectInput converts the form into create/update input, leaving empty
// fields unset
func (f PatternForm) ProjectInput() ProjectInput {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	return ProjectInput{
		Name:                opt(f.Name),
		PatternNotation:     opt(f.Notation),
		PatternInstructions: opt(f.Instructions),
		DifficultyLevel:     opt(f.Difficulty),
		Materials:           opt(f.Materials),
		EstimatedTime:       opt(f.Time),
	}
}
