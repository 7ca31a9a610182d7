package types

// Project is a saved pattern project
type Project struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         *string    `json:"description,omitempty"`
	PatternNotation     *string    `json:"patternNotation,omitempty"`
	PatternInstructions *string    `json:"patternInstructions,omitempty"`
	DifficultyLevel     *string    `json:"difficultyLevel,omitempty"`
	Materials           *string    `json:"materials,omitempty"`
	EstimatedTime       *string    `json:"estimatedTime,omitempty"`
	ImageData           *string    `json:"imageData,omitempty"` // JSON array of base64 images
	IsFavorite          bool       `json:"isFavorite"`
	CreatedAt           *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt           *Timestamp `json:"updatedAt,omitempty"`
}

// ProjectInput carries the fields of a create or update. Nil fields are
// sent as null on create and left unchanged on update.
type ProjectInput struct {
	Name                *string
	Description         *string
	PatternNotation     *string
	PatternInstructions *string
	DifficultyLevel     *string
	Materials           *string
	EstimatedTime       *string
	ImageData           *string
	IsFavorite          *bool
}
