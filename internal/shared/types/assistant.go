package types

// ChatReply is the assistant's answer to one chat message
type ChatReply struct {
	Message    string  `json:"message"`
	DiagramSvg *string `json:"diagramSvg,omitempty"`
	DiagramPng *string `json:"diagramPng,omitempty"`
	HasPattern bool    `json:"hasPattern"`
}

// TranscriptResult is the outcome of fetching a video transcript.
// Success false carries the server's reason in Error.
type TranscriptResult struct {
	Success      bool    `json:"success"`
	VideoID      *string `json:"videoId,omitempty"`
	Transcript   *string `json:"transcript,omitempty"`
	WordCount    *int    `json:"wordCount,omitempty"`
	Language     *string `json:"language,omitempty"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	Error        *string `json:"error,omitempty"`
}

// PatternExtraction is a pattern the server pulled out of a transcript
type PatternExtraction struct {
	Success             bool    `json:"success"`
	PatternName         *string `json:"patternName,omitempty"`
	PatternNotation     *string `json:"patternNotation,omitempty"`
	PatternInstructions *string `json:"patternInstructions,omitempty"`
	DifficultyLevel     *string `json:"difficultyLevel,omitempty"`
	Materials           *string `json:"materials,omitempty"`
	EstimatedTime       *string `json:"estimatedTime,omitempty"`
	Error               *string `json:"error,omitempty"`
}
