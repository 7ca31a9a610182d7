// Package types provides the domain records exchanged with the pattern API.
//
// Field names and JSON tags follow the API's camelCase wire names so the
// protocol client can decode payloads straight into these structs.
//
// Auth:
//   - User, AuthPayload
//
// Assistant:
//   - ChatReply, TranscriptResult, PatternExtraction
//
// Projects:
//   - Project, ProjectInput
//
// Form state:
//   - PatternForm: the structured pattern fields the UI edits
package types
