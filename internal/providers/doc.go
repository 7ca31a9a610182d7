// Package providers groups the domain services built on the protocol client.
//
// Each subpackage wraps one family of server operations:
//   - auth: login, registration, token refresh and the current user
//   - assistant: conversational chat with optional field extraction
//   - transcript: video transcript retrieval and pattern extraction
//   - projects: saved project CRUD with image attachments
//
// Providers are stateless apart from their dependencies and are safe for
// concurrent use. Failures surface as *protocol.Error values, wrapped by
// the provider-level sentinels where the caller needs to branch.
//
// Example Usage:
//
//	client, _ := protocol.NewClient(protocol.Options{Endpoint: endpoint})
//	chat := assistant.NewProvider(client, nil, logger)
//	reply, fields, err := chat.ChatAndExtract(ctx, "Write a beanie pattern", "")
package providers
