// Package main is a command-line host for the pattern assistant core.
//
// It stands in for the mobile UI: every command builds a core.Core from the
// environment, calls one provider and prints the result.
//
// Configuration:
//   - Environment variables (API_*, VAULT_*, MEDIA_*, LOG_*)
//
// Usage:
//
//	API_ENDPOINT=https://api.example.com/graphql patternctl login -email me@example.com
//	patternctl chat -m "Give me a granny square"
//	echo "NAME: Beanie" | patternctl extract
package main
