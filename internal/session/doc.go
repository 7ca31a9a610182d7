// Package session holds the in-memory authentication state and keeps it in
// step with the credential vault. All writes go through a single mutex so the
// stored token and the in-memory flag never disagree.
package session
