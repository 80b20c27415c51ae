// Package git commits the updated profile document to the repository that
// contains it, using go-git so no git binary is required.
package git
