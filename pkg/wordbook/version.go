// Package wordbook holds build metadata for the wordbook tool.
package wordbook

// Version is the release version of the wordbook tool.
const Version = "0.1.0"
