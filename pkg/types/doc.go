// Package types defines the Vocabulary entity, the Optional sum type, the
// DataSource and LocalStore contracts shared by every backend, the local
// store Config, and the standard errors for the wordbook storage system.
package types
