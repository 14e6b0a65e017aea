// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The environment is read through an [Environment] snapshot so the same
// mapping can be shared with the backend resolver. The main entry points are
// [Load] and [GetStructuredConfig].
package config
