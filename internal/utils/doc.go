// Package utils provides general-purpose helper utilities used across
// different parts of the application: the resty HTTP client wrapper,
// unverified access-token claim parsing and UUID generation.
package utils
