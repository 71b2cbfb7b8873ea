// Package types defines the property definition and property instance data
// model, standard error values, and configuration for the propkit toolkit.
package types
