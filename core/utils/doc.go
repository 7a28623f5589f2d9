// Package utils provides conversion helpers for values submitted through
// forms and path parameters: ids, prices and dates. Every helper reports
// malformed input as an error instead of substituting a zero value.
package utils
