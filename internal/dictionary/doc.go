// Package dictionary provides the English word corpus used to decide which
// candidate abbreviations are real words. The corpus is downloaded on first
// use, cached on disk, and loaded once per process.
package dictionary
