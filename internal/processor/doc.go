// Package processor runs the abbreviation search: it builds the letter sets,
// generates and filters candidates against the dictionary, translates the
// valid words and prints one line per word.
package processor
