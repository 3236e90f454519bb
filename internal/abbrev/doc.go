// Package abbrev builds per-position letter sets from a list of words,
// expands them into every candidate abbreviation, and formats the group
// name that spells a chosen abbreviation back into the original words.
package abbrev
