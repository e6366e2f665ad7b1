// Package decompose derives the word-level parts of a normalized given name.
//
// The given name is the concatenation of first and middle names, so the
// decomposition exposes both readings: first word vs. everything after it
// (the middle names), and final word vs. everything before it.
package decompose

import "strings"

// Decomposition holds the word parts of a given name. Multi-word parts are
// concatenated with no separator. All fields are empty when the given name
// has fewer than two words, except FirstWord which is set whenever at least
// one word exists.
type Decomposition struct {
	FirstWord     string
	FinalWord     string
	AllButFirst   string
	AllButFinal   string
	MiddleInitial string
	FinalInitial  string
}

// Decompose splits a normalized given name (lowercase letters and single
// spaces) into its parts. It is a pure function; an empty given name yields
// the zero value.
func Decompose(given string) Decomposition {
	words := strings.Fields(given)
	if len(words) == 0 {
		return Decomposition{}
	}

	d := Decomposition{FirstWord: words[0]}
	if len(words) == 1 {
		return d
	}

	d.FinalWord = words[len(words)-1]
	d.AllButFirst = strings.Join(words[1:], "")
	d.AllButFinal = strings.Join(words[:len(words)-1], "")
	d.MiddleInitial = d.AllButFirst[:1]
	d.FinalInitial = d.FinalWord[:1]
	return d
}
