// Package model contains domain models passed between layers.
package model

// RawObservation is one row of the raw nickname corpus: the estimated
// probability that RawName is referred to by NameGroup.
type RawObservation struct {
	RawName   string
	NameGroup string
	CondProb  float64
}

// InputRecord is one source row with the reserved name/date fields resolved
// and any remaining columns carried through untouched.
type InputRecord struct {
	Seq         int64 // position in the input stream, used to restore output order
	Row         int   // 1-based source row number (header excluded), for error messages
	Given       string
	Family      string
	Month       string
	Year        string
	Passthrough []string // extra column values, in header order
}

// NormalizedRecord is the fixed-schema output row. Fields never contain
// spaces; missing values are empty strings.
type NormalizedRecord struct {
	Seq int64

	Given              string
	Family             string
	Month              string
	Year               string
	Complete           string
	GivenFirstWord     string
	GivenMiddleInitial string
	GivenAllButFirst   string
	GivenNickname      string
	GivenAllButFinal   string
	GivenFinalInitial  string
	GivenFinalWord     string

	Passthrough []string
}

// OutputHeader is the fixed 12-column output schema, in emission order.
// Passthrough columns are appended after these.
var OutputHeader = []string{
	"given",
	"family",
	"month",
	"year",
	"complete",
	"given_first_word",
	"given_middle_initial",
	"given_all_but_first",
	"given_nickname",
	"given_all_but_final",
	"given_final_initial",
	"given_final_word",
}

// Fields returns the fixed-schema values in OutputHeader order.
func (r *NormalizedRecord) Fields() []string {
	return []string{
		r.Given,
		r.Family,
		r.Month,
		r.Year,
		r.Complete,
		r.GivenFirstWord,
		r.GivenMiddleInitial,
		r.GivenAllButFirst,
		r.GivenNickname,
		r.GivenAllButFinal,
		r.GivenFinalInitial,
		r.GivenFinalWord,
	}
}
