package search

import "github.com/Semior001/hnsearch/app/hn"

// lastSearchesDepth is how many folded terms are considered, including the live one.
const lastSearchesDepth = 6

// LastSearches returns recent search terms from the request history, earliest first.
// Adjacent repeats of a term collapse into one, the live term is excluded,
// and at most five terms are returned.
func LastSearches(urls []string) []string {
	var terms []string
	for i, u := range urls {
		term := hn.TermFromURL(u)
		if i > 0 && term == terms[len(terms)-1] {
			continue
		}
		terms = append(terms, term)
	}

	if len(terms) > lastSearchesDepth {
		terms = terms[len(terms)-lastSearchesDepth:]
	}
	if len(terms) == 0 {
		return []string{}
	}

	return terms[:len(terms)-1]
}
