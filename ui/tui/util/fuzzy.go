package util

import (
	"sort"
	"strings"
	"unicode"
)

// Match is a scored fuzzy match of one candidate.
type Match struct {
	Index     int    // Position of the candidate in the input slice
	Text      string // The candidate text that matched
	Score     int    // Match quality (higher = better)
	Positions []int  // Matched rune positions, for highlighting
}

// FuzzyFilter ranks items by how well key(item) matches pattern and drops
// the ones that do not match. An empty pattern keeps every item in its
// original order.
//
// Pattern is split on spaces and every term must match (AND logic), in any
// order: "red app" matches "apple, red".
func FuzzyFilter[T any](pattern string, items []T, key func(T) string) []Match {
	if strings.TrimSpace(pattern) == "" {
		matches := make([]Match, len(items))
		for i, item := range items {
			matches[i] = Match{Index: i, Text: key(item)}
		}
		return matches
	}

	terms := strings.Fields(pattern)

	var matches []Match
	for i, item := range items {
		text := key(item)
		score, positions := scoreTerms(terms, text)
		if score > 0 {
			matches = append(matches, Match{
				Index:     i,
				Text:      text,
				Score:     score,
				Positions: positions,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	return matches
}

// scoreTerms requires every term to match; scores add up and positions are
// merged.
func scoreTerms(terms []string, text string) (int, []int) {
	total := 0
	seen := make(map[int]bool)
	var positions []int

	for _, term := range terms {
		score, pos := FuzzyScore(term, text)
		if score == 0 {
			return 0, nil
		}
		total += score
		for _, p := range pos {
			if !seen[p] {
				seen[p] = true
				positions = append(positions, p)
			}
		}
	}

	sort.Ints(positions)
	return total, positions
}

// FuzzyScore scores pattern against text. A score of 0 means no match.
//
// A forward scan finds the last position where the whole pattern can end,
// then a backward scan from there picks the tightest cluster of matches.
func FuzzyScore(pattern, text string) (int, []int) {
	if pattern == "" || text == "" {
		return 0, nil
	}

	textRunes := []rune(text)
	lower := []rune(strings.ToLower(text))
	pat := []rune(strings.ToLower(pattern))
	if len(lower) != len(textRunes) {
		// Case folding changed the rune count; fall back to exact runes.
		lower = textRunes
	}

	p := 0
	end := -1
	for i := 0; i < len(lower) && p < len(pat); i++ {
		if lower[i] == pat[p] {
			end = i
			p++
		}
	}
	if p < len(pat) {
		return 0, nil
	}

	positions := make([]int, len(pat))
	p = len(pat) - 1
	for i := end; i >= 0 && p >= 0; i-- {
		if lower[i] == pat[p] {
			positions[p] = i
			p--
		}
	}

	score := max(0, 50-positions[0]*3)
	for i, pos := range positions {
		if pos == 0 {
			score += 16
		} else {
			prev := textRunes[pos-1]
			switch {
			case prev == ' ' || prev == '/' || prev == '_' || prev == '-' || prev == '.' || prev == ',':
				score += 8
			case unicode.IsLower(prev) && unicode.IsUpper(textRunes[pos]):
				score += 7
			}
		}

		if i > 0 {
			if gap := pos - positions[i-1] - 1; gap == 0 {
				score += 8
			} else {
				score -= 3 + gap
			}
		}
	}

	return max(score, 1), positions
}
