package textsplitter

import "strings"

// noPartition marks a table entry whose token suffix cannot be partitioned.
const noPartition = -1

// partition groups tokens into chunks whose rune length lies in
// [params.MinChunkLen, params.MaxChunkLen]. With allowShortFinal the last
// chunk may be shorter than the minimum. A chunk that holds a category term
// must end with it. Longer leading chunks win when several partitions exist.
//
// The table is filled right to left: next[i] is the exclusive end of the
// chunk that starts at token i in the preferred partition of tokens[i:].
func partition(tokens []Token, params chunkingParameters, allowShortFinal bool) ([]string, bool) {
	n := len(tokens)
	if n == 0 {
		return nil, false
	}

	next := make([]int, n+1)
	next[n] = n

	for start := n - 1; start >= 0; start-- {
		next[start] = noPartition

		ends := candidateEnds(tokens, start, params, allowShortFinal)
		// ends grow with chunk length, so walk them backwards.
		for i := len(ends) - 1; i >= 0; i-- {
			end := ends[i]
			if next[end] != noPartition {
				next[start] = end
				break
			}
		}
	}

	if next[0] == noPartition {
		return nil, false
	}

	chunks := make([]string, 0, n)
	for start := 0; start < n; start = next[start] {
		var sb strings.Builder
		for _, t := range tokens[start:next[start]] {
			sb.WriteString(t.Text)
		}
		chunks = append(chunks, sb.String())
	}
	return chunks, true
}

// candidateEnds lists, in increasing order, the exclusive end indices of every
// chunk starting at start that satisfies the length and category rules.
func candidateEnds(tokens []Token, start int, params chunkingParameters, allowShortFinal bool) []int {
	var ends []int
	length := 0

	for end := start; end < len(tokens); end++ {
		length += tokens[end].Len
		if length > params.MaxChunkLen {
			break
		}

		isFinal := end == len(tokens)-1
		tooShort := length < params.MinChunkLen && (!isFinal || !allowShortFinal)
		if !tooShort {
			ends = append(ends, end+1)
		}

		// A category term may only close a chunk; any longer chunk would
		// carry it in the middle.
		if tokens[end].Category {
			break
		}
	}

	return ends
}
