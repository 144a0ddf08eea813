// Package qgram implements an in-memory q-gram index over city records with
// fuzzy prefix search ranked by prefix edit distance.
package qgram

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// DefaultQ is the q-gram length used by the service.
const DefaultQ = 3

const padRune = '$'

// Match is a record that satisfied a prefix query.
type Match struct {
	ID    int     // 1-based record id
	Score float64 // lower is better
}

// Index is an inverted index from q-grams to record ids.
// Ids are 1-based and assigned in insertion order.
type Index struct {
	q             int
	invertedLists map[string][]int
	records       []string
	originals     []string
	names         []string
	nameSet       map[string]struct{}
	digest        *xxhash.Digest
}

// New creates an empty index. Values of q below 1 are treated as 1.
func New(q int) *Index {
	if q < 1 {
		q = 1
	}
	digest := xxhash.New()
	fmt.Fprintf(digest, "q=%d\n", q)
	return &Index{
		q:             q,
		invertedLists: make(map[string][]int),
		nameSet:       make(map[string]struct{}),
		digest:        digest,
	}
}

// Q returns the q-gram length of the index.
func (idx *Index) Q() int {
	return idx.q
}

// Len returns the number of records in the index.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Add indexes one record line. The display name is the first tab-separated
// column; the searchable record is the whole line, normalized.
func (idx *Index) Add(line string) int {
	line = strings.TrimRight(line, "\r\n")
	name, _, _ := strings.Cut(line, "\t")

	id := len(idx.records) + 1
	record := Normalize(line)

	idx.names = append(idx.names, name)
	idx.nameSet[name] = struct{}{}
	idx.digest.WriteString(line)
	idx.digest.WriteString("\n")
	idx.originals = append(idx.originals, line)
	idx.records = append(idx.records, record)

	for _, gram := range idx.Qgrams(record) {
		idx.invertedLists[gram] = append(idx.invertedLists[gram], id)
	}
	return id
}

// Load reads one record per line from r and returns the number of records added.
func (idx *Index) Load(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		idx.Add(scanner.Text())
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("failed to read records: %w", err)
	}
	return n, nil
}

// Name returns the display name of the record with the given id.
func (idx *Index) Name(id int) string {
	if id < 1 || id > len(idx.names) {
		return ""
	}
	return idx.names[id-1]
}

// HasName reports whether some record has exactly the given display name.
func (idx *Index) HasName(name string) bool {
	_, ok := idx.nameSet[name]
	return ok
}

// Version identifies the index contents: indexes built from the same lines
// with the same q share a version, any other change yields a new one.
func (idx *Index) Version() string {
	return fmt.Sprintf("%016x", idx.digest.Sum64())
}

// Original returns the raw line the record was built from.
func (idx *Index) Original(id int) string {
	if id < 1 || id > len(idx.originals) {
		return ""
	}
	return idx.originals[id-1]
}

// Qgrams returns all q-grams of s, padded on the left with q-1 '$' runes.
func (idx *Index) Qgrams(s string) []string {
	padded := []rune(strings.Repeat(string(padRune), idx.q-1) + s)
	if len(padded) < idx.q {
		return nil
	}

	grams := make([]string, 0, len(padded)-idx.q+1)
	for i := 0; i+idx.q <= len(padded); i++ {
		grams = append(grams, string(padded[i:i+idx.q]))
	}
	return grams
}

// Merge counts how often each record id occurs across the given lists.
func Merge(lists [][]int) map[int]int {
	counts := make(map[int]int)
	for _, list := range lists {
		for _, id := range list {
			counts[id]++
		}
	}
	return counts
}

// PrefixEditDistance computes the minimum edit distance between p and any
// prefix of s. When delta > -1 only prefixes of s up to len(p)+delta runes
// are considered.
func PrefixEditDistance(p, s string, delta int) int {
	pr, sr := []rune(p), []rune(s)

	rows := len(pr) + 1
	cols := len(sr) + 1
	if delta > -1 {
		cols = min(cols, len(pr)+delta+1)
	}

	prev := make([]int, cols)
	curr := make([]int, cols)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i < rows; i++ {
		curr[0] = i
		for j := 1; j < cols; j++ {
			replace := prev[j-1]
			if pr[i-1] != sr[j-1] {
				replace++
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, replace)
		}
		prev, curr = curr, prev
	}

	best := prev[0]
	for _, v := range prev[1:] {
		if v < best {
			best = v
		}
	}
	return best
}

// FindMatches returns up to k records whose prefix edit distance to prefix
// is at most delta, best first, together with the number of distance
// computations performed. The prefix must already be normalized.
func (idx *Index) FindMatches(prefix string, delta, k int) ([]Match, int) {
	var lists [][]int
	for _, gram := range idx.Qgrams(prefix) {
		if list, ok := idx.invertedLists[gram]; ok {
			lists = append(lists, list)
		}
	}
	counts := Merge(lists)

	threshold := len([]rune(prefix)) - idx.q*delta
	total := float64(len(idx.records))

	var matches []Match
	peds := 0
	for id, count := range counts {
		if count < threshold {
			continue
		}
		ped := PrefixEditDistance(prefix, idx.records[id-1], delta)
		peds++
		if ped <= delta {
			matches = append(matches, Match{
				ID:    id,
				Score: float64(ped)/float64(max(delta, 1)) + float64(id)/total,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score < matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})

	if k >= 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, peds
}

// Normalize strips every rune that is not a letter, digit or underscore and
// lower-cases the rest.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Delta returns the error budget for a normalized prefix: one edit per
// four runes.
func Delta(prefix string) int {
	return len([]rune(prefix)) / 4
}
