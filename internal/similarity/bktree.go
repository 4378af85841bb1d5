// Package similarity indexes attested Jyutping syllables and phrases
// in a BK-tree for edit-distance suggestion queries.
package similarity

// Tree is a BK-tree over phrase strings. Insertion order does not
// affect query results, only the tree shape.
type Tree struct {
	root *node
	size int
}

type node struct {
	phrase   string
	children map[int]*node
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Add inserts a phrase. Duplicates and empty strings are ignored.
func (t *Tree) Add(phrase string) {
	if phrase == "" {
		return
	}
	if t.root == nil {
		t.root = &node{phrase: phrase, children: make(map[int]*node)}
		t.size++
		return
	}

	cur := t.root
	for {
		dist := EditDistance(phrase, cur.phrase)
		if dist == 0 {
			return
		}
		child, ok := cur.children[dist]
		if !ok {
			cur.children[dist] = &node{phrase: phrase, children: make(map[int]*node)}
			t.size++
			return
		}
		cur = child
	}
}

// AddAll inserts every phrase in the slice.
func (t *Tree) AddAll(phrases []string) {
	for _, p := range phrases {
		t.Add(p)
	}
}

// Match is one suggestion with its edit distance from the query.
type Match struct {
	Phrase   string
	Distance int
}

// Near returns every indexed phrase within maxDist of the query.
func (t *Tree) Near(query string, maxDist int) []Match {
	if t.root == nil || query == "" {
		return nil
	}
	var out []Match
	t.walk(t.root, query, maxDist, &out)
	return out
}

func (t *Tree) walk(n *node, query string, maxDist int, out *[]Match) {
	dist := EditDistance(query, n.phrase)
	if dist <= maxDist {
		*out = append(*out, Match{Phrase: n.phrase, Distance: dist})
	}

	// The triangle inequality bounds which subtrees can hold matches.
	for childDist, child := range n.children {
		if childDist >= dist-maxDist && childDist <= dist+maxDist {
			t.walk(child, query, maxDist, out)
		}
	}
}

// Size returns the number of distinct indexed phrases.
func (t *Tree) Size() int {
	return t.size
}

// Contains reports whether the exact phrase is indexed.
func (t *Tree) Contains(phrase string) bool {
	for _, m := range t.Near(phrase, 0) {
		if m.Distance == 0 {
			return true
		}
	}
	return false
}

// EditDistance is the Levenshtein distance over runes, using the
// two-row formulation.
func EditDistance(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return len(rb)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[i] = minOf(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
