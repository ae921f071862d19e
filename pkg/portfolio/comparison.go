package portfolio

// Pair is one before/after comparison, addressed by a single shared index.
type Pair struct {
	Index  int   `json:"index"`
	Before Image `json:"before"`
	After  Image `json:"after"`
}

type Comparison struct {
	pairs []Pair
}

// NewComparison pairs before[i] with after[i] for i < min(len(before), len(after)).
// Both inputs are expected in display order.
func NewComparison(before, after []Image) Comparison {
	n := min(len(before), len(after))
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, Pair{Index: i, Before: before[i], After: after[i]})
	}
	return Comparison{pairs: pairs}
}

func ComparisonOf(view ProjectView) Comparison {
	return NewComparison(view.BeforeImages, view.AfterImages)
}

func (c Comparison) Count() int {
	return len(c.pairs)
}

// Available is false when either side has no images; the comparison view is then disabled.
func (c Comparison) Available() bool {
	return len(c.pairs) > 0
}

func (c Comparison) Pairs() []Pair {
	return append([]Pair{}, c.pairs...)
}

func (c Comparison) Pair(index int) (Pair, bool) {
	if index < 0 || index >= len(c.pairs) {
		return Pair{}, false
	}
	return c.pairs[index], true
}

func (c Comparison) Cursor() *ComparisonCursor {
	return &ComparisonCursor{comparison: c}
}

// ComparisonCursor walks both sequences in lockstep. Next and Prev wrap around.
type ComparisonCursor struct {
	comparison Comparison
	index      int
}

func (cc *ComparisonCursor) Index() int {
	return cc.index
}

func (cc *ComparisonCursor) Current() (Pair, bool) {
	return cc.comparison.Pair(cc.index)
}

func (cc *ComparisonCursor) Next() (Pair, bool) {
	n := cc.comparison.Count()
	if n == 0 {
		return Pair{}, false
	}
	cc.index = (cc.index + 1) % n
	return cc.Current()
}

func (cc *ComparisonCursor) Prev() (Pair, bool) {
	n := cc.comparison.Count()
	if n == 0 {
		return Pair{}, false
	}
	cc.index = (cc.index - 1 + n) % n
	return cc.Current()
}

// Seek jumps to index when it is a valid pair.
func (cc *ComparisonCursor) Seek(index int) bool {
	if _, ok := cc.comparison.Pair(index); !ok {
		return false
	}
	cc.index = index
	return true
}
