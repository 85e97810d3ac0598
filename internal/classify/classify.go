package classify

import (
	"fmt"
	"strings"

	"tabbatch/internal/lookup"
	"tabbatch/internal/textutil"
)

// DefaultLimit caps the number of validated identifiers per submission.
const DefaultLimit = 50

// Reason explains why an input line was rejected.
type Reason string

const (
	ReasonNonNumeric Reason = "non-numeric"
	ReasonUnmapped   Reason = "unmapped"
	ReasonDuplicate  Reason = "duplicate"
)

// Pair is one validated SKU with the SPU it maps to. For the public-page
// variant SPU is empty.
type Pair struct {
	SKU string
	SPU string
}

// Rejection records one rejected input line.
type Rejection struct {
	Line      int
	Candidate string
	Reason    Reason
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s %s", r.Candidate, r.Reason)
}

// Result is the outcome of one classification.
type Result struct {
	Pairs    []Pair
	Rejected []Rejection
	// Truncated is set when the limit was reached before the input ended.
	Truncated bool
}

// SKUs returns the validated SKUs in input order.
func (r Result) SKUs() []string {
	out := make([]string, len(r.Pairs))
	for i, p := range r.Pairs {
		out[i] = p.SKU
	}
	return out
}

// Classifier validates submissions against one lookup snapshot.
type Classifier struct {
	snapshot *lookup.Snapshot
	limit    int
}

// New returns a classifier bound to snapshot. A non-positive limit uses DefaultLimit.
func New(snapshot *lookup.Snapshot, limit int) *Classifier {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if snapshot == nil {
		snapshot = lookup.Empty()
	}
	return &Classifier{snapshot: snapshot, limit: limit}
}

// Snapshot returns the lookup snapshot the classifier was built with.
func (c *Classifier) Snapshot() *lookup.Snapshot {
	return c.snapshot
}

// Parse validates text line by line and maps each accepted SKU to its SPU.
func (c *Classifier) Parse(text string) Result {
	return parse(text, c.limit, func(sku string) (string, bool) {
		return c.snapshot.SPU(sku)
	})
}

// ParseRaw validates text without a mapping step; the SKU itself is the target.
func ParseRaw(text string, limit int) Result {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return parse(text, limit, nil)
}

func parse(text string, limit int, resolve func(string) (string, bool)) Result {
	var result Result
	seen := make(map[string]struct{})
	lineNo := 0

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo++

		if len(result.Pairs) >= limit {
			result.Truncated = true
			break
		}

		candidate := textutil.NormalizeIdentifier(textutil.FirstField(line))
		reject := func(reason Reason) {
			result.Rejected = append(result.Rejected, Rejection{Line: lineNo, Candidate: candidate, Reason: reason})
		}

		if !textutil.IsDigits(candidate) {
			reject(ReasonNonNumeric)
			continue
		}

		var spu string
		if resolve != nil {
			mapped, ok := resolve(candidate)
			if !ok {
				reject(ReasonUnmapped)
				continue
			}
			spu = mapped
		}

		if _, dup := seen[candidate]; dup {
			reject(ReasonDuplicate)
			continue
		}
		seen[candidate] = struct{}{}
		result.Pairs = append(result.Pairs, Pair{SKU: candidate, SPU: spu})
	}
	return result
}

// Partition splits pairs by exclusion-set membership of their SPU, preserving
// relative order within each side.
func Partition(pairs []Pair, snapshot *lookup.Snapshot) (excluded, direct []Pair) {
	for _, p := range pairs {
		if snapshot.IsExcluded(p.SPU) {
			excluded = append(excluded, p)
		} else {
			direct = append(direct, p)
		}
	}
	return excluded, direct
}

// Batch is an ordered run of pairs handled in one browser window.
type Batch []Pair

// Batches slices pairs into consecutive batches of at most size pairs.
func Batches(pairs []Pair, size int) []Batch {
	if size <= 0 {
		size = 1
	}
	out := make([]Batch, 0, (len(pairs)+size-1)/size)
	for start := 0; start < len(pairs); start += size {
		end := min(start+size, len(pairs))
		out = append(out, Batch(pairs[start:end:end]))
	}
	return out
}
