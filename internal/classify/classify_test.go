package classify

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"tabbatch/internal/lookup"
)

func scenarioSnapshot() *lookup.Snapshot {
	return lookup.NewSnapshot([]string{"900"}, map[string]string{"111": "900", "222": "900", "333": "901"})
}

func TestParseScenario(t *testing.T) {
	snap := scenarioSnapshot()
	result := New(snap, 0).Parse("111\n222\n333\n111")

	wantPairs := []Pair{{"111", "900"}, {"222", "900"}, {"333", "901"}}
	if !reflect.DeepEqual(result.Pairs, wantPairs) {
		t.Fatalf("unexpected pairs: %+v", result.Pairs)
	}
	if len(result.Rejected) != 1 || result.Rejected[0].String() != "111 duplicate" {
		t.Fatalf("unexpected rejections: %+v", result.Rejected)
	}
	if result.Rejected[0].Line != 4 {
		t.Fatalf("expected rejection on line 4, got %d", result.Rejected[0].Line)
	}

	excluded, direct := Partition(result.Pairs, snap)
	if !reflect.DeepEqual(excluded, []Pair{{"111", "900"}, {"222", "900"}}) {
		t.Fatalf("unexpected excluded partition: %+v", excluded)
	}
	if !reflect.DeepEqual(direct, []Pair{{"333", "901"}}) {
		t.Fatalf("unexpected direct partition: %+v", direct)
	}
}

func TestParseRejectionReasons(t *testing.T) {
	result := New(scenarioSnapshot(), 0).Parse("  \nabc\n444\n\n222\t900\tWidget\n222\n12-3")

	want := []Rejection{
		{Line: 1, Candidate: "abc", Reason: ReasonNonNumeric},
		{Line: 2, Candidate: "444", Reason: ReasonUnmapped},
		{Line: 4, Candidate: "222", Reason: ReasonDuplicate},
		{Line: 5, Candidate: "12-3", Reason: ReasonNonNumeric},
	}
	if !reflect.DeepEqual(result.Rejected, want) {
		t.Fatalf("unexpected rejections:\n got %+v\nwant %+v", result.Rejected, want)
	}
	if len(result.Pairs) != 1 || result.Pairs[0] != (Pair{"222", "900"}) {
		t.Fatalf("expected tab-separated row to be accepted, got %+v", result.Pairs)
	}
}

func TestParseFoldsFullWidthDigits(t *testing.T) {
	result := New(scenarioSnapshot(), 0).Parse("３３３")
	if len(result.Pairs) != 1 || result.Pairs[0].SKU != "333" {
		t.Fatalf("expected full-width SKU to be accepted, got %+v", result)
	}
}

func TestParseNeverExceedsLimit(t *testing.T) {
	mapping := make(map[string]string)
	var lines []string
	for i := 0; i < 120; i++ {
		sku := fmt.Sprintf("%d", 1000+i)
		mapping[sku] = "77"
		lines = append(lines, sku)
	}
	// Lines past the limit are never evaluated, not even for rejection.
	lines = append(lines, "garbage")
	classifier := New(lookup.NewSnapshot(nil, mapping), 0)

	for _, n := range []int{0, 1, 49, 50, 51, 121} {
		result := classifier.Parse(strings.Join(lines[:n], "\n"))
		if len(result.Pairs) > DefaultLimit {
			t.Fatalf("n=%d: got %d pairs", n, len(result.Pairs))
		}
		if n > DefaultLimit {
			if !result.Truncated {
				t.Fatalf("n=%d: expected truncation flag", n)
			}
			if len(result.Rejected) != 0 {
				t.Fatalf("n=%d: lines past the limit must not be rejected, got %+v", n, result.Rejected)
			}
			if result.Pairs[DefaultLimit-1].SKU != "1049" {
				t.Fatalf("n=%d: unexpected last pair %+v", n, result.Pairs[DefaultLimit-1])
			}
		} else if result.Truncated {
			t.Fatalf("n=%d: unexpected truncation", n)
		}
	}
}

func TestParseDuplicatesKeepFirstOccurrence(t *testing.T) {
	snap := scenarioSnapshot()
	inputs := []string{
		"333\n111\n333\n333",
		"222\n222",
		"111\n222\n111\n222\n333",
	}
	for _, input := range inputs {
		result := New(snap, 0).Parse(input)
		seen := map[string]int{}
		for _, p := range result.Pairs {
			seen[p.SKU]++
			if seen[p.SKU] > 1 {
				t.Fatalf("%q: duplicate accepted %s", input, p.SKU)
			}
		}
		firstIdx := map[string]int{}
		for i, line := range strings.Split(input, "\n") {
			if _, ok := firstIdx[line]; !ok {
				firstIdx[line] = i + 1
			}
		}
		for _, r := range result.Rejected {
			if r.Reason != ReasonDuplicate {
				t.Fatalf("%q: unexpected reason %s", input, r.Reason)
			}
			if r.Line <= firstIdx[r.Candidate] {
				t.Fatalf("%q: rejected the first occurrence of %s", input, r.Candidate)
			}
		}
	}
}

func TestParseWithEmptySnapshotRejectsAllAsUnmapped(t *testing.T) {
	result := New(nil, 0).Parse("111\n222")
	if len(result.Pairs) != 0 || len(result.Rejected) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	for _, r := range result.Rejected {
		if r.Reason != ReasonUnmapped {
			t.Fatalf("expected unmapped, got %s", r.Reason)
		}
	}
}

func TestParseRawSkipsMapping(t *testing.T) {
	result := ParseRaw("555\n555\nx1\n666", 0)
	if !reflect.DeepEqual(result.SKUs(), []string{"555", "666"}) {
		t.Fatalf("unexpected skus: %v", result.SKUs())
	}
	if len(result.Rejected) != 2 || result.Rejected[0].Reason != ReasonDuplicate || result.Rejected[1].Reason != ReasonNonNumeric {
		t.Fatalf("unexpected rejections: %+v", result.Rejected)
	}
	if result.Pairs[0].SPU != "" {
		t.Fatal("raw variant must not assign an SPU")
	}
}

func TestPartitionIsTotalAndOrdered(t *testing.T) {
	snap := lookup.NewSnapshot([]string{"1", "3"}, nil)
	pairs := []Pair{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"d", "4"}, {"e", "1"}}

	excluded, direct := Partition(pairs, snap)
	if len(excluded)+len(direct) != len(pairs) {
		t.Fatalf("partition lost pairs: %d + %d", len(excluded), len(direct))
	}
	for _, p := range excluded {
		if !snap.IsExcluded(p.SPU) {
			t.Fatalf("pair %+v wrongly excluded", p)
		}
	}
	for _, p := range direct {
		if snap.IsExcluded(p.SPU) {
			t.Fatalf("pair %+v wrongly direct", p)
		}
	}
	if !reflect.DeepEqual(excluded, []Pair{{"a", "1"}, {"c", "3"}, {"e", "1"}}) {
		t.Fatalf("excluded order not preserved: %+v", excluded)
	}
	if !reflect.DeepEqual(direct, []Pair{{"b", "2"}, {"d", "4"}}) {
		t.Fatalf("direct order not preserved: %+v", direct)
	}
}

func TestBatches(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 20, 25, 50} {
		pairs := make([]Pair, n)
		for i := range pairs {
			pairs[i] = Pair{SKU: fmt.Sprintf("%d", i), SPU: "9"}
		}
		batches := Batches(pairs, 10)
		if want := (n + 9) / 10; len(batches) != want {
			t.Fatalf("n=%d: expected %d batches, got %d", n, want, len(batches))
		}
		var joined []Pair
		for _, b := range batches {
			if len(b) == 0 || len(b) > 10 {
				t.Fatalf("n=%d: invalid batch size %d", n, len(b))
			}
			joined = append(joined, b...)
		}
		if n > 0 && !reflect.DeepEqual(joined, pairs) {
			t.Fatalf("n=%d: concatenation does not reconstruct input", n)
		}
	}
}
