package util_test

import (
	"errors"
	"testing"

	"github.com/keshon/rewind/internal/fs"
	"github.com/keshon/rewind/internal/util"
)

func TestWriteReadJSONRoundTrip(t *testing.T) {
	m := fs.NewMemoryFS()
	m.MkdirAll("store", 0o755)

	in := map[string]string{"a.txt": "h1", "b.txt": "h2"}
	if err := util.WriteJSON(m, "store/doc.json", in); err != nil {
		t.Fatal(err)
	}

	var out map[string]string
	if err := util.ReadJSON(m, "store/doc.json", &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out["a.txt"] != "h1" || out["b.txt"] != "h2" {
		t.Errorf("round trip mismatch: %v", out)
	}
}

func TestWriteJSONOverwrites(t *testing.T) {
	m := fs.NewMemoryFS()
	m.MkdirAll("store", 0o755)

	util.WriteJSON(m, "store/doc.json", map[string]int{"v": 1})
	util.WriteJSON(m, "store/doc.json", map[string]int{"v": 2})

	var out map[string]int
	if err := util.ReadJSON(m, "store/doc.json", &out); err != nil {
		t.Fatal(err)
	}
	if out["v"] != 2 {
		t.Errorf("expected overwrite to win, got %v", out)
	}
}

func TestSortedKeys(t *testing.T) {
	got := util.SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3})
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestParallelRunsAll(t *testing.T) {
	inputs := []int{1, 2, 3, 4, 5}
	results := make(chan int, len(inputs))

	err := util.Parallel(inputs, 2, func(n int) error {
		results <- n
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	close(results)

	sum := 0
	for n := range results {
		sum += n
	}
	if sum != 15 {
		t.Errorf("expected all inputs processed, sum %d", sum)
	}
}

func TestParallelPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := util.Parallel([]int{1, 2, 3}, 2, func(n int) error {
		if n == 2 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}
