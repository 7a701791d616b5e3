package tabletop

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestWithStack(t *testing.T) {
	if WithStack(nil) != nil {
		t.Errorf("WithStack(nil) should be nil")
	}
	base := fmt.Errorf("boom")
	wrapped := WithStack(base)
	if !errors.Is(wrapped, base) {
		t.Errorf("wrapped error should match base")
	}
	if WithStack(wrapped) != wrapped {
		t.Errorf("already stacked errors should not be wrapped again")
	}
	if StackTrace(wrapped) == "" {
		t.Errorf("stacked error should have a trace")
	}
	if StackTrace(base) != "" {
		t.Errorf("plain error should not have a trace")
	}
}

func TestSyncMapSetIfAbsent(t *testing.T) {
	m := NewSyncMap[string, int]()
	if !m.SetIfAbsent("a", 1) {
		t.Errorf("first SetIfAbsent should succeed")
	}
	if m.SetIfAbsent("a", 2) {
		t.Errorf("second SetIfAbsent should fail")
	}
	if got, found := m.GetHas("a"); !found || got != 1 {
		t.Errorf("GetHas(a) = %v, %v, want 1, true", got, found)
	}
	if m.DelIf("a", 2) {
		t.Errorf("DelIf with wrong value should fail")
	}
	if !m.DelIf("a", 1) {
		t.Errorf("DelIf with right value should succeed")
	}
	if _, found := m.GetHas("a"); found {
		t.Errorf("a should be gone")
	}
}

func TestSyncMapCloneIsSnapshot(t *testing.T) {
	m := NewSyncMap[string, int]()
	m.SetIfAbsent("a", 1)
	m.SetIfAbsent("b", 2)
	snap := m.Clone()
	m.DelIf("a", 1)
	m.SetIfAbsent("c", 3)
	keys := []string{}
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
		t.Errorf("snapshot changed (-want +got):\n%s", diff)
	}
	if got := len(m.Clone()); got != 2 {
		t.Errorf("len(Clone()) = %v, want 2", got)
	}
}

func TestNextUniqueID(t *testing.T) {
	seen := map[string]bool{}
	mu := sync.Mutex{}
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := NextUniqueID()
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate id %q", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}
