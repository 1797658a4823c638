package pool

import (
	"sync"
	"testing"
)

func TestPool_GetReturnsFactoryValue(t *testing.T) {
	p := NewPool(func() *int {
		x := 42
		return &x
	})
	if got := *p.Get(); got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
	p.Put(nil)
}

func TestPool_ResetRunsOnGet(t *testing.T) {
	resets := 0
	p := NewPoolWithReset(
		func() *[]int {
			s := make([]int, 0, 4)
			return &s
		},
		func(s *[]int) {
			*s = (*s)[:0]
			resets++
		},
	)

	s := p.Get()
	*s = append(*s, 1, 2, 3)
	p.Put(s)

	s2 := p.Get()
	if resets != 2 {
		t.Errorf("reset ran %d times, want 2", resets)
	}
	if len(*s2) != 0 {
		t.Errorf("len after reset = %d, want 0", len(*s2))
	}
}

func TestStringSlice_Empty(t *testing.T) {
	s := GetStringSlice()
	if len(*s) != 0 {
		t.Fatalf("fresh slice has len %d", len(*s))
	}
	*s = append(*s, "a", "b")
	PutStringSlice(s)

	s2 := GetStringSlice()
	if len(*s2) != 0 {
		t.Errorf("reused slice has len %d, want 0", len(*s2))
	}
	PutStringSlice(s2)
}

func TestStringSlice_OversizedDropped(t *testing.T) {
	big := make([]string, 0, maxPooledCap+1)
	PutStringSlice(&big)
	PutStringSlice(nil)
}

func TestStringSlice_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s := GetStringSlice()
				*s = append(*s, "x")
				if len(*s) != 1 {
					t.Errorf("len = %d, want 1", len(*s))
				}
				PutStringSlice(s)
			}
		}()
	}
	wg.Wait()
}
