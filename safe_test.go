package bloomd

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xenking/bloomd/internal/fakebloomd"
)

func TestSetSafeCreatesMissingFilter(t *testing.T) {
	srv, err := fakebloomd.New()
	require.NoError(t, err)
	defer srv.Close()
	c := newTestClient(t, srv)

	type result struct {
		existed bool
		err     error
	}
	done := make(chan result, 1)
	c.SetSafe("autocreated", "first-key", nil, func(existed bool, err error) {
		done <- result{existed, err}
	})

	select {
	case res := <-done:
		require.NoError(t, res.err)
		require.False(t, res.existed, "expected existed=false for a brand new key in a brand new filter")
	case <-time.After(2 * time.Second):
		t.Fatal("SetSafe never completed")
	}

	type checkResult struct {
		present bool
		err     error
	}
	checkDone := make(chan checkResult, 1)
	c.Check("autocreated", "first-key", func(present bool, err error) {
		checkDone <- checkResult{present, err}
	})
	res := <-checkDone
	require.NoError(t, res.err)
	require.True(t, res.present, "expected the key to be present after SetSafe created the filter")
}

func TestSafeSequencePreservesPerFilterOrdering(t *testing.T) {
	srv, err := fakebloomd.New()
	require.NoError(t, err)
	defer srv.Close()
	c := newTestClient(t, srv)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	results := make([]error, n)
	var mu sync.Mutex
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		i := i
		c.CheckSafe("racy", "k", nil, func(_ bool, err error) {
			mu.Lock()
			results[i] = err
			order = append(order, i)
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()
	for i, err := range results {
		require.NoErrorf(t, err, "result %d", i)
	}
	for pos, i := range order {
		require.Equalf(t, pos, i, "CheckSafe callback %d completed out of submission order", i)
	}
}

// TestSetSafeSurfacesCreateFailure exercises testable property 7: when the
// auto-create triggered by a *Safe call itself fails, the caller sees that
// creation failure, not a stale "Filter does not exist" from the original
// command.
func TestSetSafeSurfacesCreateFailure(t *testing.T) {
	srv, err := fakebloomd.New()
	require.NoError(t, err)
	defer srv.Close()
	c := newTestClient(t, srv)

	done := make(chan error, 1)
	c.SetSafe("badcapacity", "key", CreateOptions{"capacity": "0"}, func(_ bool, err error) {
		done <- err
	})

	select {
	case err := <-done:
		require.Error(t, err)
		var se ServerError
		require.ErrorAsf(t, err, &se, "expected a ServerError, got %T: %v", err, err)
		require.NotEqual(t, filterMissingText, string(se), "should surface the create failure, not the stale missing-filter error")
		require.Equal(t, "Client Error: Bad arguments", string(se))
	case <-time.After(2 * time.Second):
		t.Fatal("SetSafe never completed")
	}
}

func TestMultiSafeAndBulkSafeAutoCreate(t *testing.T) {
	srv, err := fakebloomd.New()
	require.NoError(t, err)
	defer srv.Close()
	c := newTestClient(t, srv)

	keys := []string{"x", "y", "z"}
	bulkDone := make(chan error, 1)
	c.BulkSafe("multikeys", keys, nil, func(_ map[string]bool, err error) { bulkDone <- err })
	require.NoError(t, <-bulkDone)

	type multiResult struct {
		values map[string]bool
		err    error
	}
	multiDone := make(chan multiResult, 1)
	c.Multi("multikeys", keys, func(values map[string]bool, err error) {
		multiDone <- multiResult{values, err}
	})
	res := <-multiDone
	require.NoError(t, res.err)
	for _, k := range keys {
		require.Truef(t, res.values[k], "key %q not present after BulkSafe", k)
	}
}
