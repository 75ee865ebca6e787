package vector_test

import (
	"testing"

	"github.com/npillmayer/persistent/vector"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Building a vector through transient pushes must be observationally
// identical to building it through persistent pushes.
func TestTransientEquivalence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	for _, n := range []int{0, 1, 32, 33, 64, 65, 1056, 1057, 2000} {
		p := vector.Immutable[int]()
		tr := vector.Immutable[int]().AsTransient()
		for i := 0; i < n; i++ {
			p = p.Push(i)
			tr = tr.Push(i)
		}
		v := tr.AsPersistent()
		require.Equal(t, p.Len(), v.Len(), "n=%d", n)
		for i := 0; i < n; i++ {
			require.Equal(t, p.Get(i), v.Get(i), "n=%d, i=%d", n, i)
		}
	}
}

func TestTransientLeavesOriginalUntouched(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	v := vector.Immutable[int]()
	for i := 0; i < 100; i++ {
		v = v.Push(i)
	}
	tr := v.AsTransient()
	for i := 0; i < 100; i++ {
		tr = tr.Set(i, -i)
	}
	for i := 100; i < 200; i++ {
		tr = tr.Push(i)
	}
	tr = tr.Pop()
	w := tr.AsPersistent()
	// the source of the transient must be completely unaffected
	require.Equal(t, 100, v.Len())
	for i := 0; i < 100; i++ {
		assert.Equal(t, i, v.Get(i))
		assert.Equal(t, -i, w.Get(i))
	}
	assert.Equal(t, 199, w.Len())
}

func TestTransientSetAndGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	tr := vector.Immutable[int]().AsTransient()
	for i := 0; i < 70; i++ {
		tr = tr.Push(0)
	}
	for i := 0; i < 70; i++ {
		tr = tr.Set(i, i*i)
	}
	for i := 0; i < 70; i++ {
		require.Equal(t, i*i, tr.Get(i))
	}
	require.Panics(t, func() { tr.Set(70, 0) })
	require.Panics(t, func() { tr.Get(-1) })
}

func TestTransientPopDrain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	const n = 1100
	tr := vector.Immutable[int]().AsTransient()
	for i := 0; i < n; i++ {
		tr = tr.Push(i)
	}
	for length := n; length > 0; length-- {
		require.Equal(t, length, tr.Len())
		require.Equal(t, length-1, tr.Get(length-1))
		if length > 1 {
			require.Equal(t, length/2, tr.Get(length/2), "survivor corrupted at length %d", length)
		}
		tr = tr.Pop()
	}
	require.Equal(t, 0, tr.Len())
	require.Panics(t, func() { tr.Pop() })
}

func TestTransientUseAfterFreeze(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	tr := vector.From(1, 2, 3).AsTransient()
	v := tr.AsPersistent()
	assert.Equal(t, 3, v.Len())
	require.Panics(t, func() { tr.Push(4) }, "transient must not be usable after AsPersistent")
	require.Panics(t, func() { tr.Get(0) })
	require.Panics(t, func() { tr.AsPersistent() })
}

// A frozen transient's nodes may be shared; a second transient derived from
// the result must not mutate them in place.
func TestTransientChainedBuilds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	first := vector.Immutable[int]().AsTransient()
	for i := 0; i < 500; i++ {
		first = first.Push(i)
	}
	v1 := first.AsPersistent()
	second := v1.AsTransient()
	for i := 0; i < 500; i++ {
		second = second.Set(i, -i)
	}
	v2 := second.AsPersistent()
	for i := 0; i < 500; i++ {
		require.Equal(t, i, v1.Get(i), "first build corrupted at %d", i)
		require.Equal(t, -i, v2.Get(i))
	}
}

func TestTransientGrowAndLower(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "persistent.vector")
	defer teardown()
	//
	tr := vector.Immutable[int]().AsTransient()
	for i := 0; i < 1057; i++ { // forces two height growths
		tr = tr.Push(i)
	}
	tr = tr.Pop() // and one height lowering
	v := tr.AsPersistent()
	require.Equal(t, 1056, v.Len())
	for i := 0; i < 1056; i++ {
		require.Equal(t, i, v.Get(i))
	}
}
