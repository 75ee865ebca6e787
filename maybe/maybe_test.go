package maybe_test

import (
	"testing"

	. "github.com/npillmayer/persistent/maybe"
)

func TestMaybeSimple(t *testing.T) {
	x := Just(7) // infers type
	y := Nothing[int]()

	var v int
	switch m := x.Match(); m {
	case m.Just(&v):
		t.Logf("Just(%d)", v)
	case m.Nothing():
		t.Logf("Nothing")
	}
	if v != 7 {
		t.Errorf("expected v to be 7, is %#v", v)
	}

	var w int
	switch m := y.Match(); m {
	case m.Just(&w):
		t.Logf("Just(%d)", w)
	case m.Nothing():
		t.Logf("Nothing")
	}
	if w != 0 {
		t.Errorf("expected w to be 0, is %#v", w)
	}
}

func TestMaybeUnwrap(t *testing.T) {
	if v, ok := Just(7).Unwrap(); !ok || v != 7 {
		t.Errorf("expected Just(7) to unwrap to 7, is (%d, %v)", v, ok)
	}
	if v, ok := Nothing[int]().Unwrap(); ok || v != 0 {
		t.Errorf("expected Nothing to unwrap to (0, false), is (%d, %v)", v, ok)
	}
}

func TestMaybeWithDefault(t *testing.T) {
	x := Just(7)
	xx := x.WithDefault(100)
	if xx != 7 {
		t.Logf("x = %d", xx)
		t.Error("expected Just(7) to have value 7, isn't")
	}

	y := Nothing[int]()
	yy := y.WithDefault(100)
	if yy != 100 {
		t.Logf("y = %d", yy)
		t.Error("expected Nothing to default to 100, isn't")
	}
}

func TestMaybeMap(t *testing.T) {
	x := Just(7)
	xx := x.Map(func(n int) int {
		return n * 2
	})
	if v, _ := xx.Unwrap(); v != 14 {
		t.Logf("x * 2 = %d", v)
		t.Error("expected Just(7).Map(…) to return 14, didn't")
	}

	s := Map(func(n int) string {
		if n > 0 {
			return "positive"
		}
		return "negative"
	}, Just(10))
	if v, _ := s.Unwrap(); v != "positive" {
		t.Errorf("expected Map(…, Just 10) to return 'positive', is %q", v)
	}

	y := Nothing[int]()
	yy := y.Map(func(n int) int {
		return n * 2
	})
	if _, ok := yy.Unwrap(); ok {
		t.Error("expected Nothing.Map(…) to stay Nothing, didn't")
	}
}

func TestMaybeAndThen(t *testing.T) {
	gt0 := func(n int) Maybe[bool] {
		if n > 0 {
			return Just(true)
		}
		return Nothing[bool]()
	}

	gt := AndThen(gt0, Just(7))
	var isGreater bool
	switch m := gt.Match(); m {
	case m.Just(&isGreater):
		t.Logf("ok: 7 > 0")
	case m.Nothing():
		t.Error("expected Just(7) |> andThen(gt0) to be true, isn't")
	}
}
