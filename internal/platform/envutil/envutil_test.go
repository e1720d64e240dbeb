package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_DUR", "")
	if got := Duration("ENVUTIL_TEST_DUR", time.Minute); got != time.Minute {
		t.Fatalf("default: got %v", got)
	}
	t.Setenv("ENVUTIL_TEST_DUR", "250ms")
	if got := Duration("ENVUTIL_TEST_DUR", time.Minute); got != 250*time.Millisecond {
		t.Fatalf("duration string: got %v", got)
	}
	t.Setenv("ENVUTIL_TEST_DUR", "15")
	if got := Duration("ENVUTIL_TEST_DUR", time.Minute); got != 15*time.Second {
		t.Fatalf("seconds: got %v", got)
	}
	t.Setenv("ENVUTIL_TEST_DUR", "soon")
	if got := Duration("ENVUTIL_TEST_DUR", time.Minute); got != time.Minute {
		t.Fatalf("garbage: got %v", got)
	}
}

func TestBoolAndList(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_BOOL", "Yes")
	if !Bool("ENVUTIL_TEST_BOOL", false) {
		t.Fatalf("expected true")
	}
	t.Setenv("ENVUTIL_TEST_BOOL", "maybe")
	if Bool("ENVUTIL_TEST_BOOL", false) {
		t.Fatalf("expected default false")
	}

	t.Setenv("ENVUTIL_TEST_LIST", " a, ,b ,")
	if got := List("ENVUTIL_TEST_LIST", nil); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("List: got %v", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("ENVUTIL_TEST_INT", "42")
	if got := GetEnvAsInt("ENVUTIL_TEST_INT", 1, nil); got != 42 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("ENVUTIL_TEST_INT", "x")
	if got := GetEnvAsInt("ENVUTIL_TEST_INT", 1, nil); got != 1 {
		t.Fatalf("got %d", got)
	}
}
