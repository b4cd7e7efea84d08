package mcpserver

import (
	"encoding/base64"
	"strconv"
	"testing"
)

func TestResolveAgainstCWD_AcceptsWithinTree(t *testing.T) {
	cwd := "/home/u/p"
	resolved, rejected := resolveAgainstCWD(cwd, []string{"foo", "./foo", "sub/bar"})
	if len(rejected) != 0 {
		t.Fatalf("expected no rejections, got %v", rejected)
	}
	if len(resolved) != 3 {
		t.Fatalf("expected 3 resolved paths, got %v", resolved)
	}
}

func TestResolveAgainstCWD_RejectsEscapes(t *testing.T) {
	cwd := "/home/u/p"
	_, rejected := resolveAgainstCWD(cwd, []string{"../x", "a/../../x", "/etc/passwd", "/tmp"})
	if len(rejected) != 4 {
		t.Fatalf("expected all 4 inputs rejected, got %v", rejected)
	}
}

func TestResolveAgainstCWD_CWDItselfAccepted(t *testing.T) {
	cwd := "/home/u/p"
	resolved, rejected := resolveAgainstCWD(cwd, []string{"."})
	if len(rejected) != 0 {
		t.Fatalf("expected cwd itself to be accepted, rejected: %v", rejected)
	}
	if len(resolved) != 1 || resolved[0] != cwd {
		t.Fatalf("expected resolved cwd, got %v", resolved)
	}
}

func TestToStringSlice(t *testing.T) {
	got := toStringSlice([]any{"a", "b", "c"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestToStringSlice_NilInput(t *testing.T) {
	if got := toStringSlice(nil); len(got) != 0 {
		t.Errorf("expected empty slice for nil input, got %v", got)
	}
}

// TestStalintPagination_CursorRoundTrip covers property #10: paginating
// through N violations with limit=k via callStalint returns exactly N
// rows, in original order, across ceil(N/k) calls, no duplicates.
func TestStalintPagination_CursorRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	const n = 25
	const limit = 10
	var all []stalintViolation
	for i := 0; i < n; i++ {
		all = append(all, stalintViolation{Rule: "x/y", Message: strconv.Itoa(i)})
	}
	s.sess.pagedPaths = []string{"dummy.go"}
	s.sess.pagedResults = all

	var collected []stalintViolation
	cursor := base64.StdEncoding.EncodeToString([]byte("0"))
	calls := 0
	for {
		calls++
		res, err := s.callStalint(map[string]any{
			"limit":  float64(limit),
			"cursor": cursor,
		})
		if err != nil {
			t.Fatalf("callStalint error: %v", err)
		}
		result, ok := res.(*toolsCallResult)
		if !ok {
			t.Fatalf("expected *toolsCallResult, got %T", res)
		}
		structured := result.StructuredContent
		if structured == nil {
			t.Fatalf("expected structured content map, got nil")
		}
		page, ok := structured["violations"].([]stalintViolation)
		if !ok {
			t.Fatalf("expected []stalintViolation, got %T", structured["violations"])
		}
		collected = append(collected, page...)

		next, hasNext := structured["nextCursor"].(string)
		if !hasNext {
			break
		}
		cursor = next
	}

	if len(collected) != n {
		t.Fatalf("expected %d total rows, got %d", n, len(collected))
	}
	for i := range all {
		if collected[i].Message != all[i].Message {
			t.Fatalf("order mismatch at %d: want %q got %q", i, all[i].Message, collected[i].Message)
		}
	}
	wantCalls := (n + limit - 1) / limit
	if calls != wantCalls {
		t.Errorf("expected %d calls (ceil(%d/%d)), got %d", wantCalls, n, limit, calls)
	}
}

func TestStalintPagination_CursorWithoutStoredPathsRejected(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.callStalint(map[string]any{"cursor": base64.StdEncoding.EncodeToString([]byte("0"))})
	if err == nil {
		t.Fatal("expected error for cursor with no stored paths")
	}
}

func TestStalintPagination_MissingPathsAndCursorRejected(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.callStalint(map[string]any{})
	if err == nil {
		t.Fatal("expected error when neither paths nor cursor given")
	}
}
