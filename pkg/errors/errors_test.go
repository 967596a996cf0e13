package errors

import (
	"errors"
	"fmt"
	"testing"
)

type recordingHandler struct {
	errs   []*LazyError
	panics []*PanicError
}

func (h *recordingHandler) HandleError(err *LazyError)  { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *PanicError) { h.panics = append(h.panics, err) }

func TestReport_ReachesHandler(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&LazyError{Op: "lazyimage.Decode", Kind: KindDecode, Err: fmt.Errorf("bad magic")})
	Report(nil) // ignored

	if len(h.errs) != 1 {
		t.Fatalf("expected one reported error, got %d", len(h.errs))
	}
	if h.errs[0].Timestamp.IsZero() {
		t.Error("Report should stamp the error")
	}
}

func TestLazyError_Format(t *testing.T) {
	underlying := errors.New("bad magic")
	err := &LazyError{Op: "lazyimage.Decode", Kind: KindDecode, Err: underlying}

	if got := err.Error(); got != "lazyimage.Decode [decode]: bad magic" {
		t.Errorf("unexpected message: %q", got)
	}
	if !errors.Is(err, underlying) {
		t.Error("Unwrap should expose the underlying error")
	}
}

func TestRecover_ReportsPanic(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	func() {
		defer Recover("visibility.reveal")
		panic("boom")
	}()

	if len(h.panics) != 1 {
		t.Fatalf("expected one recovered panic, got %d", len(h.panics))
	}
	p := h.panics[0]
	if p.Op != "visibility.reveal" || p.Value != "boom" {
		t.Errorf("unexpected panic record: %+v", p)
	}
	if p.StackTrace == "" {
		t.Error("expected a captured stack trace")
	}
}

func TestSetHandler_NilRestoresDefault(t *testing.T) {
	SetHandler(&recordingHandler{})
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("expected the default LogHandler, got %T", DefaultHandler)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindUnknown: "unknown",
		KindDecode:  "decode",
		KindFetch:   "fetch",
		KindConfig:  "config",
		KindPanic:   "panic",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("Kind(%d): expected %q, got %q", int(k), want, k.String())
		}
	}
}
