package navigate

import (
	"bytes"
	"errors"
	"testing"
)

func TestBrowserSendsBothModesToOpener(t *testing.T) {
	var opened []string
	browser := NewBrowser(func(url string) error {
		opened = append(opened, url)
		return nil
	})

	if err := browser.OpenNew("https://hub.example.com/hub/home"); err != nil {
		t.Fatalf("OpenNew failed: %v", err)
	}
	if err := browser.SetLocation("https://hub.example.com/user/alice/logout"); err != nil {
		t.Fatalf("SetLocation failed: %v", err)
	}
	if len(opened) != 2 || opened[0] != "https://hub.example.com/hub/home" || opened[1] != "https://hub.example.com/user/alice/logout" {
		t.Fatalf("unexpected opened urls %#v", opened)
	}
}

func TestBrowserWithoutOpener(t *testing.T) {
	browser := NewBrowser(nil)
	if err := browser.OpenNew("x"); !errors.Is(err, ErrNoOpener) {
		t.Fatalf("expected ErrNoOpener, got %v", err)
	}
	if err := browser.SetLocation("x"); !errors.Is(err, ErrNoOpener) {
		t.Fatalf("expected ErrNoOpener, got %v", err)
	}
}

func TestBrowserWrapsOpenerError(t *testing.T) {
	failure := errors.New("no display")
	browser := NewBrowser(func(string) error { return failure })
	err := browser.SetLocation("x")
	if !errors.Is(err, failure) {
		t.Fatalf("expected wrapped opener error, got %v", err)
	}
	if err.Error() != "navigate x: no display" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestPrinterDistinguishesModes(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)
	if err := printer.OpenNew("https://h/hub/spawn"); err != nil {
		t.Fatalf("OpenNew failed: %v", err)
	}
	if err := printer.SetLocation("https://h/user/a/logout"); err != nil {
		t.Fatalf("SetLocation failed: %v", err)
	}
	want := "open https://h/hub/spawn\nnavigate https://h/user/a/logout\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRecorderKeepsVisitsAndLocation(t *testing.T) {
	var buf bytes.Buffer
	recorder := NewRecorder(NewPrinter(&buf))

	if err := recorder.SetLocation("https://h/lab"); err != nil {
		t.Fatalf("SetLocation failed: %v", err)
	}
	if err := recorder.OpenNew("https://h/hub/home"); err != nil {
		t.Fatalf("OpenNew failed: %v", err)
	}

	visits := recorder.Visits()
	want := []Visit{{Mode: ModeNavigate, URL: "https://h/lab"}, {Mode: ModeOpen, URL: "https://h/hub/home"}}
	if len(visits) != len(want) {
		t.Fatalf("unexpected visits %#v", visits)
	}
	for idx := range want {
		if visits[idx] != want[idx] {
			t.Fatalf("visit[%d]=%+v want=%+v", idx, visits[idx], want[idx])
		}
	}
	if recorder.Location() != "https://h/lab" {
		t.Fatalf("expected OpenNew to leave the location alone, got %q", recorder.Location())
	}
	if buf.String() != "navigate https://h/lab\nopen https://h/hub/home\n" {
		t.Fatalf("expected navigations to reach the wrapped navigator, got %q", buf.String())
	}
}

func TestRecorderSkipsFailedNavigation(t *testing.T) {
	recorder := NewRecorder(NewBrowser(nil))
	if err := recorder.SetLocation("x"); !errors.Is(err, ErrNoOpener) {
		t.Fatalf("expected ErrNoOpener, got %v", err)
	}
	if len(recorder.Visits()) != 0 || recorder.Location() != "" {
		t.Fatalf("expected nothing recorded after a failure")
	}
}
