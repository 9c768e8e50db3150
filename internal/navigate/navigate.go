package navigate

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var ErrNoOpener = errors.New("no url opener configured")

// Navigation modes reported by Printer and Recorder.
const (
	ModeOpen     = "open"
	ModeNavigate = "navigate"
)

// Navigator is the navigation surface the hub commands drive.
type Navigator interface {
	OpenNew(url string) error
	SetLocation(url string) error
}

// Opener hands a URL to something that can display it.
type Opener func(url string) error

// Browser is a navigator for terminal hosts. Both modes go through the opener
// because a terminal host has no page of its own to replace.
type Browser struct {
	open Opener
}

func NewBrowser(open Opener) *Browser {
	return &Browser{open: open}
}

func (b *Browser) OpenNew(url string) error {
	return b.launch(ModeOpen, url)
}

func (b *Browser) SetLocation(url string) error {
	return b.launch(ModeNavigate, url)
}

func (b *Browser) launch(mode, url string) error {
	if b.open == nil {
		return ErrNoOpener
	}
	if err := b.open(url); err != nil {
		return fmt.Errorf("%s %s: %w", mode, url, err)
	}
	return nil
}

// Printer is a dry-run navigator that reports navigation instead of performing it.
type Printer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) OpenNew(url string) error {
	return p.write(ModeOpen, url)
}

func (p *Printer) SetLocation(url string) error {
	return p.write(ModeNavigate, url)
}

func (p *Printer) write(mode, url string) error {
	if p.out == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := fmt.Fprintf(p.out, "%s %s\n", mode, strings.TrimSpace(url)); err != nil {
		return fmt.Errorf("could not write navigation: %w", err)
	}
	return nil
}

// Visit is one navigation that went through a Recorder.
type Visit struct {
	Mode string `json:"mode"`
	URL  string `json:"url"`
}

// Recorder wraps a navigator and keeps every successful navigation, tracking
// the current location the way a browser window would.
type Recorder struct {
	next Navigator

	mu       sync.Mutex
	visits   []Visit
	location string
}

func NewRecorder(next Navigator) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) OpenNew(url string) error {
	if err := r.next.OpenNew(url); err != nil {
		return err
	}
	r.record(ModeOpen, url)
	return nil
}

func (r *Recorder) SetLocation(url string) error {
	if err := r.next.SetLocation(url); err != nil {
		return err
	}
	r.record(ModeNavigate, url)
	return nil
}

func (r *Recorder) record(mode, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visits = append(r.visits, Visit{Mode: mode, URL: url})
	if mode == ModeNavigate {
		r.location = url
	}
}

// Visits returns the recorded navigations, oldest first.
func (r *Recorder) Visits() []Visit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Visit(nil), r.visits...)
}

// Location is the last URL the current context was sent to.
func (r *Recorder) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location
}
