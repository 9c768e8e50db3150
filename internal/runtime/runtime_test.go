package runtime

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestBrowserInvocationPlatformDefault(t *testing.T) {
	t.Setenv("BROWSER", "")
	name, args := browserInvocation("https://hub.example.com/hub/home", "")

	switch runtime.GOOS {
	case "darwin":
		if name != "open" {
			t.Fatalf("expected open, got %q", name)
		}
	case "windows":
		if name != "rundll32" || len(args) != 2 {
			t.Fatalf("expected rundll32 invocation, got %q %#v", name, args)
		}
	default:
		if name != "xdg-open" {
			t.Fatalf("expected xdg-open, got %q", name)
		}
	}
	if args[len(args)-1] != "https://hub.example.com/hub/home" {
		t.Fatalf("expected url as last argument, got %#v", args)
	}
}

func TestBrowserInvocationExplicitLauncher(t *testing.T) {
	name, args := browserInvocation("https://h/x", "firefox --new-tab")
	if name != "firefox" {
		t.Fatalf("expected firefox, got %q", name)
	}
	if len(args) != 2 || args[0] != "--new-tab" || args[1] != "https://h/x" {
		t.Fatalf("unexpected args %#v", args)
	}
}

func TestBrowserInvocationPlaceholder(t *testing.T) {
	name, args := browserInvocation("https://h/x", "chromium --app=%s")
	if name != "chromium" || len(args) != 1 || args[0] != "--app=https://h/x" {
		t.Fatalf("unexpected invocation %q %#v", name, args)
	}
}

func TestBrowserInvocationKeepsTargetAsOneArgument(t *testing.T) {
	target := "https://hub.example.com/hub/spawn/jane doe/gpu 1"
	cases := []struct {
		name     string
		browser  string
		wantName string
		wantArgs []string
	}{
		{name: "appended", browser: "firefox --new-tab", wantName: "firefox", wantArgs: []string{"--new-tab", target}},
		{name: "placeholder", browser: "chromium --app=%s", wantName: "chromium", wantArgs: []string{"--app=" + target}},
		{name: "bare placeholder", browser: "open -a Safari %s", wantName: "open", wantArgs: []string{"-a", "Safari", target}},
	}
	for _, tc := range cases {
		name, args := browserInvocation(target, tc.browser)
		if name != tc.wantName {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.wantName, name)
		}
		if len(args) != len(tc.wantArgs) {
			t.Fatalf("%s: unexpected args %#v", tc.name, args)
		}
		for idx := range args {
			if args[idx] != tc.wantArgs[idx] {
				t.Fatalf("%s: arg[%d]=%q want=%q", tc.name, idx, args[idx], tc.wantArgs[idx])
			}
		}
	}
}

func TestBrowserInvocationUsesBrowserEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("launcher script test is unix-specific")
	}
	dir := t.TempDir()
	launcher := filepath.Join(dir, "mybrowser")
	if err := os.WriteFile(launcher, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write launcher: %v", err)
	}
	t.Setenv("BROWSER", filepath.Join(dir, "missing")+string(filepath.ListSeparator)+launcher)

	name, args := browserInvocation("https://h/x", "")
	if name != launcher {
		t.Fatalf("expected %q, got %q", launcher, name)
	}
	if len(args) != 1 || args[0] != "https://h/x" {
		t.Fatalf("unexpected args %#v", args)
	}
}

func TestOpenURLRejectsEmptyAndControlCharacters(t *testing.T) {
	if err := OpenURL("  ", ""); err == nil {
		t.Fatalf("expected error for empty url")
	}
	if err := OpenURL("https://h/x\nrm", ""); err == nil {
		t.Fatalf("expected error for url with newline")
	}
}

func TestOpenURLWrapsLaunchFailure(t *testing.T) {
	previous := startProcess
	launchErr := errors.New("no display")
	startProcess = func(string, []string) error { return launchErr }
	t.Cleanup(func() {
		startProcess = previous
	})

	err := OpenURL("https://h/x", "firefox")
	if !errors.Is(err, launchErr) {
		t.Fatalf("expected wrapped launch error, got %v", err)
	}
}

func TestOpenURLPassesInvocation(t *testing.T) {
	previous := startProcess
	var gotName string
	var gotArgs []string
	startProcess = func(name string, args []string) error {
		gotName, gotArgs = name, args
		return nil
	}
	t.Cleanup(func() {
		startProcess = previous
	})

	if err := OpenURL(" https://h/x ", "firefox"); err != nil {
		t.Fatalf("OpenURL failed: %v", err)
	}
	if gotName != "firefox" || len(gotArgs) != 1 || gotArgs[0] != "https://h/x" {
		t.Fatalf("unexpected invocation %q %#v", gotName, gotArgs)
	}
}

func TestIsInteractiveUsesHook(t *testing.T) {
	previous := stdinIsInteractive
	stdinIsInteractive = func() bool { return true }
	t.Cleanup(func() {
		stdinIsInteractive = previous
	})
	if !IsInteractive() {
		t.Fatalf("expected hook result to be returned")
	}
}
