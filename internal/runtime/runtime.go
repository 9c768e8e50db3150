package runtime

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

var stdinIsInteractive = isStdinInteractive

var startProcess = func(name string, args []string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	// The launcher hands the URL to the desktop and exits on its own.
	go func() { _ = cmd.Wait() }()
	return nil
}

// OpenURL hands target to the system browser. browser overrides the launcher
// command; when empty, $BROWSER and then the platform default are used.
func OpenURL(target string, browser string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("url cannot be empty")
	}
	if strings.ContainsAny(target, "\x00\n\r") {
		return fmt.Errorf("url contains invalid control characters")
	}
	name, args := browserInvocation(target, browser)
	if err := startProcess(name, args); err != nil {
		return fmt.Errorf("could not launch browser %s: %w", name, err)
	}
	return nil
}

func browserInvocation(target string, browser string) (string, []string) {
	if name, args := launcherFromTemplate(browser, target); name != "" {
		return name, args
	}
	if name, args := launcherFromEnv(target); name != "" {
		return name, args
	}

	switch runtime.GOOS {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// launcherFromTemplate splits template into argv before substituting %s, so
// the target always stays a single argument. Without a placeholder the target
// is appended.
func launcherFromTemplate(template string, target string) (string, []string) {
	fields := strings.Fields(template)
	if len(fields) == 0 {
		return "", nil
	}
	substituted := false
	for idx, field := range fields {
		if strings.Contains(field, "%s") {
			fields[idx] = strings.ReplaceAll(field, "%s", target)
			substituted = true
		}
	}
	if !substituted {
		fields = append(fields, target)
	}
	return fields[0], fields[1:]
}

// launcherFromEnv follows the $BROWSER convention: a colon-separated list of
// commands, the first one found on PATH wins.
func launcherFromEnv(target string) (string, []string) {
	raw := strings.TrimSpace(os.Getenv("BROWSER"))
	if raw == "" {
		return "", nil
	}
	for _, candidate := range strings.Split(raw, string(filepath.ListSeparator)) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		fields := strings.Fields(candidate)
		if _, err := exec.LookPath(fields[0]); err != nil {
			continue
		}
		return launcherFromTemplate(candidate, target)
	}
	return "", nil
}

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return stdinIsInteractive()
}

func isStdinInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
