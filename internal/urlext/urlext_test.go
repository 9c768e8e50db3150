package urlext

import "testing"

func TestJoin(t *testing.T) {
	cases := []struct {
		name  string
		parts []string
		want  string
	}{
		{name: "prefix with trailing slash", parts: []string{"/hub/", "home"}, want: "/hub/home"},
		{name: "base url logout", parts: []string{"/user/alice/", "logout"}, want: "/user/alice/logout"},
		{name: "named server", parts: []string{"/hub/", "spawn", "alice", "gpu1"}, want: "/hub/spawn/alice/gpu1"},
		{name: "empty segments skipped", parts: []string{"/hub/", "spawn", "", ""}, want: "/hub/spawn"},
		{name: "no separators", parts: []string{"hub", "spawn"}, want: "hub/spawn"},
		{name: "doubled slashes collapse", parts: []string{"/hub//", "/spawn/"}, want: "/hub/spawn/"},
		{name: "dot segments resolve", parts: []string{"/hub/./x/../", "home"}, want: "/hub/home"},
		{name: "trailing slash kept", parts: []string{"/hub", "api/"}, want: "/hub/api/"},
		{name: "empty prefix", parts: []string{"", "home"}, want: "home"},
		{name: "all empty", parts: []string{"", ""}, want: ""},
		{name: "no parts", parts: nil, want: ""},
		{name: "dot collapses to empty", parts: []string{"a", ".."}, want: ""},
		{name: "root", parts: []string{"/"}, want: "/"},
		{name: "absolute url", parts: []string{"https://hub.example.com/hub/", "home"}, want: "https://hub.example.com/hub/home"},
		{name: "absolute url without path", parts: []string{"https://hub.example.com", "home"}, want: "https://hub.example.com/home"},
		{name: "origin only", parts: []string{"https://hub.example.com"}, want: "https://hub.example.com"},
		{name: "schemeless origin", parts: []string{"//hub.example.com/hub", "home"}, want: "//hub.example.com/hub/home"},
		{name: "already encoded kept", parts: []string{"/hub/", "spawn", "a%40b", "my%20server"}, want: "/hub/spawn/a%40b/my%20server"},
	}
	for _, tc := range cases {
		if got := Join(tc.parts...); got != tc.want {
			t.Fatalf("%s: Join(%q)=%q want=%q", tc.name, tc.parts, got, tc.want)
		}
	}
}

func TestJoinIsDeterministic(t *testing.T) {
	first := Join("/hub/", "spawn", "alice", "gpu1")
	second := Join("/hub/", "spawn", "alice", "gpu1")
	if first != second {
		t.Fatalf("expected identical output, got %q and %q", first, second)
	}
}
