package curl

import (
	"strings"
	"testing"
)

func TestNormalizeLineContinuations(t *testing.T) {
	in := "curl http://h \\\n   -H 'A: b' \\\r\n\t-d x"
	got := NormalizeLineContinuations(in)
	want := "curl http://h  -H 'A: b'  -d x"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCollapseWhitespaceKeepsQuotedText(t *testing.T) {
	got := collapseWhitespace("  curl   -d  'a   b\n c'\n  http://h  ")
	want := "curl -d 'a   b\n c' http://h"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExtractCommand(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "  curl http://h", want: "curl http://h"},
		{
			name: "prompt in prose",
			in:   "Here is the request:\n$ curl https://api.test/x\n",
			want: "curl https://api.test/x",
		},
		{name: "sudo wrapper", in: "sudo -u root curl http://h", want: "curl http://h"},
		{name: "env wrapper", in: "env FOO=1 curl http://h", want: "curl http://h"},
		{name: "mid line", in: "then run curl http://h/ now", want: "curl http://h/ now"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractCommand(tc.in)
			if !ok {
				t.Fatalf("expected command to be found")
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestExtractCommandMissing(t *testing.T) {
	for _, in := range []string{"", "wget http://h/", "echo 'curl http://h'"} {
		if got, ok := ExtractCommand(in); ok {
			t.Fatalf("expected no command in %q, got %q", in, got)
		}
	}
}

func TestSplitCommandsBlankLine(t *testing.T) {
	src := "curl https://a.test\n\ncurl https://b.test"
	cmds := SplitCommands(src)
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if !strings.Contains(cmds[0], "https://a.test") {
		t.Fatalf("unexpected first command %q", cmds[0])
	}
	if !strings.Contains(cmds[1], "https://b.test") {
		t.Fatalf("unexpected second command %q", cmds[1])
	}
}

func TestSplitCommandsCurlStart(t *testing.T) {
	src := "curl https://a.test\ncurl https://b.test"
	if cmds := SplitCommands(src); len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
}

func TestSplitCommandsWrappers(t *testing.T) {
	cases := map[string]string{
		"sudo user":      "sudo -u root curl https://a.test\n\ncurl https://b.test",
		"env unset":      "env -u FOO curl https://a.test",
		"time prefix":    "time -p curl https://a.test",
		"command prefix": "command -p curl https://a.test",
	}
	want := map[string]int{"sudo user": 2, "env unset": 1, "time prefix": 1, "command prefix": 1}
	for name, src := range cases {
		if cmds := SplitCommands(src); len(cmds) != want[name] {
			t.Fatalf("%s: expected %d commands, got %d", name, want[name], len(cmds))
		}
	}
}

func TestSplitCommandsMultilineBody(t *testing.T) {
	src := "curl https://a.test -d '{\n\n}'\n\ncurl https://b.test"
	cmds := SplitCommands(src)
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if !strings.Contains(cmds[0], "\n\n") {
		t.Fatalf("expected blank line preserved in first command: %q", cmds[0])
	}
}

func TestSplitCommandsContinuation(t *testing.T) {
	src := "curl https://a.test \\\n  -H 'X: 1'\nnot a command"
	cmds := SplitCommands(src)
	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %d", len(cmds))
	}
	if cmds[0] != "curl https://a.test  -H 'X: 1'" {
		t.Fatalf("unexpected command %q", cmds[0])
	}
}

func TestIsStartLine(t *testing.T) {
	for _, line := range []string{"curl x", "$ curl x", "> curl x", "noglob curl x", "curl"} {
		if !IsStartLine(line) {
			t.Fatalf("expected %q to start a command", line)
		}
	}
	for _, line := range []string{"curly x", "# curl x", "wget x", ""} {
		if IsStartLine(line) {
			t.Fatalf("expected %q not to start a command", line)
		}
	}
}
