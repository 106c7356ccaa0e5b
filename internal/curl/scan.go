package curl

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var lineContinuation = regexp.MustCompile(`\\\r?\n[ \t]*`)

// NormalizeLineContinuations joins backslash-continued lines with a single space.
func NormalizeLineContinuations(s string) string {
	return lineContinuation.ReplaceAllString(s, " ")
}

// ExtractCommand returns s from the start of the first curl invocation: the
// first line that begins with `curl ` (after an optional prompt or wrapper such
// as sudo), else the first `curl` word anywhere in the text.
func ExtractCommand(s string) (string, bool) {
	offset := 0
	for _, line := range strings.SplitAfter(s, "\n") {
		if at, ok := curlStart(line); ok {
			return strings.TrimSpace(s[offset+at:]), true
		}
		offset += len(line)
	}

	for _, sp := range scan(s) {
		if !sp.Quoted && sp.Value == cmdCurl {
			return strings.TrimSpace(s[sp.start:]), true
		}
	}
	return "", false
}

// curlStart reports the byte offset of the curl word when line starts a command.
func curlStart(line string) (int, bool) {
	body := strings.TrimRight(line, " \t\r\n")
	rest := stripCurlPrefixes(stripPromptPrefix(body))
	if rest != cmdCurl && !hasCurlWord(rest) {
		return 0, false
	}
	if !strings.HasSuffix(body, rest) {
		return 0, false
	}
	return len(body) - len(rest), true
}

func hasCurlWord(s string) bool {
	if !strings.HasPrefix(s, cmdCurl) || len(s) == len(cmdCurl) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[len(cmdCurl):])
	return isWhitespace(r)
}

func IsStartLine(line string) bool {
	_, ok := curlStart(line)
	return ok
}

// collapseWhitespace squeezes whitespace runs outside quotes into one space.
func collapseWhitespace(s string) string {
	var (
		b       strings.Builder
		st      TokenState
		pending bool
	)
	for i := 0; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		quoted := st.InQuote()
		step := st.advance(s, i)
		n := size + step.skip
		if !quoted && step.action == actFlushBare {
			pending = true
			i += n
			continue
		}
		if pending && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pending = false
		b.WriteString(s[i : i+n])
		i += n
	}
	return b.String()
}

// SplitCommands returns every curl command found in src. A command ends at
// the first line that leaves no quote open and has no trailing backslash.
func SplitCommands(src string) []string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])
		if line == "" || !IsStartLine(line) {
			i++
			continue
		}
		_, e, cmd := commandAt(lines, i)
		if cmd != "" {
			out = append(out, cmd)
		}
		if e <= i {
			i++
		} else {
			i = e + 1
		}
	}
	return out
}

func commandAt(lines []string, cursor int) (start int, end int, cmd string) {
	start = -1
	for i := cursor; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			if i == cursor {
				continue
			}
			break
		}
		if IsStartLine(trimmed) {
			start = i
			break
		}
	}
	if start == -1 {
		return -1, -1, ""
	}

	st := &scanState{}
	var b strings.Builder
	end = start
	for i := start; i < len(lines); i++ {
		line := lines[i]
		openBefore := st.open()
		if strings.TrimSpace(line) == "" && i > start && !openBefore {
			break
		}

		seg := line
		if !openBefore {
			seg = strings.TrimRight(strings.TrimLeft(seg, " \t"), " \t\r")
		}

		cont := lineContinues(seg)
		if cont {
			seg = seg[:len(seg)-1]
		}

		if b.Len() > 0 {
			if openBefore {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}

		b.WriteString(seg)
		st.consume(seg)
		end = i
		if cont || st.open() {
			continue
		}
		break
	}

	return start, end, strings.TrimSpace(b.String())
}

type scanState struct {
	token TokenState
}

func (s *scanState) consume(v string) {
	for i := 0; i < len(v); {
		_, size := utf8.DecodeRuneInString(v[i:])
		step := s.token.advance(v, i)
		i += size + step.skip
	}
}

func (s *scanState) open() bool {
	return s.token.InQuote()
}

func lineContinues(v string) bool {
	if v == "" {
		return false
	}
	count := 0
	for i := len(v) - 1; i >= 0 && v[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}

func stripPromptPrefix(token string) string {
	trimmed := strings.TrimSpace(token)
	for _, prefix := range promptPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			trimmed = strings.TrimSpace(trimmed[len(prefix):])
		}
	}
	return trimmed
}

func stripCurlPrefixes(line string) string {
	line = strings.TrimSpace(line)
	for {
		tok, rest := nextTok(line)
		if tok == "" {
			return ""
		}
		switch strings.ToLower(tok) {
		case cmdSudo, cmdCommand, cmdTime, cmdNoGlob:
			// skip wrapper flags/args so copied shell commands still resolve to the curl token.
			line = stripPrefix(tok, rest)
			continue
		case cmdEnv:
			// consume env exports/options first so we return the actual curl command.
			line = stripEnv(rest)
			continue
		default:
			return line
		}
	}
}

func nextTok(line string) (string, string) {
	line = strings.TrimLeft(line, " \t")
	spans := scan(line)
	if len(spans) == 0 {
		return "", ""
	}
	first := spans[0]
	return first.Value, strings.TrimLeft(line[first.end:], " \t")
}

func stripPrefix(tok, rest string) string {
	switch strings.ToLower(tok) {
	case cmdSudo:
		return stripSudo(rest)
	case cmdCommand:
		return stripCommand(rest)
	case cmdTime:
		return stripTime(rest)
	default:
		return strings.TrimSpace(rest)
	}
}

type stripRule struct {
	optArg     func(string) bool
	skipAssign bool
}

func stripWithRule(line string, rule stripRule) string {
	line = strings.TrimSpace(line)
	for {
		tok, rest := nextTok(line)
		if tok == "" {
			return ""
		}
		if tok == "--" {
			return strings.TrimSpace(rest)
		}
		if strings.HasPrefix(tok, "-") {
			need := false
			if rule.optArg != nil {
				need = rule.optArg(tok)
			}
			line = skipOpt(rest, tok, need)
			continue
		}
		if rule.skipAssign && isAssign(tok) {
			line = rest
			continue
		}
		return line
	}
}

func stripEnv(line string) string {
	return stripWithRule(line, stripRule{optArg: envOptArg, skipAssign: true})
}

func stripSudo(line string) string {
	return stripWithRule(line, stripRule{optArg: sudoOptArg})
}

func stripCommand(line string) string {
	return stripWithRule(line, stripRule{})
}

func stripTime(line string) string {
	return stripWithRule(line, stripRule{optArg: timeOptArg})
}

func isAssign(tok string) bool {
	if tok == "" || strings.HasPrefix(tok, "=") {
		return false
	}
	return strings.Contains(tok, "=")
}

func skipOpt(rest, tok string, need bool) string {
	if !need || hasOptVal(tok) {
		return rest
	}
	_, rest = nextTok(rest)
	return rest
}

func hasOptVal(tok string) bool {
	if strings.HasPrefix(tok, "--") {
		return strings.Contains(tok, "=")
	}
	return len(tok) > shortOptTokenLen && strings.HasPrefix(tok, "-")
}

// wrapperOptArg builds a predicate telling whether a wrapper option takes a
// separate argument.
func wrapperOptArg(long []string, short string) func(string) bool {
	return func(tok string) bool {
		if strings.HasPrefix(tok, "--") {
			name, _, ok := strings.Cut(tok, "=")
			if ok {
				return false
			}
			for _, l := range long {
				if name == l {
					return true
				}
			}
			return false
		}
		if len(tok) == shortOptTokenLen && tok[0] == '-' {
			return strings.IndexByte(short, tok[1]) >= 0
		}
		return false
	}
}

var (
	sudoOptArg = wrapperOptArg([]string{
		"--user", "--group", "--host", "--prompt",
		"--close-from", "--command", "--chdir", "--login-class",
	}, "ughpCcU")
	envOptArg  = wrapperOptArg([]string{"--unset", "--chdir"}, "uC")
	timeOptArg = wrapperOptArg([]string{"--format", "--output"}, "fo")
)
