package curl

import (
	"strings"
)

type cmdReader struct {
	tok []Token
	i   int
	exp []string
}

// take returns the token at i and records it when it needs a shell warning.
func (r *cmdReader) take(i int) string {
	v := r.tok[i].Value
	if hasShellExpansion(v) {
		r.exp = append(r.exp, v)
	}
	return v
}

// next consumes the token after the cursor as an option value.
func (r *cmdReader) next() (string, bool) {
	if r.i+1 >= len(r.tok) {
		return "", false
	}
	r.i++
	return r.take(r.i), true
}

func (r *cmdReader) flush(items []Item) []Item {
	if len(r.exp) == 0 {
		return items
	}
	if len(items) == 0 {
		items = []Item{{}}
	}
	items[0].Expand = r.exp
	r.exp = nil
	return items
}

// parseCmd walks the tokens after `curl` and sorts them into options and
// positionals. Unknown options are dropped; options missing their value at the
// end of the command are dropped too.
func parseCmd(tok []Token) *Cmd {
	cmd := &Cmd{}
	r := &cmdReader{tok: tok}
	posOnly := false

	for r.i = 1; r.i < len(tok); r.i++ {
		t := r.take(r.i)

		var items []Item
		switch {
		case !posOnly && t == "--":
			posOnly = true
		case !posOnly && strings.HasPrefix(t, "--"):
			if it, ok := parseLong(t, r); ok {
				items = append(items, it)
			}
		case !posOnly && strings.HasPrefix(t, "-") && t != "-":
			items = parseShort(t, r)
		default:
			items = append(items, Item{Pos: t})
		}
		cmd.Items = append(cmd.Items, r.flush(items)...)
	}
	return cmd
}

func parseLong(t string, r *cmdReader) (Item, bool) {
	name, val, hasVal := splitLong(t)
	if name == "" {
		return Item{}, false
	}

	def := longDefs[name]
	if def == nil {
		return Item{}, false
	}

	if def.kind == optVal && !hasVal {
		nv, ok := r.next()
		if !ok {
			return Item{}, false
		}
		val = nv
	}

	return optItem(def.key, val, "--"+name), true
}

func splitLong(t string) (string, string, bool) {
	if !strings.HasPrefix(t, "--") || len(t) < 3 {
		return "", "", false
	}

	raw := t[2:]
	if idx := strings.Index(raw, "="); idx >= 0 {
		return raw[:idx], raw[idx+1:], true
	}
	return raw, "", false
}

// parseShort handles "-X VAL", "-XVAL" and bundles such as "-sSL".
func parseShort(t string, r *cmdReader) []Item {
	raw := t[1:]
	var its []Item

	for j := 0; j < len(raw); j++ {
		ch := rune(raw[j])
		def := shortDefs[ch]
		if def == nil {
			continue
		}

		flag := "-" + string(ch)
		if def.kind == optNone {
			its = append(its, optItem(def.key, "", flag))
			continue
		}

		val := ""
		if j+1 < len(raw) {
			val = raw[j+1:]
		} else {
			nv, ok := r.next()
			if !ok {
				break
			}
			val = nv
		}
		its = append(its, optItem(def.key, val, flag))
		break
	}
	return its
}

func optItem(key, val, flag string) Item {
	return Item{Opt: Opt{Key: key, Val: val, Flag: flag}, IsOpt: true}
}
