package curl

// Cmd is the option-level view of one curl invocation: every token after
// `curl` becomes either a recognised option (with its value) or a positional.
type Cmd struct {
	Items []Item
}

type Item struct {
	Opt   Opt
	Pos   string
	IsOpt bool
	// Expand holds tokens of this item that contain unevaluated shell expansion.
	Expand []string
}

// empty reports an item that only carries warnings (unknown or incomplete flags).
func (it Item) empty() bool {
	return !it.IsOpt && it.Pos == ""
}

type Opt struct {
	Key  string
	Val  string
	Flag string // spelling as written, e.g. "-d" or "--data-raw"
}
