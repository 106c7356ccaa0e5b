package curl

import "fmt"

// ParseAll parses every curl command in src. Text without a recognisable
// command start line is handed to Parse as a whole.
func ParseAll(src string) ([]*Result, error) {
	return ParseAllWith(src, Parse)
}

// ParseAllWith is ParseAll with a caller-supplied parse step, used to wrap
// each command's parse (tracing, timing). The first failure stops the run.
func ParseAllWith(src string, parse func(string) (*Result, error)) ([]*Result, error) {
	cmds := SplitCommands(src)
	if len(cmds) == 0 {
		res, err := parse(src)
		if err != nil {
			return nil, err
		}
		return []*Result{res}, nil
	}

	out := make([]*Result, 0, len(cmds))
	for i, cmd := range cmds {
		res, err := parse(cmd)
		if err != nil {
			return nil, fmt.Errorf("curl command %d: %w", i+1, err)
		}
		out = append(out, res)
	}
	return out, nil
}
