package cmd

import "strings"

// listFlags take zero or more space-separated values, e.g. `-i a b c`.
var listFlags = map[string]bool{
	"-i": true, "--include": true,
	"-e": true, "--exclude": true,
	"-x": true, "--ignore": true,
}

// expandListFlags rewrites argv so that every value following a list flag,
// up to the next token starting with "-", is passed as a repeated flag:
// `-i a b -l go` becomes `-i a -i b -l go`. A list flag with no values is
// dropped. Everything after "--" is left untouched.
func expandListFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if !listFlags[arg] {
			out = append(out, arg)
			continue
		}
		for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, arg, args[i])
		}
	}
	return out
}
