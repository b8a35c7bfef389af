package dialect

import (
	"regexp"
	"strings"
)

var coffeeRequireCall = regexp.MustCompile(`\brequire[ \t]+('[^'\n]*'|"[^"\n]*")`)

// CompileCoffeeScript lowers CoffeeScript just far enough for require
// scanning: comments are dropped and paren-less calls such as
// require './x' become require('./x'). It is not a CoffeeScript compiler;
// everything else is passed through untouched.
func CompileCoffeeScript(_ string, source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	inBlockComment := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inBlockComment {
			if strings.HasSuffix(trimmed, "###") {
				inBlockComment = false
			}
			continue
		}
		if opensBlockComment(trimmed) {
			// "### note ###" opens and closes on the same line.
			inBlockComment = !strings.HasSuffix(trimmed[3:], "###")
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		out = append(out, coffeeRequireCall.ReplaceAllString(line, "require($1)"))
	}

	return strings.Join(out, "\n"), nil
}

// opensBlockComment reports whether a trimmed line starts a ### block. A run
// of four or more hashes is an ordinary line comment.
func opensBlockComment(trimmed string) bool {
	return trimmed == "###" || (strings.HasPrefix(trimmed, "###") && trimmed[3] != '#')
}
