package main

import (
	"os"
	"strings"

	"blogtty/internal/cli"
)

func isPostID(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "post-") {
		return false
	}
	// Keep it permissive; ids come from the backend but users paste variants.
	return len(s) > len("post-")
}

// rewriteDirectPostLookupArgs makes `blogtty <post-id>` behave like
// `blogtty posts show <post-id>`. Cobra treats the first non-flag token
// as a subcommand, so we rewrite argv before parsing.
func rewriteDirectPostLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--server": true,
		"--query":  true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token.
		if isPostID(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "posts", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectPostLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
