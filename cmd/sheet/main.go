package main

import (
	"os"
	"strings"

	"sheet-cli/internal/cli"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// isTopicID matches locally minted topic ids (UUIDs).
func isTopicID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

// rewriteDirectTopicArgs lets `sheet <topic-id>` work like `sheet stats --topic <topic-id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
// parsing. Persistent flags may come first (`sheet --dir ... <topic-id>`), so this looks
// for the first positional token rather than argv[1].
func rewriteDirectTopicArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":       true,
		"--workspace": true,
		"--format":    true,
		"--log-level": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "stats", "--topic")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isTopicID(argv[i+1]) {
				out := make([]string, 0, len(argv)+2)
				out = append(out, argv[:i]...)
				out = append(out, "stats", "--topic", argv[i+1])
				return append(out, argv[i+2:]...)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if isTopicID(a) {
			return rewrite(i)
		}
		return argv
	}
	return argv
}

func main() {
	// A .env in the working directory may carry SHEET_* settings; it is optional.
	_ = godotenv.Load()

	os.Args = rewriteDirectTopicArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
