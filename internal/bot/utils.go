package bot

import (
	"fmt"
	"strings"

	"github.com/lithammer/dedent"
)

func formatReplyText(text string, a ...any) string {
	return fmt.Sprintf(strings.TrimSpace(dedent.Dedent(text)), a...)
}

// parseCommand splits a command message into the command and its arguments.
// A "@botname" suffix, used in group chats, is dropped from the command.
func parseCommand(s string) (string, []string) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return "", nil
	}
	command, _, _ := strings.Cut(parts[0], "@")
	return command, parts[1:]
}
