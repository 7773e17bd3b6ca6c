package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// walkCommands visits cmd and then each descendant, parents first.
func walkCommands(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, sub := range cmd.Commands() {
		walkCommands(sub, fn)
	}
}

// enrichParentLong lists a group's commands, with their aliases, under its
// description. The root keeps cobra's own listing.
func enrichParentLong(cmd *cobra.Command) {
	if cmd == cmd.Root() || !cmd.HasAvailableSubCommands() {
		return
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(cmd.Long, "\n"))
	sb.WriteString("\n\nCommands:\n")
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() {
			continue
		}
		name := sub.Name()
		if len(sub.Aliases) > 0 {
			name += " (" + strings.Join(sub.Aliases, ", ") + ")"
		}
		fmt.Fprintf(&sb, "  %-18s %s\n", name, sub.Short)
	}
	fmt.Fprintf(&sb, "\nRun '%s <command> --help' for the flags of each.", cmd.CommandPath())

	cmd.Long = sb.String()
}
