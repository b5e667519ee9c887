package helphelpers

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// launchFlags only apply to commands that start a target.
var launchFlags = []string{"wd", "init", "disable-aslr", "tty"}

// Prepare prepares cmd flag set for the invocation of its usage function by
// hiding flags that we want cobra to parse but we don't want to show to the
// user.
// The launch flags are persistent flags of the root command, so that
//
//	minidbg --wd /tmp exec ./prog
//
// parses, but they mean nothing to the help topics.
//
// Prepare is a destructive command, cmd can not be reused after it has been
// called.
func Prepare(cmd *cobra.Command) {
	switch cmd.Name() {
	case "help", "version":
		hideAllFlags(cmd)
		fallthrough
	case "log":
		for _, name := range launchFlags {
			hideFlag(cmd, name)
		}
	case "minidbg", "exec":
		// All flags apply
	}
}

func hideAllFlags(cmd *cobra.Command) {
	cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Hidden = true
	})
}

func hideFlag(cmd *cobra.Command, name string) {
	if cmd == nil {
		return
	}
	flag := cmd.PersistentFlags().Lookup(name)
	if flag != nil {
		flag.Hidden = true
		return
	}
	hideFlag(cmd.Parent(), name)
}
