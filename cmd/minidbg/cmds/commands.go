package cmds

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/go-delve/minidbg/cmd/minidbg/cmds/helphelpers"
	"github.com/go-delve/minidbg/pkg/config"
	"github.com/go-delve/minidbg/pkg/logflags"
	"github.com/go-delve/minidbg/pkg/proc"
	"github.com/go-delve/minidbg/pkg/proc/native"
	"github.com/go-delve/minidbg/pkg/terminal"
	"github.com/go-delve/minidbg/pkg/version"
)

var (
	// log is whether to log debug statements.
	log bool
	// logOutput is a comma separated list of components that should produce debug output.
	logOutput string
	// logDest is the file path or file descriptor where logs should go.
	logDest string
	// initFile is the path to initialization file.
	initFile string
	// workingDir is the working directory for running the program.
	workingDir string
	// disableASLR is used to disable ASLR
	disableASLR bool
	// tty is used to provide an alternate TTY for the program you wish to debug.
	tty string

	// rootCommand is the root of the command tree.
	rootCommand *cobra.Command

	conf *config.Config
)

const minidbgCommandLongDesc = `minidbg is a minimal debugger for Linux programs.

minidbg starts a program under ptrace, stops it right after exec, and lets you
inspect and modify its general purpose registers and resume it.

Pass flags to the program you are debugging using ` + "`--`" + `, for example:

` + "`minidbg exec ./hello -- server --config conf/config.toml`"

// New returns an initialized command tree.
func New(docCall bool) *cobra.Command {
	// Config setup and load.
	if docCall {
		conf = &config.Config{}
	} else {
		conf = config.LoadConfig()
	}

	// Main minidbg root command.
	rootCommand = &cobra.Command{
		Use:   "minidbg [path/to/binary]",
		Short: "minidbg is a minimal ptrace based debugger.",
		Long:  minidbgCommandLongDesc,
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				cmd.Help()
				return
			}
			os.Exit(execCmd(cmd, args))
		},
	}

	rootCommand.PersistentFlags().BoolVarP(&log, "log", "", false, "Enable debugger logging.")
	rootCommand.PersistentFlags().StringVarP(&logOutput, "log-output", "", "", `Comma separated list of components that should produce debug output (see 'minidbg help log')`)
	rootCommand.PersistentFlags().StringVarP(&logDest, "log-dest", "", "", "Writes logs to the specified file or file descriptor (see 'minidbg help log').")

	rootCommand.PersistentFlags().StringVar(&initFile, "init", "", "Init file, executed before the first prompt.")
	rootCommand.PersistentFlags().StringVar(&workingDir, "wd", "", "Working directory for running the program.")
	rootCommand.PersistentFlags().BoolVarP(&disableASLR, "disable-aslr", "", false, "Disables address space randomization")
	rootCommand.PersistentFlags().StringVar(&tty, "tty", "", "TTY to use for the target program")

	defaultUsageFn := rootCommand.UsageFunc()
	rootCommand.SetUsageFunc(func(cmd *cobra.Command) error {
		helphelpers.Prepare(cmd)
		return defaultUsageFn(cmd)
	})

	// 'exec' subcommand.
	execCommand := &cobra.Command{
		Use:   "exec <path/to/binary>",
		Short: "Execute a binary, and begin a debug session.",
		Long: `Execute a binary and begin a debug session.

This command will cause minidbg to exec the binary under ptrace and stop it
before its first instruction runs. At the debugger> prompt the following
commands are available:

	continue (or any prefix of it, including an empty line)
	register read <register>
	register write <register> <value>

Ctrl-C or Ctrl-D at the prompt ends the session, killing the program.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("you must provide a path to a binary")
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(execCmd(cmd, args))
		},
	}
	rootCommand.AddCommand(execCommand)

	// 'version' subcommand.
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Prints version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("minidbg\n%s\n", version.MinidbgVersion)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				fmt.Printf("%s\n", version.BuildInfo())
			}
		},
	}
	versionCommand.Flags().BoolP("verbose", "v", false, "print verbose version info")
	rootCommand.AddCommand(versionCommand)

	rootCommand.AddCommand(&cobra.Command{
		Use:   "log",
		Short: "Help about logging flags.",
		Long: `Logging can be enabled by specifying the --log flag and using the
--log-output flag to select which components should produce logs.

The argument of --log-output must be a comma separated list of component
names selected from this list:


	debugger	Log debugger commands and target events (default)
	ptrace		Log every ptrace and wait call
	terminal	Log line editor and history handling

Additionally --log-dest can be used to specify where the logs should be
written.
If the argument is a number it will be interpreted as a file descriptor,
otherwise as a file path.

`,
	})

	rootCommand.DisableAutoGenTag = true

	return rootCommand
}

// execCmd launches args[0] with the remaining arguments, including the
// ones after "--", passed to it.
func execCmd(cmd *cobra.Command, args []string) int {
	return execute(args, conf)
}

func launchFlags(conf *config.Config) native.LaunchFlags {
	var flags native.LaunchFlags
	if disableASLR || (conf != nil && conf.DisableASLR) {
		flags |= native.LaunchDisableASLR
	}
	return flags
}

func execute(processArgs []string, conf *config.Config) int {
	if err := logflags.Setup(log, logOutput, logDest); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer logflags.Close()

	// every ptrace request must come from the thread that launched the target
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p, err := native.Launch(processArgs, workingDir, launchFlags(conf), tty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	term := terminal.New(proc.NewTarget(p), conf)
	term.InitFile = initFile
	status, err := term.Run()
	return finish(os.Stderr, p, status, err)
}

// killer is the part of *native.Process used to end a session.
type killer interface {
	Exited() bool
	Kill() error
}

// finish kills the target if it is still alive and reports err.
func finish(stderr io.Writer, p killer, status int, err error) int {
	if err != nil {
		fmt.Fprintln(stderr, err)
	}
	if !p.Exited() {
		if kerr := p.Kill(); kerr != nil {
			logflags.DebuggerLogger().Errorf("could not kill target: %v", kerr)
			if status == 0 {
				status = 1
			}
		}
	}
	return status
}
