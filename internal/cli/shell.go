package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/scriptfs/internal/tui"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run a line-oriented session over one shared cache",
	Long: `Read commands from stdin and run them against a single provider, so
listings stay cached between commands and every change event is printed as
it is published. Type "help" for the command list.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

const shellHelp = `Commands:
  ls                     list the current directory
  cd <dir>               change directory (.. for parent)
  new <name> [content]   create <name>.js
  mkdir <name>           create a folder
  rename <path> <name>   rename a script or folder
  rm <path>              delete a script or folder
  refresh [dir]          invalidate one listing, or all of them
  cached                 list cached directories
  help                   show this help
  exit                   leave the shell`

var errShellExit = errors.New("exit")

// shell holds the state of an interactive session.
type shell struct {
	s   *session
	out io.Writer
}

func runShell(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	sh := &shell{s: s, out: cmd.OutOrStdout()}

	p := s.registry.Default()
	printer := scriptfs.NewObserverFunc(func(ev scriptfs.ChangeEvent) {
		fmt.Fprintln(sh.out, tui.WarningStyle.Render("* "+ev.String()))
	})
	p.Subscribe(printer)
	defer p.Unsubscribe(printer)
	p.Entries(s.ops.CurrentDirectory())

	in := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprintf(sh.out, "%s> ", sh.s.ops.CurrentDirectory())
		if !in.Scan() {
			fmt.Fprintln(sh.out)
			return in.Err()
		}
		err := sh.exec(strings.Fields(in.Text()))
		if errors.Is(err, errShellExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(sh.out, tui.ErrorStyle.Render(tui.SymbolCross+" "+err.Error()))
		}
	}
}

func (sh *shell) exec(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	name, args := fields[0], fields[1:]
	ops := sh.s.ops
	p := sh.s.registry.Default()

	switch name {
	case "exit", "quit":
		return errShellExit
	case "help":
		fmt.Fprintln(sh.out, shellHelp)
	case "ls":
		printEntries(sh.out, p.Entries(ops.CurrentDirectory()), false)
	case "cd":
		if len(args) != 1 {
			return errors.New("usage: cd <dir>")
		}
		target := resolvePath(ops.CurrentDirectory(), args[0])
		info, err := sh.s.fs.Stat(target)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%s: not a directory", args[0])
		}
		sh.s.ops = ops.In(target)
		// cache the listing so changes made here are reported
		p.Entries(target)
	case "new":
		if len(args) == 0 {
			return errors.New("usage: new <name> [content]")
		}
		_, err := ops.NewScriptFile(args[0], strings.Join(args[1:], " "))
		return err
	case "mkdir":
		if len(args) != 1 {
			return errors.New("usage: mkdir <name>")
		}
		_, err := ops.NewDirectory(args[0])
		return err
	case "rename":
		if len(args) != 2 {
			return errors.New("usage: rename <path> <name>")
		}
		file, err := sh.s.entry(args[0])
		if err != nil {
			return err
		}
		_, err = ops.Rename(file, args[1])
		return err
	case "rm":
		if len(args) != 1 {
			return errors.New("usage: rm <path>")
		}
		file, err := sh.s.entry(args[0])
		if err != nil {
			return err
		}
		return ops.Delete(file)
	case "refresh":
		if len(args) == 0 {
			p.RefreshAll()
			return nil
		}
		p.NotifyDirectoryChanged(resolvePath(ops.CurrentDirectory(), args[0]))
	case "cached":
		for _, dir := range p.CachedDirectories() {
			fmt.Fprintln(sh.out, dir)
		}
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
	return nil
}
