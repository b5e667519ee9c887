package terminal

import (
	"sort"

	"github.com/derekparker/trie"
	"github.com/go-delve/liner"

	"github.com/go-delve/minidbg/pkg/proc"
)

// newCompleter returns a liner completer offering every command word and
// register name that extends the current line.
func newCompleter() liner.Completer {
	t := trie.New()
	t.Add(continueKeyword, nil)
	for _, sub := range []string{"read", "write"} {
		prefix := "register " + sub + " "
		t.Add(prefix, nil)
		for _, name := range proc.RegisterNames() {
			t.Add(prefix+name, nil)
		}
	}
	return func(line string) []string {
		c := t.PrefixSearch(line)
		sort.Strings(c)
		return c
	}
}
