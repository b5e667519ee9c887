package helphelpers

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func newTree() (*cobra.Command, *cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "minidbg"}
	root.PersistentFlags().String("wd", "", "")
	root.PersistentFlags().String("init", "", "")
	root.PersistentFlags().Bool("log", false, "")
	exec := &cobra.Command{Use: "exec", Run: func(*cobra.Command, []string) {}}
	version := &cobra.Command{Use: "version", Run: func(*cobra.Command, []string) {}}
	version.Flags().Bool("verbose", false, "")
	root.AddCommand(exec, version)
	return root, exec, version
}

func TestPrepareHidesLaunchFlags(t *testing.T) {
	root, _, version := newTree()
	Prepare(version)
	assert.True(t, root.PersistentFlags().Lookup("wd").Hidden)
	assert.True(t, root.PersistentFlags().Lookup("init").Hidden)
	assert.False(t, root.PersistentFlags().Lookup("log").Hidden)
	assert.True(t, version.Flags().Lookup("verbose").Hidden)
}

func TestPrepareKeepsExecFlags(t *testing.T) {
	root, exec, _ := newTree()
	Prepare(exec)
	assert.False(t, root.PersistentFlags().Lookup("wd").Hidden)
	assert.False(t, root.PersistentFlags().Lookup("init").Hidden)
}
