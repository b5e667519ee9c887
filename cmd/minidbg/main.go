package main

import (
	"github.com/go-delve/minidbg/cmd/minidbg/cmds"
	"github.com/go-delve/minidbg/pkg/version"
)

// Build is the git sha of this binaries build.
var Build string

func main() {
	if Build != "" {
		version.MinidbgVersion.Build = Build
	}
	cmds.New(false).Execute()
}
