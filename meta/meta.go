// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains meta information and usage text for the orcaparse tool.

package meta

import (
	"fmt"
	"io"
	"runtime"
)

const Version = "v0.1.0"

// Set at link time with -ldflags "-X orcaparse/meta.GitCommit=...".
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

const Short = "Parser and checker for ORCA quantum chemistry input files"

const Long = `orcaparse reads ORCA input files and prints their syntax tree or
the problems found in them.

It understands the job-control layer (! lines, %blocks, geometry
specifications) and the %compound scripting language.`

// ShowVersion writes the version report.
func ShowVersion(w io.Writer) {
	fmt.Fprintf(w, "orcaparse %s\n", Version)
	fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build Date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go Version: %s\n", runtime.Version())
	fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
