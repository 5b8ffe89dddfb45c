//go:build !unix && !windows

package update

import (
	"io/fs"
	"os/exec"
)

func setDetached(*exec.Cmd) {}

func isExecutable(_ string, info fs.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}
