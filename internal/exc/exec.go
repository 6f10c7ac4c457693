// Package exc locates helper programs in the system directories only, $PATH
// is not consulted.
package exc

import (
	"os"
	"sync"

	"github.com/srlehn/fbsplash/internal/errors"
)

var systemDirs = []string{
	`/usr/bin/`,
	`/bin/`,
	`/usr/sbin/`,
	`/sbin/`,
}

var (
	// key: rel. path, value: abs. path
	exePaths   = make(map[string]string)
	exePathsMu sync.Mutex
)

func LookSystemDirs(exe string) (string, error) {
	return lookDirs(exe, systemDirs)
}

func lookDirs(exe string, dirs []string) (string, error) {
	if len(exe) == 0 {
		return ``, errors.New(`empty executable name`)
	}
	exePathsMu.Lock()
	defer exePathsMu.Unlock()
	if exeAbs, ok := exePaths[exe]; ok && len(exeAbs) > 0 && exeAbs[0] == '/' {
		return exeAbs, nil
	}
	for _, dir := range dirs {
		exeAbs := dir + exe
		fi, err := os.Stat(exeAbs)
		if err != nil || fi == nil || fi.IsDir() {
			continue
		}
		// check if executable for others
		if fi.Mode()&0b001 == 0b001 {
			exePaths[exe] = exeAbs
			return exeAbs, nil
		}
	}
	return ``, errors.Errorf(`executable %q not found in system directories`, exe)
}
