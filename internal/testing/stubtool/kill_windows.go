//go:build windows

package stubtool

import "os"

func selfKill() {
	os.Exit(1)
}
