//go:build windows

package engine

import (
	"golang.org/x/sys/windows"
)

func libFileName(stem string) string {
	return stem + ".dll"
}

// openLibrary opens path with the default DLL load flags.
func openLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibrary(path)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

func hasSymbol(lib uintptr, name string) bool {
	proc, err := windows.GetProcAddress(windows.Handle(lib), name)
	return err == nil && proc != 0
}
