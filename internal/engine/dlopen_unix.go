//go:build darwin || freebsd || linux

package engine

import (
	"runtime"

	"github.com/ebitengine/purego"
)

// libFileName returns the platform spelling of a shared library stem.
func libFileName(stem string) string {
	if runtime.GOOS == "darwin" {
		return stem + ".dylib"
	}
	return stem + ".so"
}

// openLibrary opens path with global symbol visibility so a companion
// runtime library loaded beforehand is resolvable by the engine library.
func openLibrary(path string) (uintptr, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, err
	}
	return lib, nil
}

// hasSymbol reports whether the library exports name.
func hasSymbol(lib uintptr, name string) bool {
	sym, err := purego.Dlsym(lib, name)
	return err == nil && sym != 0
}
