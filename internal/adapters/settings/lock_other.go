//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly)

package settings

func withFileLock(_ string, fn func() error) error {
	return fn()
}
