//go:build !linux && !darwin && !freebsd && !openbsd && !dragonfly && !windows

package diskusage

// Usage is not available on this platform.
func Usage(string) (Stats, error) {
	return Stats{}, ErrUnsupported
}
