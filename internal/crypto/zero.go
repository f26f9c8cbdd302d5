package crypto

import "runtime"

// Zero overwrites b with zeros. Use it on keys once they are no longer needed.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
