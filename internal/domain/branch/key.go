package branch

// Key is the opaque identifier selecting the operational context every
// ledger call runs against. Callers thread it explicitly; there is no
// ambient "current branch".
type Key string

// IsZero reports whether the key is unset
func (k Key) IsZero() bool {
	return k == ""
}

// String returns the string form of the key
func (k Key) String() string {
	return string(k)
}
