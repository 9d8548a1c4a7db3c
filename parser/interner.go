package parser

// Interner keeps one canonical string per distinct word.
//
// Programs repeat the same few words constantly: variable and function names,
// keywords, operators. Every competing alternative at an offset converts the
// same runes to a string, so interning turns those repeats into a map lookup
// instead of a fresh allocation.
type Interner struct {
	pool map[string]string
}

// NewInterner creates a new interner with the given initial capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical version of the string.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// InternRunes converts a rune slice to a string and interns it.
func (i *Interner) InternRunes(r []rune) string {
	return i.Intern(string(r))
}

// Size returns the number of unique strings in the pool.
func (i *Interner) Size() int {
	return len(i.pool)
}

// Reset clears the pool.
func (i *Interner) Reset() {
	i.pool = make(map[string]string)
}
