package internal

// Flags is the bitflag word shared by Cells and Subscriptions.
type Flags uint16

const (
	FlagEnabled Flags = 1 << iota
	FlagDisposed
	FlagDirty
	FlagQueued
	FlagShallow
)

func (f Flags) has(flag Flags) bool   { return f&flag != 0 }
func (f *Flags) set(flag Flags)       { *f |= flag }
func (f *Flags) clear(flag Flags)     { *f &^= flag }
func (f *Flags) assign(flag Flags, v bool) {
	if v {
		f.set(flag)
	} else {
		f.clear(flag)
	}
}
