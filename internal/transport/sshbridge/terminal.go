package sshbridge

import "golang.org/x/term"

// RawPassthrough puts fd (typically os.Stdin.Fd()) into raw terminal mode
// for the duration of an interactive passthrough shell run alongside a
// Bridge, returning a function that restores the prior state. Grounded on
// examples/sshClient.go's term.MakeRaw/term.Restore dance.
func RawPassthrough(fd int) (restore func() error, err error) {
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, oldState) }, nil
}

// TerminalSize returns fd's current width and height, used to size the
// PTY request an interactive passthrough session issues alongside the
// bridged bus traffic.
func TerminalSize(fd int) (width, height int, err error) {
	return term.GetSize(fd)
}
