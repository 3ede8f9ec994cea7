package writers

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// IsBrokenPipe reports whether err means the consumer of our stdout went
// away (e.g. `plumetab | head`). Such runs should exit cleanly, not fail.
func IsBrokenPipe(err error) bool {
	return err != nil &&
		(errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed))
}
