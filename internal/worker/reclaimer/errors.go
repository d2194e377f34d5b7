package reclaimer

import "errors"

var errPanic = errors.New("reclaimer: scan panicked")
