package cascade

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках каскадной отмены
	ErrInternal = errors.New("cascade: internal error")
)
