package services

// ErrorKind is the closed set of failure categories callers can rely on,
// independent of the store's native errors.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindDatabase
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindDatabase:
		return "database"
	default:
		return "unknown"
	}
}

// Error is the domain error returned by every service operation that fails.
// Message carries diagnostic detail; it is not stable for programmatic use.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }
