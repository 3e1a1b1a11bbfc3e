package interfaces

// PendingMessage is the commit message waiting to be committed.
type PendingMessage interface {
	Message() string
	SetMessage(text string) error
	Clear() error
}
