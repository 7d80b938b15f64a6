package core

//go:generate go tool mockgen -source=signal_iface.go -destination=mocks/mock_signal.go -package=mocks

// Frame is one encoded outbound message.
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
