package waymark

const (
	// Version of the waymark toolkit.
	VERSION = "1.2.0"
	// MINIMUM_GO is the Go release we test against.
	MINIMUM_GO = "go1.19"
)
