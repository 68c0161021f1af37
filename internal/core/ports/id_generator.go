package ports

// IDGenerator issues time-ordered numeric ids for append-only logs.
type IDGenerator interface {
	NextID() int64
}
