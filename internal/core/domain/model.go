package domain

type Message struct {
	ID       int
	ChatID   int64
	Username string
	Text     string
}

type Action string

const Typing Action = "typing"

// Asset is a static reply file read from disk.
type Asset struct {
	Name string
	Data []byte
}

type Stats struct {
	DaysRunning int64
	Sent        int64
	Average     int64
}
