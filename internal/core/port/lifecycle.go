package port

// Lifecycle ends the serving process. Restart asks the supervisor to launch it again with the same arguments.
type Lifecycle interface {
	Restart()
	Stop()
}
