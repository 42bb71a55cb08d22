package app

// Config holds runtime wiring options for building the app.
type Config struct {
	Home              string // config directory, e.g. $HOME/.sealgram
	PoolWorkers       int    // sealing pool size; 0 = NumCPU
	PoolQueueDepth    int    // sealing pool queue depth; 0 = 2x workers
	ParallelThreshold int    // recipients before fan-out; 0 = default
}
