package simulate

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
)

// Flow constants.
const (
	maxRecaptures = 5
)
