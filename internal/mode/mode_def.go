package mode

type ModeDef string

const (
	StopwatchMode ModeDef = "stopwatch> "
	CountdownMode ModeDef = "countdown> "
	SetMode       ModeDef = "set> "
)
