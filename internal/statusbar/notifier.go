package statusbar

// CompletionNotifier coalesces countdown completions into a signal the
// event loop can select on. Repeated completions before the loop drains
// the channel collapse into one notification.
type CompletionNotifier struct {
	completedCh chan struct{}
}

func NewCompletionNotifier() *CompletionNotifier {
	return &CompletionNotifier{completedCh: make(chan struct{}, 1)}
}

func (c *CompletionNotifier) NotifyCompleted() {
	select {
	case c.completedCh <- struct{}{}:
	default:
	}
}

func (c *CompletionNotifier) completions() <-chan struct{} {
	return c.completedCh
}
