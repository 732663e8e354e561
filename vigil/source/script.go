package source

// Script is an in-memory source driven by the caller. Used by tests and by
// hosts that embed the session directly.
type Script struct {
	notifications chan Notification
	caps          Capabilities
	metrics       Metrics
}

func NewScript(metrics Metrics, caps Capabilities) *Script {
	return &Script{
		notifications: make(chan Notification, 64),
		caps:          caps,
		metrics:       metrics,
	}
}

func (s *Script) Notifications() <-chan Notification {
	return s.notifications
}

func (s *Script) Capabilities() Capabilities {
	return s.caps
}

func (s *Script) Metrics() Metrics {
	return s.metrics
}

func (s *Script) Send(n Notification) {
	s.notifications <- n
}

func (s *Script) Close() {
	close(s.notifications)
}
