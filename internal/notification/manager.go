package notification

// Manager fans a notification out to every configured channel.
type Manager struct {
	channels        []Channel
	enabled         bool
	commandExecutor CommandExecutor
}

// NewManager creates a Manager from configuration.
func NewManager(cfg *Config, opts ...Option) *Manager {
	m := &Manager{
		channels: []Channel{},
		enabled:  cfg.Enabled,
	}

	// The executor option must land before channels are built.
	for _, opt := range opts {
		opt(m)
	}

	if !cfg.Enabled {
		return m
	}

	if cfg.OSNotification.Enabled {
		var osOpts []Option
		if m.commandExecutor != nil {
			osOpts = append(osOpts, WithCommandExecutor(m.commandExecutor))
		}
		m.channels = append(m.channels, newOSChannel(osOpts...))
	}

	if cfg.LogNotification.Enabled {
		m.channels = append(m.channels, newLogChannel(&cfg.LogNotification))
	}

	return m
}

// Send dispatches the notification to all channels and returns the last
// channel error, if any.
func (m *Manager) Send(n Notification) error {
	if !m.enabled {
		return nil
	}

	var lastErr error
	for _, ch := range m.channels {
		if err := ch.Send(n); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Close releases channel resources.
func (m *Manager) Close() error {
	var lastErr error
	for _, ch := range m.channels {
		if err := ch.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// ChannelCount returns the number of active channels.
func (m *Manager) ChannelCount() int {
	return len(m.channels)
}
