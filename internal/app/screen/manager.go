package screen

// Manager keeps the stack of open modal screens.
type Manager struct {
	current Screen
	stack   []Screen
}

// NewManager creates a new screen manager.
func NewManager() *Manager {
	return &Manager{}
}

// Push opens s on top of the current screen.
func (m *Manager) Push(s Screen) {
	if s == nil {
		return
	}
	if m.current != nil {
		m.stack = append(m.stack, m.current)
	}
	m.current = s
}

// Pop closes the current screen and returns it, restoring the one below.
func (m *Manager) Pop() Screen {
	removed := m.current
	if n := len(m.stack); n > 0 {
		m.current = m.stack[n-1]
		m.stack = m.stack[:n-1]
	} else {
		m.current = nil
	}
	return removed
}

// Current returns the currently active screen, or nil if none.
func (m *Manager) Current() Screen {
	return m.current
}

// IsActive reports whether any screen is open.
func (m *Manager) IsActive() bool {
	return m.current != nil
}

// Type returns the type of the current screen, or TypeNone.
func (m *Manager) Type() Type {
	if m.current == nil {
		return TypeNone
	}
	return m.current.Type()
}

// Set replaces the current screen without touching the stack. A nil screen
// pops instead.
func (m *Manager) Set(s Screen) {
	if s == nil {
		m.Pop()
		return
	}
	m.current = s
}

// Clear closes every screen.
func (m *Manager) Clear() {
	m.current = nil
	m.stack = m.stack[:0]
}

