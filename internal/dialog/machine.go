// Package dialog implements the lifecycle shared by every form dialog:
// idle -> editing -> submitting -> success | error, with a fresh reset on
// every open.
package dialog

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	ErrNotOpen        = errors.New("dialog is not open")
)

type State int

const (
	Idle State = iota
	Editing
	Submitting
	Success
	Failed
)

func (s State) String() string {
	return [...]string{"idle", "editing", "submitting", "success", "error"}[s]
}

// Machine guards one dialog's state and, through Edit and BeginSubmit, the
// form fields of the dialog embedding it.
type Machine struct {
	mu      sync.Mutex
	state   State
	message string
	cycle   string
}

// Open starts a new open cycle. reset runs under the lock and must restore
// every form field, so nothing leaks from a previous cycle.
func (m *Machine) Open(reset func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Submitting {
		return ErrSubmitInFlight
	}
	if reset != nil {
		reset()
	}
	m.state = Editing
	m.message = ""
	m.cycle = uuid.New().String()
	return nil
}

// Edit applies a field change. After a failed submit the dialog returns to
// editing; the last message stays visible until the next submit.
func (m *Machine) Edit(fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case Submitting:
		return ErrSubmitInFlight
	case Editing, Failed:
	default:
		return ErrNotOpen
	}
	if err := fn(); err != nil {
		return err
	}
	m.state = Editing
	return nil
}

// BeginSubmit validates the form and moves to submitting. A validation
// failure keeps the dialog in editing with the violated rule's message.
func (m *Machine) BeginSubmit(validate func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state {
	case Submitting:
		return ErrSubmitInFlight
	case Editing, Failed:
	default:
		return ErrNotOpen
	}
	m.message = ""
	if validate != nil {
		if err := validate(); err != nil {
			m.state = Editing
			m.message = Message(err)
			return err
		}
	}
	m.state = Submitting
	return nil
}

// Succeed closes the dialog after a confirmed remote success.
func (m *Machine) Succeed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Success
	m.message = ""
}

// Fail leaves the dialog open with a single message so the user may retry.
func (m *Machine) Fail(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Failed
	m.message = message
}

// Cancel closes the dialog. The trigger is disabled while submitting.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Submitting {
		return ErrSubmitInFlight
	}
	m.state = Idle
	m.message = ""
	return nil
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Message is the single error currently surfaced, if any.
func (m *Machine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message
}

// Cycle identifies the current open cycle in logs.
func (m *Machine) Cycle() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cycle
}

func (m *Machine) IsOpen() bool {
	s := m.State()
	return s == Editing || s == Submitting || s == Failed
}

// Read runs fn under the lock, for snapshotting form fields.
func (m *Machine) Read(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}
