package category

import "errors"

var ErrUnknownCategory = errors.New("category is not in the existing set")

// Mode selects which control supplies the category.
type Mode int

const (
	// ModeNew is free-text entry of a (possibly new) category.
	ModeNew Mode = iota
	// ModeExisting is a pick from the current category set.
	ModeExisting
)

func (m Mode) String() string {
	if m == ModeExisting {
		return "existing"
	}
	return "new"
}

// Input is either New(text) or Existing(name). Exactly one source is
// authoritative at a time, so the two controls can never disagree.
type Input struct {
	mode  Mode
	value string
}

func New(text string) Input {
	return Input{mode: ModeNew, value: text}
}

// Existing picks name from set; it fails when name is not a member.
func Existing(name string, set []string) (Input, error) {
	if !Contains(set, name) {
		return Input{}, ErrUnknownCategory
	}
	return Input{mode: ModeExisting, value: name}, nil
}

func (i Input) Mode() Mode {
	return i.mode
}

// Resolve returns the category string to submit.
func (i Input) Resolve() string {
	return i.value
}

// Switch changes the active source. The value of the previous source is
// discarded; switching to the current mode is a no-op.
func (i Input) Switch(mode Mode) Input {
	if mode == i.mode {
		return i
	}
	return Input{mode: mode}
}
