package vlr

import "fmt"

// Window narrows agent statistics to a trailing period.
type Window string

const (
	Window30Days Window = "30d"
	Window60Days Window = "60d"
	Window90Days Window = "90d"
	WindowAll    Window = "all"
)

const DefaultWindow = Window60Days

func (w Window) Validate() error {
	switch w {
	case Window30Days, Window60Days, Window90Days, WindowAll:
		return nil
	}
	return fmt.Errorf("%w: got %q", ErrInvalidWindow, string(w))
}

func validateId(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidId, id)
	}
	return nil
}
