package views

// ViewState holds what every folio view shares: the terminal size and
// the one-line status message shown in place of the key help.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize records the terminal size
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage shows msg in the status line until the next key press
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err in the status line. A nil err clears it.
func (s *ViewState) SetError(err error) {
	if err == nil {
		s.ClearMessage()
		return
	}
	s.SetMessage(err.Error(), true)
}

// ClearMessage brings the key help back
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}
