// Package layout models which of the three panels (sidebar, chat, thread)
// are visible at a given viewport width. Clients drive it over the API so
// every device of a user lands on the same view after a resize.
package layout

const (
	// BreakpointMobile is the width below which only a single panel shows.
	BreakpointMobile = 860
	// BreakpointDesktop is the width below which sidebar and thread cannot
	// both stay open next to the chat.
	BreakpointDesktop = 1280
)

type State struct {
	Sidebar bool `json:"sidebar"`
	Chat    bool `json:"chat"`
	Thread  bool `json:"thread"`
}

// DefaultState is what a fresh session renders: sidebar plus chat.
func DefaultState() State {
	return State{Sidebar: true, Chat: true}
}

// Normalize applies the width rules to an arbitrary combination:
// below the desktop breakpoint sidebar and thread cannot both show, the
// thread collapses; below the mobile breakpoint exactly one panel remains,
// preferring thread over chat over sidebar.
func (s State) Normalize(width int) State {
	if width < BreakpointMobile {
		switch {
		case s.Thread:
			return State{Thread: true}
		case s.Chat:
			return State{Chat: true}
		default:
			return State{Sidebar: true}
		}
	}

	if width < BreakpointDesktop && s.Sidebar && s.Thread {
		s.Thread = false
	}
	return s
}

func (s State) OpenThread(width int) State {
	s.Thread = true
	s.Chat = true
	return s.Normalize(width)
}

func (s State) CloseThread(width int) State {
	s.Thread = false
	if !s.Sidebar && !s.Chat {
		s.Chat = true
	}
	return s.Normalize(width)
}

func (s State) ToggleSidebar(width int) State {
	s.Sidebar = !s.Sidebar
	if !s.Sidebar && !s.Chat && !s.Thread {
		s.Chat = true
	}
	return s.Normalize(width)
}

// ShowChat is the "open a channel" transition.
func (s State) ShowChat(width int) State {
	s.Chat = true
	s.Thread = false
	return s.Normalize(width)
}
