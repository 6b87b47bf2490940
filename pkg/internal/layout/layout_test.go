package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	wide   = BreakpointDesktop + 100
	medium = BreakpointMobile + 100
	narrow = BreakpointMobile - 100
)

func TestDesktopShowsEverything(t *testing.T) {
	state := DefaultState().OpenThread(wide)
	assert.Equal(t, State{Sidebar: true, Chat: true, Thread: true}, state)
}

func TestMediumCollapsesThreadNextToSidebar(t *testing.T) {
	state := DefaultState().OpenThread(medium)
	assert.Equal(t, State{Sidebar: true, Chat: true}, state)

	// Without the sidebar the thread fits.
	state = State{Chat: true}.OpenThread(medium)
	assert.Equal(t, State{Chat: true, Thread: true}, state)
}

func TestMobileShowsExactlyOnePanel(t *testing.T) {
	state := DefaultState().Normalize(narrow)
	assert.Equal(t, State{Chat: true}, state)

	state = DefaultState().OpenThread(narrow)
	assert.Equal(t, State{Thread: true}, state)

	state = State{Sidebar: true}.Normalize(narrow)
	assert.Equal(t, State{Sidebar: true}, state)
}

func TestCloseThreadFallsBackToChat(t *testing.T) {
	state := State{Thread: true}.CloseThread(narrow)
	assert.Equal(t, State{Chat: true}, state)

	state = State{Sidebar: true, Chat: true, Thread: true}.CloseThread(wide)
	assert.Equal(t, State{Sidebar: true, Chat: true}, state)
}

func TestToggleSidebarNeverLeavesNothingVisible(t *testing.T) {
	state := State{Sidebar: true}.ToggleSidebar(wide)
	assert.Equal(t, State{Chat: true}, state)

	state = State{Chat: true}.ToggleSidebar(wide)
	assert.Equal(t, State{Sidebar: true, Chat: true}, state)
}

func TestShowChatClosesThread(t *testing.T) {
	state := State{Sidebar: true, Thread: true}.ShowChat(narrow)
	assert.Equal(t, State{Chat: true}, state)
}
