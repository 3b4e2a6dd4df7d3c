package game

import "time"

// timerTickMsg is sent every second to update the countdown.
type timerTickMsg time.Time

// flashDoneMsg ends the flash started by answer number seq. Flashes from
// earlier answers are ignored.
type flashDoneMsg struct {
	seq int
}
