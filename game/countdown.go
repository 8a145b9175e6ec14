package game

import "time"

var countdownLabels = []string{"3", "2", "1", "GO"}

const countdownStep = time.Second

// Countdown holds the race clock with PauseGameLogic while it shows
// 3, 2, 1, GO and releases it afterwards. It runs on frame time since the
// race clock is stopped meanwhile.
type Countdown struct {
	timeline *Timeline
	elapsed  time.Duration
	shown    int
	running  bool
	onLabel  func(label string)
}

// NewCountdown creates a countdown driving timeline. onLabel may be nil.
func NewCountdown(timeline *Timeline, onLabel func(label string)) *Countdown {
	return &Countdown{timeline: timeline, shown: -1, onLabel: onLabel}
}

// Start pauses the race clock and shows the first label
func (c *Countdown) Start() {
	c.running = true
	c.elapsed = 0
	c.shown = -1
	c.timeline.Pause(PauseGameLogic)
	c.show(0)
}

// Running reports whether the countdown still holds the clock
func (c *Countdown) Running() bool {
	return c.running
}

// Label is the label on screen, empty when idle
func (c *Countdown) Label() string {
	if !c.running || c.shown < 0 {
		return ""
	}
	return countdownLabels[c.shown]
}

// Update advances the countdown by dt seconds of frame time and returns the
// part of dt the race clock should advance by. That is all of dt when idle,
// nothing while counting and the time past GO on the frame that ends it.
func (c *Countdown) Update(dt float64) float64 {
	if !c.running {
		return dt
	}
	c.elapsed += time.Duration(dt * float64(time.Second))
	step := int(c.elapsed / countdownStep)
	if step >= len(countdownLabels) {
		c.running = false
		c.timeline.Resume(PauseGameLogic)
		return (c.elapsed - time.Duration(len(countdownLabels))*countdownStep).Seconds()
	}
	c.show(step)
	return 0
}

func (c *Countdown) show(step int) {
	if step == c.shown {
		return
	}
	c.shown = step
	if c.onLabel != nil {
		c.onLabel(countdownLabels[step])
	}
}
