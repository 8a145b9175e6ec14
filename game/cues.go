package game

import (
	"log"
)

// Cue is an audio or UI moment emitted by the race
type Cue int

const (
	CueCountdown Cue = iota
	CueObstacleHit
	CuePerkPickup
	CueWallHit
	CueLap
	CueFinish
	CueNitroOn
	CueNitroOff
	CueHorn
	CueShortcutSwitch
)

var cueNames = map[Cue]string{
	CueCountdown:      "countdown",
	CueObstacleHit:    "obstacle-hit",
	CuePerkPickup:     "perk-pickup",
	CueWallHit:        "wall-hit",
	CueLap:            "lap",
	CueFinish:         "finish",
	CueNitroOn:        "nitro-on",
	CueNitroOff:       "nitro-off",
	CueHorn:           "horn",
	CueShortcutSwitch: "shortcut-switch",
}

func (c Cue) String() string {
	if name, ok := cueNames[c]; ok {
		return name
	}
	return "unknown"
}

// Cues receives the race's audio and UI hooks. The race never waits on them.
type Cues interface {
	Play(cue Cue, subject string)
}

// LogCues writes every cue to a logger
type LogCues struct {
	Logger *log.Logger
}

// Play logs the cue
func (c LogCues) Play(cue Cue, subject string) {
	if c.Logger == nil {
		return
	}
	c.Logger.Printf("cue %s %s", cue, subject)
}

// NopCues drops every cue
type NopCues struct{}

// Play does nothing
func (NopCues) Play(Cue, string) {}
