package webvr

import (
	"strings"
)

type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchPrefix
)

// ButtonLayout maps logical buttons to gamepad button indices.
type ButtonLayout struct {
	Trigger int
	Grip    int
}

// ControllerFamily describes one known controller product line.
type ControllerFamily struct {
	Tag     string
	Pattern string
	Match   MatchKind
	Buttons ButtonLayout
	// Slots maps the hand a device reports to the controller slot it binds.
	Slots map[Hand]int
}

func (f ControllerFamily) matches(id string) bool {
	switch f.Match {
	case MatchPrefix:
		return strings.HasPrefix(id, f.Pattern)
	default:
		return id == f.Pattern
	}
}

// SlotFor returns the controller slot a device of this family holding hand binds to.
func (f ControllerFamily) SlotFor(hand Hand) (int, bool) {
	slot, ok := f.Slots[hand]
	return slot, ok
}

type ControllerTable struct {
	Version  int
	Families []ControllerFamily
}

// Lookup returns the first family whose pattern matches id.
func (t ControllerTable) Lookup(id string) (ControllerFamily, bool) {
	for _, f := range t.Families {
		if f.matches(id) {
			return f, true
		}
	}
	return ControllerFamily{}, false
}

// Unspecified or right hand drives slot 0, left hand drives slot 1.
var standardSlots = map[Hand]int{
	HandNone:  0,
	HandRight: 0,
	HandLeft:  1,
}

var standardButtons = ButtonLayout{Trigger: 1, Grip: 2}

var DefaultControllerTable = ControllerTable{
	Version: 1,
	Families: []ControllerFamily{
		{Tag: "daydream", Pattern: "Daydream Controller", Match: MatchExact, Buttons: ButtonLayout{Trigger: 0, Grip: 2}, Slots: standardSlots},
		{Tag: "gearvr", Pattern: "Gear VR Controller", Match: MatchExact, Buttons: standardButtons, Slots: standardSlots},
		{Tag: "oculus-go", Pattern: "Oculus Go Controller", Match: MatchExact, Buttons: standardButtons, Slots: standardSlots},
		{Tag: "openvr", Pattern: "OpenVR Gamepad", Match: MatchExact, Buttons: standardButtons, Slots: standardSlots},
		{Tag: "oculus-touch", Pattern: "Oculus Touch", Match: MatchPrefix, Buttons: standardButtons, Slots: standardSlots},
		{Tag: "vive-focus", Pattern: "HTC Vive Focus", Match: MatchPrefix, Buttons: standardButtons, Slots: standardSlots},
		{Tag: "windows-mr", Pattern: "Spatial Controller", Match: MatchPrefix, Buttons: standardButtons, Slots: standardSlots},
	},
}
