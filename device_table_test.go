package webvr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerTableLookup(t *testing.T) {
	tests := []struct {
		id      string
		tag     string
		trigger int
		ok      bool
	}{
		{"Daydream Controller", "daydream", 0, true},
		{"Gear VR Controller", "gearvr", 1, true},
		{"Oculus Go Controller", "oculus-go", 1, true},
		{"OpenVR Gamepad", "openvr", 1, true},
		{"Oculus Touch (Left)", "oculus-touch", 1, true},
		{"Oculus Touch (Right)", "oculus-touch", 1, true},
		{"HTC Vive Focus Plus Controller", "vive-focus", 1, true},
		{"Spatial Controller (Spatial Interaction Source) 045E-065B", "windows-mr", 1, true},
		{"OpenVR Gamepad 2", "", 0, false},
		{"Daydream", "", 0, false},
		{"Xbox 360 Controller", "", 0, false},
		{"", "", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			f, ok := DefaultControllerTable.Lookup(tc.id)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.tag, f.Tag)
			assert.Equal(t, tc.trigger, f.Buttons.Trigger)
			assert.Equal(t, 2, f.Buttons.Grip)
		})
	}
}

func TestControllerTableSlots(t *testing.T) {
	for _, f := range DefaultControllerTable.Families {
		t.Run(f.Tag, func(t *testing.T) {
			slot, ok := f.SlotFor(HandNone)
			assert.True(t, ok)
			assert.Equal(t, 0, slot)

			slot, ok = f.SlotFor(HandRight)
			assert.True(t, ok)
			assert.Equal(t, 0, slot)

			slot, ok = f.SlotFor(HandLeft)
			assert.True(t, ok)
			assert.Equal(t, 1, slot)

			_, ok = f.SlotFor(Hand("both"))
			assert.False(t, ok)
		})
	}
}

func TestCustomControllerTable(t *testing.T) {
	table := ControllerTable{
		Version: 2,
		Families: []ControllerFamily{
			{Tag: "pico", Pattern: "Pico", Match: MatchPrefix, Buttons: ButtonLayout{Trigger: 3, Grip: 4}, Slots: map[Hand]int{HandLeft: 0}},
			{Tag: "shadowed", Pattern: "Pico Neo", Match: MatchExact},
		},
	}

	f, ok := table.Lookup("Pico Neo")
	require.True(t, ok)
	assert.Equal(t, "pico", f.Tag, "first matching family wins")

	_, ok = f.SlotFor(HandRight)
	assert.False(t, ok, "unlisted hands do not bind")
}
