package webvr

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Config configures a Manager. Zero values fall back to the defaults below.
type Config struct {
	FramebufferScaleFactor float32
	ReferenceSpace         ReferenceSpaceType
	// UserHeight is the assumed eye height in local-floor mode when the display
	// reports no stage.
	UserHeight float32
	// ControllerOffset seeds orientation-only controllers. Nil means
	// DefaultControllerOffset.
	ControllerOffset *mgl32.Vec3
	Controllers      ControllerTable
	Logger           Logger
}

func DefaultConfig() Config {
	offset := DefaultControllerOffset
	return Config{
		FramebufferScaleFactor: 1.0,
		ReferenceSpace:         ReferenceSpaceLocalFloor,
		UserHeight:             DefaultUserHeight,
		ControllerOffset:       &offset,
		Controllers:            DefaultControllerTable,
		Logger:                 NewNopLogger(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.FramebufferScaleFactor <= 0 {
		c.FramebufferScaleFactor = def.FramebufferScaleFactor
	}
	if c.UserHeight <= 0 {
		c.UserHeight = def.UserHeight
	}
	if c.ControllerOffset == nil {
		c.ControllerOffset = def.ControllerOffset
	}
	if len(c.Controllers.Families) == 0 {
		c.Controllers = def.Controllers
	}
	c.Logger = orNop(c.Logger)
	return c
}
