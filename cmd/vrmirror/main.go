// vrmirror drives an emulated headset through the webvr manager and mirrors the
// session into a desktop window. Joystick buttons act as controller buttons.
package main

import (
	"flag"
	"math"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/webvr"
	"github.com/gekko3d/webvr/core"
	"github.com/gekko3d/webvr/desktop"
	"github.com/gekko3d/webvr/emulator"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	debug := flag.Bool("debug", false, "Enable per-frame debug logging")
	scale := flag.Float64("scale", 0.5, "Framebuffer scale factor")
	reference := flag.String("reference", "local-floor", "Reference space (local-floor|local)")
	alias := flag.String("controller", "OpenVR Gamepad", "Controller family the first joystick impersonates")
	flag.Parse()

	logger := webvr.NewDefaultLogger("vrmirror", *debug)

	space, ok := webvr.ParseReferenceSpaceType(*reference)
	if !ok {
		logger.Warnf("unknown reference space %q, using local-floor", *reference)
		space = webvr.ReferenceSpaceLocalFloor
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(1280, 720, "WebVR Mirror", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	surface, err := desktop.NewSurface(window, logger)
	if err != nil {
		panic(err)
	}
	defer surface.Release()

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		surface.Resize(width, height)
	})

	cfg := webvr.DefaultConfig()
	cfg.FramebufferScaleFactor = float32(*scale)
	cfg.ReferenceSpace = space
	cfg.Logger = logger

	manager := webvr.NewManager(surface, nil, cfg)
	manager.Enabled = true

	display := emulator.NewDisplay("Emulated HMD")
	display.OnPresentChange = manager.OnPresentChange
	manager.SetDevice(display)
	manager.SetInputSource(&desktop.Joysticks{Alias: *alias, Hand: webvr.HandRight})

	manager.Subscribe(webvr.EventSessionStart, func(e webvr.Event) { logger.Infof("%s", e.Type) })
	manager.Subscribe(webvr.EventSessionEnd, func(e webvr.Event) { logger.Infof("%s", e.Type) })

	background := wgpu.Color{R: 0.05, G: 0.05, B: 0.08, A: 1}
	controller := manager.Controller(0)
	for _, kind := range []webvr.EventType{webvr.EventSelectStart, webvr.EventSelectEnd, webvr.EventSelect, webvr.EventSqueeze} {
		controller.Subscribe(kind, func(e webvr.Event) {
			logger.Infof("controller %d: %s", e.Controller.Slot(), e.Type)
		})
	}
	controller.Subscribe(webvr.EventSelectStart, func(webvr.Event) { background.R = 0.4 })
	controller.Subscribe(webvr.EventSelectEnd, func(webvr.Event) { background.R = 0.05 })

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeySpace:
			if display.IsPresenting() {
				display.ExitPresent()
			} else {
				display.RequestPresent()
			}
		}
	})

	camera := core.NewPerspectiveCamera(70, 16.0/9.0, 0.1, 500)
	frames := 0

	manager.SetAnimationLoop(func(t float64) {
		// Slow head sway so the mirror has something to show.
		yaw := float32(math.Sin(t*0.5)) * 0.3
		display.HeadOrientation = mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0})

		stereo := manager.UpdateCamera(camera)
		frames++
		if frames%120 == 0 {
			p := stereo.MatrixWorld.Col(3).Vec3()
			logger.Debugf("frame %d union camera at %.3f %.3f %.3f", frames, p.X(), p.Y(), p.Z())
		}

		if err := surface.Clear(background); err != nil {
			logger.Errorf("%v", err)
		}
		manager.SubmitFrame()
	})

	logger.Infof("space toggles the session, escape quits")
	display.RequestPresent()

	for !window.ShouldClose() {
		glfw.PollEvents()
		if display.Tick(glfw.GetTime()) == 0 {
			glfw.WaitEventsTimeout(1.0 / 60)
		}
	}

	display.ExitPresent()
	manager.Dispose()
}
