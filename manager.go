package webvr

import (
	"errors"

	"github.com/gekko3d/webvr/core"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnsupported = errors.New("webvr: unsupported operation")

// Manager follows the display's presenting state, resizes the render surface for
// the headset, runs the frame scheduler while presenting and produces the stereo
// camera each frame. All methods must be called from the goroutine that drives
// the frame callback.
type Manager struct {
	Dispatcher[EventType, Event]

	// Enabled gates restoring the surface size when a session ends.
	Enabled bool
	// CameraAutoUpdate tells the renderer to call UpdateCamera every frame.
	CameraAutoUpdate bool

	device    Device
	frameData FrameData
	input     InputSource

	poseTarget *core.Node

	rig     *StereoRig
	pose    *PoseResolver
	tracker *ControllerTracker

	surface RenderSurface
	loop    FrameScheduler

	framebufferScale float32
	referenceSpace   ReferenceSpaceType

	presenting      bool
	savedSize       Size
	savedPixelRatio float32

	log Logger
}

// NewManager wires a manager to the renderer's surface. A nil loop gets an
// AnimationLoop.
func NewManager(surface RenderSurface, loop FrameScheduler, cfg Config) *Manager {
	cfg = cfg.withDefaults()
	if loop == nil {
		loop = NewAnimationLoop()
	}
	return &Manager{
		CameraAutoUpdate: true,
		rig:              NewStereoRig(),
		pose:             NewPoseResolver(cfg.UserHeight),
		tracker:          NewControllerTracker(cfg.Controllers, *cfg.ControllerOffset, cfg.Logger),
		surface:          surface,
		loop:             loop,
		framebufferScale: cfg.FramebufferScaleFactor,
		referenceSpace:   cfg.ReferenceSpace,
		log:              WithComponent(cfg.Logger, "manager"),
	}
}

func (m *Manager) Device() Device {
	return m.device
}

// SetDevice attaches the display and makes it the scheduler's frame source.
// Nil detaches.
func (m *Manager) SetDevice(device Device) {
	m.device = device
	m.loop.SetContext(device)
}

func (m *Manager) SetInputSource(input InputSource) {
	m.input = input
}

func (m *Manager) SetFramebufferScaleFactor(factor float32) {
	if factor <= 0 {
		m.log.Warnf("ignoring framebuffer scale factor %g, must be positive", factor)
		return
	}
	m.framebufferScale = factor
}

func (m *Manager) SetReferenceSpaceType(mode ReferenceSpaceType) {
	m.referenceSpace = mode
}

// SetPoseTarget selects the node driven by the head pose. Nil falls back to the
// camera passed to UpdateCamera.
func (m *Manager) SetPoseTarget(target *core.Node) {
	m.poseTarget = target
}

func (m *Manager) Controller(slot int) *Controller {
	return m.tracker.Controller(slot)
}

// Camera returns the stereo camera. It is rewritten in place every frame.
func (m *Manager) Camera() *core.StereoCamera {
	return m.rig.Camera()
}

func (m *Manager) StandingMatrix() mgl32.Mat4 {
	return m.pose.StandingMatrix()
}

func (m *Manager) IsPresenting() bool {
	return m.presenting
}

// OnPresentChange must be called whenever the display starts or stops presenting.
func (m *Manager) OnPresentChange() {
	presenting := m.device != nil && m.device.IsPresenting()
	if presenting == m.presenting {
		return
	}
	m.presenting = presenting

	if presenting {
		m.startSession()
	} else {
		m.endSession()
	}
}

func (m *Manager) startSession() {
	m.rig.ConfigureEyes(m.device.EyeParameters(EyeLeft), m.framebufferScale)
	width, height := m.rig.RenderSize()

	if m.surface != nil {
		m.savedPixelRatio = m.surface.PixelRatio()
		m.savedSize = m.surface.Size()
		m.surface.SetDrawingBufferSize(width, height, 1)
	}

	m.loop.Start()

	m.log.Infof("session started (%gx%g, scale %g, %s)", width, height, m.framebufferScale, m.referenceSpace)
	m.Dispatch(EventSessionStart, Event{Type: EventSessionStart})
}

func (m *Manager) endSession() {
	if m.Enabled && m.surface != nil {
		m.surface.SetDrawingBufferSize(m.savedSize.Width, m.savedSize.Height, m.savedPixelRatio)
	}

	m.loop.Stop()

	m.log.Infof("session ended")
	m.Dispatch(EventSessionEnd, Event{Type: EventSessionEnd})
}

// UpdateCamera runs one frame: head pose, eye cameras, layer viewports and
// controllers. camera supplies near/far and is the default pose target.
func (m *Manager) UpdateCamera(camera *core.PerspectiveCamera) *core.StereoCamera {
	if m.device == nil {
		return m.rig.Camera()
	}

	m.device.SetDepthNear(camera.Near)
	m.device.SetDepthFar(camera.Far)

	if !m.device.FrameData(&m.frameData) {
		m.log.Debugf("no frame data, keeping previous camera")
		return m.rig.Camera()
	}

	standing := m.pose.ComputeStandingTransform(m.referenceSpace, m.device.StageParameters())

	target := m.poseTarget
	if target == nil {
		target = &camera.Node
	}
	m.pose.ApplyPose(target, m.frameData.Pose)

	var standingArg, parentArg *mgl32.Mat4
	if m.referenceSpace == ReferenceSpaceLocalFloor {
		standingArg = &standing
	}
	if parent := target.Parent(); parent != nil {
		parentWorld := parent.MatrixWorld
		parentArg = &parentWorld
	}
	m.rig.UpdateFromFrame(&m.frameData, camera.Near, camera.Far, standingArg, parentArg)

	if layers := m.device.Layers(); len(layers) > 0 {
		m.rig.ApplyLayerBounds(layers[0].LeftBounds, layers[0].RightBounds)
	}

	m.tracker.Update(m.input, standing)

	return m.rig.Camera()
}

// SetAnimationLoop installs the per-frame callback. It starts right away when a
// session is already running.
func (m *Manager) SetAnimationLoop(fn func(time float64)) {
	m.loop.SetCallback(fn)
	if m.presenting {
		m.loop.Start()
	}
}

func (m *Manager) SubmitFrame() {
	if m.presenting && m.device != nil {
		m.device.SubmitFrame()
	}
}

// Dispose stops the loop and detaches the display.
func (m *Manager) Dispose() {
	m.loop.Stop()
	m.SetDevice(nil)
	m.presenting = false
}

// Foveation is fixed; the display API has no foveation control.
func (m *Manager) Foveation() float32 {
	return 1
}

func (m *Manager) SetFoveation(foveation float32) error {
	if foveation != 1 {
		m.log.Warnf("SetFoveation(%g) not supported by this display", foveation)
		return ErrUnsupported
	}
	return nil
}

// EnvironmentBlendMode is "opaque" while presenting; ok is false otherwise.
func (m *Manager) EnvironmentBlendMode() (mode string, ok bool) {
	if !m.presenting {
		return "", false
	}
	return "opaque", true
}
