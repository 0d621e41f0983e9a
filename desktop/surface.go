// Package desktop adapts a GLFW window and its WebGPU swapchain to the webvr
// render surface, and GLFW joysticks to the webvr input enumeration.
package desktop

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/webvr"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Surface is a window-backed render surface. SetDrawingBufferSize resizes the
// window to the logical size and reconfigures the swapchain to size*pixelRatio.
type Surface struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Config   *wgpu.SurfaceConfiguration

	pixelRatio float32
	log        webvr.Logger
}

// NewSurface creates the WebGPU device for window. The window must have been
// created with glfw.ClientAPI set to glfw.NoAPI.
func NewSurface(window *glfw.Window, logger webvr.Logger) (*Surface, error) {
	s := &Surface{Window: window, log: webvr.WithComponent(logger, "surface")}

	s.Instance = wgpu.CreateInstance(nil)
	s.Surface = s.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := s.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: s.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("desktop: request adapter: %w", err)
	}
	s.Adapter = adapter

	s.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		s.Release()
		return nil, fmt.Errorf("desktop: request device: %w", err)
	}
	s.Queue = s.Device.GetQueue()

	s.pixelRatio, _ = window.GetContentScale()
	if s.pixelRatio <= 0 {
		s.pixelRatio = 1
	}

	width, height := window.GetFramebufferSize()
	caps := s.Surface.GetCapabilities(adapter)
	s.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	s.Surface.Configure(adapter, s.Device, s.Config)

	return s, nil
}

func (s *Surface) PixelRatio() float32 {
	return s.pixelRatio
}

func (s *Surface) Size() webvr.Size {
	w, h := s.Window.GetSize()
	return webvr.Size{Width: float32(w), Height: float32(h)}
}

func (s *Surface) SetDrawingBufferSize(width, height, pixelRatio float32) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	s.pixelRatio = pixelRatio
	s.Window.SetSize(int(width), int(height))
	s.Resize(int(width*pixelRatio), int(height*pixelRatio))
}

// Resize reconfigures the swapchain; non-positive sizes (minimized windows) are skipped.
func (s *Surface) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.Config.Width = uint32(w)
	s.Config.Height = uint32(h)
	s.Surface.Configure(s.Adapter, s.Device, s.Config)
	s.log.Debugf("swapchain %dx%d", w, h)
}

// Clear fills the current swapchain image and presents it.
func (s *Surface) Clear(color wgpu.Color) error {
	next, err := s.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("desktop: current texture: %w", err)
	}
	defer next.Release()

	view, err := next.CreateView(nil)
	if err != nil {
		return fmt.Errorf("desktop: texture view: %w", err)
	}
	defer view.Release()

	encoder, err := s.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("desktop: command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: color,
		}},
	})
	if err := pass.End(); err != nil {
		return fmt.Errorf("desktop: end pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("desktop: finish: %w", err)
	}
	defer cmd.Release()

	s.Queue.Submit(cmd)
	s.Surface.Present()
	return nil
}

func (s *Surface) Release() {
	if s.Device != nil {
		s.Device.Release()
		s.Device = nil
	}
	if s.Adapter != nil {
		s.Adapter.Release()
		s.Adapter = nil
	}
	if s.Surface != nil {
		s.Surface.Release()
		s.Surface = nil
	}
	if s.Instance != nil {
		s.Instance.Release()
		s.Instance = nil
	}
}
