package webvr

// AnimationLoop is the default FrameScheduler. It keeps exactly one frame request
// outstanding on its context while running. Stop cancels the pending request and,
// when called from inside the callback, suppresses the re-request; the running
// callback is never interrupted.
type AnimationLoop struct {
	ctx      FrameRequester
	callback func(time float64)
	running  bool
	handle   FrameHandle

	// generation identifies the outstanding request. Any Start, Stop or context
	// switch bumps it, so a callback only re-requests if nobody else did.
	generation uint64
}

func NewAnimationLoop() *AnimationLoop {
	return &AnimationLoop{}
}

func (a *AnimationLoop) SetCallback(fn func(time float64)) {
	a.callback = fn
}

// SetContext switches the frame source. A running loop keeps running on the new
// context.
func (a *AnimationLoop) SetContext(ctx FrameRequester) {
	if !a.running {
		a.ctx = ctx
		return
	}
	a.cancel()
	a.ctx = ctx
	if ctx == nil {
		a.running = false
		return
	}
	a.request()
}

func (a *AnimationLoop) Start() {
	if a.running || a.callback == nil || a.ctx == nil {
		return
	}
	a.running = true
	a.request()
}

func (a *AnimationLoop) Stop() {
	if !a.running {
		return
	}
	a.running = false
	a.cancel()
}

func (a *AnimationLoop) Running() bool {
	return a.running
}

func (a *AnimationLoop) request() {
	a.generation++
	gen := a.generation
	a.handle = a.ctx.RequestAnimationFrame(func(time float64) {
		a.onFrame(gen, time)
	})
}

func (a *AnimationLoop) cancel() {
	a.generation++
	if a.ctx != nil {
		a.ctx.CancelAnimationFrame(a.handle)
	}
}

func (a *AnimationLoop) onFrame(gen uint64, time float64) {
	if !a.running || gen != a.generation {
		return
	}
	if a.callback != nil {
		a.callback(time)
	}
	// The callback may have restarted the loop or switched context; that already
	// put a new request in place.
	if a.running && gen == a.generation && a.ctx != nil {
		a.request()
	}
}
