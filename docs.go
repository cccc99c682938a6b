/*
Package vktut is a small toolkit for building Vulkan tutorial applications in Go.
It wraps the pieces of Vulkan every beginning graphics application needs -
instance and device setup, the swapchain, buffers and images, descriptors,
pipelines - and drives the part that is genuinely easy to get wrong: the
per-frame draw/present cycle and the swapchain lifecycle around it.

The centerpiece is GraphicsApp, which owns the frame loop. Each frame it
waits on the fence for the current in-flight slot, acquires a swapchain
image, records the slot's command buffer through an application supplied
callback, submits gated on the acquire semaphore and presents gated on the
render-finished semaphore. At most MaxFramesInFlight command buffers are
ever outstanding. When the swapchain goes stale (window resize, out-of-date
surface) the app tears the swapchain and its dependents down and rebuilds
them, refusing to do so while the framebuffer reports zero size.

The CPU-side bookkeeping for that cycle lives in FrameTracker, which is a
plain state machine with no device handles, so the cycling and rebuild
arbitration can be tested without a GPU.

Native Vulkan structures are exposed on every wrapper object with a 'VK'
prefix in the field name, so applications are never limited to what this
package chooses to wrap.

A typical application looks like:

	app, _ := vktut.NewGraphicsApp("demo", vktut.Version{Major: 1})
	app.SetWindow(window)
	app.Init()
	... create pools, buffers, descriptors, pipeline configs ...
	app.MakeCommandBuffer = recordFrame
	app.PrepareToDraw()
	for !window.ShouldClose() {
		glfw.PollEvents()
		app.DrawFrame()
	}
	app.Destroy()

See the programs under examples/ for complete applications: a colored quad
with a rotating uniform buffer, the same quad with a sampled texture, and a
device capability dump.
*/
package vktut
