package vktut

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// MaxFramesInFlight is the number of frames the CPU may record ahead of the
// GPU. Two keeps the CPU busy while the GPU draws without piling up latency.
const MaxFramesInFlight = 2

// GraphicsApp wires together the objects a windowed Vulkan application
// needs: instance, device, queues, swapchain, render pass, pipelines and the
// per-frame synchronization that paces DrawFrame.
//
// See https://vulkan-tutorial.com/ for a walkthrough of the concepts.
type GraphicsApp struct {
	Instance *Instance
	App      *App

	Window    *glfw.Window
	VKSurface vk.Surface

	Device         *Device
	PhysicalDevice *PhysicalDevice

	GraphicsPipelineConfigs map[string]GraphicsPipelineConfigurer

	// GraphicsPipelines is generated from GraphicsPipelineConfigs and
	// regenerated whenever the swapchain is rebuilt.
	GraphicsPipelines map[string]vk.Pipeline

	ResourceManager *ResourceManager

	GraphicsQueue *Queue
	PresentQueue  *Queue
	PipelineCache *PipelineCache

	GraphicsCommandPool *CommandPool

	// GraphicsCommandBuffers holds one command buffer per in-flight slot,
	// re-recorded every frame.
	GraphicsCommandBuffers []*CommandBuffer

	DefaultNumSwapchainImages int

	// FramesInFlight is how many frames the CPU records ahead of the GPU.
	// Defaults to MaxFramesInFlight; set before PrepareToDraw to override.
	FramesInFlight int

	// imageAvailableSemaphores are cycled by the frame tracker and signal
	// that the acquired image is ready to be rendered to.
	imageAvailableSemaphores []vk.Semaphore

	// renderFinishedSemaphores are indexed by swapchain image and signal
	// that rendering to that image has finished.
	renderFinishedSemaphores []vk.Semaphore

	// waitFences are indexed by in-flight slot and pace the CPU.
	waitFences []vk.Fence

	frames *FrameTracker

	screenExtent vk.Extent2D

	Swapchain           *Swapchain
	SwapchainImages     []*Image
	SwapchainImageViews []*ImageView
	DepthImage          *ImageResource
	DepthImageView      *ImageView
	Framebuffers        []vk.Framebuffer

	VKRenderPass vk.RenderPass

	// ConfigureRenderPass allows customization of the render pass before it
	// is created.
	ConfigureRenderPass func(renderPass vk.RenderPassCreateInfo)

	// MakeCommandBuffer records the draw commands for one frame targeting
	// the given swapchain image. Required before PrepareToDraw.
	MakeCommandBuffer func(command *CommandBuffer, imageIndex int)

	// OnSwapchainRebuild, when set, runs after every swapchain rebuild so
	// the application can refresh anything sized to the swapchain.
	OnSwapchainRebuild func() error

	debug bool
}

// NewGraphicsApp creates a new graphics app with the given name and version.
func NewGraphicsApp(name string, version Version) (*GraphicsApp, error) {
	app := &App{Name: name, Version: version}
	return &GraphicsApp{App: app, FramesInFlight: MaxFramesInFlight}, nil
}

// PhysicalDevices returns the physical devices of the instance.
func (p *GraphicsApp) PhysicalDevices() ([]*PhysicalDevice, error) {
	if p.Instance == nil {
		return nil, fmt.Errorf("app has not been initialized yet")
	}
	return p.Instance.PhysicalDevices()
}

// EnableLayer enables an instance layer if it is supported.
func (p *GraphicsApp) EnableLayer(layer string) bool {
	supportedLayers, err := p.SupportedLayers()
	if err != nil {
		return false
	}

	for _, slayer := range supportedLayers {
		if layer == slayer {
			p.App.EnableLayer(layer)
			return true
		}
	}
	return false
}

// EnableExtension enables an instance extension if it is supported.
func (p *GraphicsApp) EnableExtension(extension string) bool {
	supportedExtensions, err := p.SupportedExtensions()
	if err != nil {
		return false
	}

	for _, sextension := range supportedExtensions {
		if extension == sextension {
			p.App.EnableExtension(extension)
			return true
		}
	}
	return false
}

// CreateGraphicsPipelineConfig creates a pipeline config for customization.
func (p *GraphicsApp) CreateGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return p.Device.CreateGraphicsPipelineConfig()
}

// AddGraphicsPipelineConfig registers a named pipeline config. The pipeline
// itself is built by PrepareToDraw and after every swapchain rebuild.
func (p *GraphicsApp) AddGraphicsPipelineConfig(name string, config GraphicsPipelineConfigurer) {
	if p.GraphicsPipelineConfigs == nil {
		p.GraphicsPipelineConfigs = make(map[string]GraphicsPipelineConfigurer)
	}
	p.GraphicsPipelineConfigs[name] = config
}

// SupportedExtensions returns the instance extensions the driver supports.
func (p *GraphicsApp) SupportedExtensions() ([]string, error) {
	return SupportedExtensions()
}

// SupportedLayers returns the instance layers the driver supports.
func (p *GraphicsApp) SupportedLayers() ([]string, error) {
	return SupportedLayers()
}

// EnableDebugging enables the validation layer and debug reporting. It must
// be called before Init.
func (p *GraphicsApp) EnableDebugging() bool {
	if p.Instance != nil {
		return false
	}
	p.App.EnableDebugging()
	p.debug = true
	return true
}

// NumFramebuffers returns the number of swapchain images.
func (p *GraphicsApp) NumFramebuffers() int {
	return len(p.SwapchainImages)
}

// FrameTracker exposes the frame pacing state, mainly for inspection.
func (p *GraphicsApp) FrameTracker() *FrameTracker {
	return p.frames
}

// Init creates the instance, surface, device and queues. SetWindow must have
// been called first for windowed applications.
func (p *GraphicsApp) Init() error {
	initSwapchain := p.Window != nil

	var err error

	p.Instance, err = p.App.CreateInstance()
	if err != nil {
		return err
	}

	if p.debug {
		if err := p.Instance.UseDefaultDebugCallback(); err != nil {
			return fmt.Errorf("registering debug callback: %w", err)
		}
	}

	if p.Window != nil && p.VKSurface == vk.NullSurface {
		surface, err := p.Window.CreateWindowSurface(p.Instance.VKInstance, nil)
		if err != nil {
			return fmt.Errorf("creating window surface: %w", err)
		}
		p.VKSurface = vk.SurfaceFromPointer(surface)
	}

	physicalDevices, err := p.Instance.PhysicalDevices()
	if err != nil {
		return fmt.Errorf("error getting devices: %w", err)
	}
	if len(physicalDevices) == 0 {
		return fmt.Errorf("no devices found")
	}

	pdevice := physicalDevices[0]

	queues, err := pdevice.QueueFamilies()
	if err != nil {
		return fmt.Errorf("unable to load device queue families: %w", err)
	}

	gqueues := queues.FilterGraphicsAndPresent(p.VKSurface)
	if len(gqueues) == 0 {
		return fmt.Errorf("no graphics capable queues found on device: %v", pdevice)
	}

	enabledExtensions := []string{}
	if initSwapchain {
		enabledExtensions = []string{"VK_KHR_swapchain"}
	}

	ldevice, err := pdevice.CreateLogicalDeviceWithOptions(gqueues, &CreateDeviceOptions{
		EnabledExtensions: enabledExtensions,
	})
	if err != nil {
		return fmt.Errorf("unable to create device: %w", err)
	}

	p.Device = ldevice
	p.PhysicalDevice = pdevice

	if len(gqueues) == 1 {
		queue := ldevice.GetQueue(gqueues[0])
		p.GraphicsQueue = queue
		p.PresentQueue = queue
	} else {
		pq := gqueues.FilterPresent(p.VKSurface)
		gq := gqueues.FilterGraphics()

		p.GraphicsQueue = ldevice.GetQueue(gq[0])
		p.PresentQueue = ldevice.GetQueue(pq[0])
	}

	if initSwapchain {
		p.DefaultNumSwapchainImages, err = p.Device.DefaultNumSwapchainImages(p.VKSurface)
		if err != nil {
			return err
		}
	}

	p.GraphicsCommandPool, err = p.Device.CreateCommandPool(p.GraphicsQueue.QueueFamily)
	if err != nil {
		return err
	}

	p.ResourceManager = p.Device.CreateResourceManager()

	return nil
}

// SetWindow sets the GLFW window. It must be called before Init so the
// window's required instance extensions can be enabled.
func (p *GraphicsApp) SetWindow(window *glfw.Window) error {
	if p.Instance != nil {
		return fmt.Errorf("window must be set prior to initialization")
	}

	p.Window = window

	extensions := p.Window.GetRequiredInstanceExtensions()
	for _, ext := range extensions {
		if !p.EnableExtension(ext) {
			return fmt.Errorf("extension %q required by glfw is not supported by vulkan", ext)
		}
	}

	p.refreshScreenExtent()

	return nil
}

// PrepareToDraw creates everything DrawFrame needs. It must be called after
// Init, with MakeCommandBuffer set.
func (p *GraphicsApp) PrepareToDraw() error {
	if p.MakeCommandBuffer == nil {
		return fmt.Errorf("no function to make command buffers has been configured")
	}
	if p.FramesInFlight < 1 {
		p.FramesInFlight = MaxFramesInFlight
	}

	if err := p.createSwapchainAndImages(); err != nil {
		return err
	}
	if err := p.createRenderer(); err != nil {
		return err
	}

	var err error
	p.PipelineCache, err = p.Device.CreatePipelineCache()
	if err != nil {
		return err
	}

	if err := p.createGraphicsPipelines(); err != nil {
		return err
	}
	if err := p.createDepthImage(); err != nil {
		return err
	}
	if err := p.createFramebuffers(); err != nil {
		return err
	}
	if err := p.createCommandBuffers(); err != nil {
		return err
	}
	if err := p.createSyncObjects(); err != nil {
		return err
	}

	p.frames = NewFrameTracker(p.FramesInFlight, len(p.SwapchainImages))

	return nil
}

// Resize signals that the framebuffer size changed. The swapchain is rebuilt
// before the next frame is drawn.
func (p *GraphicsApp) Resize() {
	p.refreshScreenExtent()
	if p.frames != nil {
		p.frames.MarkStale()
	}
}

// DrawFrame renders and presents one frame. It paces the CPU with the
// in-flight fences, acquires an image, re-records the slot's command buffer
// through MakeCommandBuffer, submits and presents. A stale or out-of-date
// swapchain is rebuilt and the frame skipped; all other failures are
// returned to the caller.
func (p *GraphicsApp) DrawFrame() error {
	if p.frames.NeedsRebuild() {
		return p.rebuildSwapchain()
	}

	slot := p.frames.Slot()

	err := vk.Error(vk.WaitForFences(p.Device.VKDevice, 1, []vk.Fence{p.waitFences[slot]}, vk.True, vk.MaxUint64))
	if err != nil {
		return fmt.Errorf("waiting for frame fence: %w", err)
	}
	p.frames.SlotReclaimed()

	var imageIndex uint32
	acquireSem := p.imageAvailableSemaphores[p.frames.SemaphoreIndex()]
	res := vk.AcquireNextImage(p.Device.VKDevice, p.Swapchain.VKSwapchain, vk.MaxUint64, acquireSem, vk.NullFence, &imageIndex)

	switch res {
	case vk.ErrorOutOfDate:
		p.frames.MarkStale()
		return nil
	case vk.Success, vk.Suboptimal:
		// A suboptimal acquire can still be drawn to.
	default:
		return fmt.Errorf("acquiring swapchain image: %w", vk.Error(res))
	}

	err = vk.Error(vk.ResetFences(p.Device.VKDevice, 1, []vk.Fence{p.waitFences[slot]}))
	if err != nil {
		return fmt.Errorf("resetting frame fence: %w", err)
	}

	cmd := p.GraphicsCommandBuffers[slot]
	if err := cmd.Reset(); err != nil {
		return err
	}
	p.MakeCommandBuffer(cmd, int(imageIndex))

	renderDoneSem := p.renderFinishedSemaphores[imageIndex]

	submitInfo := []vk.SubmitInfo{{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{acquireSem},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{renderDoneSem},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{cmd.VKCommandBuffer},
	}}

	err = vk.Error(vk.QueueSubmit(p.GraphicsQueue.VKQueue, 1, submitInfo, p.waitFences[slot]))
	if err != nil {
		return fmt.Errorf("submitting frame: %w", err)
	}
	if err := p.frames.Submitted(); err != nil {
		return err
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{p.Swapchain.VKSwapchain},
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{renderDoneSem},
		PImageIndices:      []uint32{imageIndex},
	}

	res = vk.QueuePresent(p.PresentQueue.VKQueue, &presentInfo)

	p.frames.Advance()

	switch res {
	case vk.ErrorOutOfDate, vk.Suboptimal:
		p.frames.MarkStale()
		return nil
	case vk.Success:
		return nil
	default:
		return fmt.Errorf("presenting frame: %w", vk.Error(res))
	}
}

// rebuildSwapchain tears down and recreates everything sized to the
// swapchain. While the framebuffer has zero area (minimized window) it
// blocks waiting for window events.
func (p *GraphicsApp) rebuildSwapchain() error {
	for {
		p.refreshScreenExtent()
		if p.frames.BeginRebuild(p.screenExtent) {
			break
		}
		glfw.WaitEvents()
	}

	if err := p.Device.WaitIdle(); err != nil {
		return err
	}

	p.destroyFramebuffers()
	p.destroyDepthImage()
	p.destroyGraphicsPipelines()
	p.destroyRenderer()
	p.destroySwapchainAndImages()
	p.destroySemaphores()

	if err := p.createSwapchainAndImages(); err != nil {
		return err
	}
	if err := p.createRenderer(); err != nil {
		return err
	}
	if err := p.createGraphicsPipelines(); err != nil {
		return err
	}
	if err := p.createDepthImage(); err != nil {
		return err
	}
	if err := p.createFramebuffers(); err != nil {
		return err
	}
	if err := p.createSemaphores(); err != nil {
		return err
	}

	p.frames.FinishRebuild(len(p.SwapchainImages))

	logrus.WithFields(logrus.Fields{
		"extent":   fmt.Sprintf("%dx%d", p.Swapchain.Extent.Width, p.Swapchain.Extent.Height),
		"images":   len(p.SwapchainImages),
		"rebuilds": p.frames.RebuildCount(),
	}).Info("swapchain rebuilt")

	if p.OnSwapchainRebuild != nil {
		return p.OnSwapchainRebuild()
	}

	return nil
}

func (p *GraphicsApp) createGraphicsPipelines() error {
	if len(p.GraphicsPipelineConfigs) == 0 {
		return nil
	}

	names := make([]string, 0, len(p.GraphicsPipelineConfigs))
	configs := make([]GraphicsPipelineConfigurer, 0, len(p.GraphicsPipelineConfigs))
	for name, gconfig := range p.GraphicsPipelineConfigs {
		names = append(names, name)
		configs = append(configs, gconfig)
	}

	pipelines, err := p.Device.CreateGraphicsPipelines(p.PipelineCache, p.VKRenderPass, p.GetScreenExtent(), configs...)
	if err != nil {
		return err
	}

	p.GraphicsPipelines = make(map[string]vk.Pipeline)
	for i, name := range names {
		p.GraphicsPipelines[name] = pipelines[i]
	}

	return nil
}

func (p *GraphicsApp) destroyGraphicsPipelines() {
	for _, g := range p.GraphicsPipelines {
		vk.DestroyPipeline(p.Device.VKDevice, g, nil)
	}
	p.GraphicsPipelines = nil
}

func (p *GraphicsApp) refreshScreenExtent() {
	if p.Window == nil {
		return
	}
	width, height := p.Window.GetFramebufferSize()
	p.screenExtent = vk.Extent2D{Width: uint32(width), Height: uint32(height)}
}

// GetScreenExtent returns the current framebuffer extent.
func (p *GraphicsApp) GetScreenExtent() vk.Extent2D {
	return p.screenExtent
}

// Destroy tears down the graphics application.
func (p *GraphicsApp) Destroy() {
	vk.DeviceWaitIdle(p.Device.VKDevice)

	p.destroyGraphicsPipelines()

	for _, g := range p.GraphicsPipelineConfigs {
		g.Destroy()
	}

	if p.PipelineCache != nil {
		p.PipelineCache.Destroy()
	}

	p.destroyFramebuffers()
	p.destroyDepthImage()
	p.ResourceManager.Destroy()
	p.destroyRenderer()
	p.destroySwapchainAndImages()
	p.destroySyncObjects()

	p.GraphicsCommandPool.Destroy()

	vk.DestroySurface(p.Instance.VKInstance, p.VKSurface, nil)

	p.Device.Destroy()
	p.Instance.Destroy()
}

// VKRenderPassCreateInfo builds the default render pass: one color
// attachment matching the swapchain format and one depth attachment.
// ConfigureRenderPass may customize it before creation.
func (p *GraphicsApp) VKRenderPassCreateInfo() vk.RenderPassCreateInfo {
	attachmentDescriptions := []vk.AttachmentDescription{
		{
			Format:         p.Swapchain.Format,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpStore,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutPresentSrc,
		},
		{
			Format:         vk.FormatD32Sfloat,
			Samples:        vk.SampleCount1Bit,
			LoadOp:         vk.AttachmentLoadOpClear,
			StoreOp:        vk.AttachmentStoreOpDontCare,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		},
	}

	depthAttachmentRef := vk.AttachmentReference{
		Attachment: 1,
		Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
	}

	colorAttachments := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpassDescriptions := []vk.SubpassDescription{{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    1,
		PColorAttachments:       colorAttachments,
		PDepthStencilAttachment: &depthAttachmentRef,
	}}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit | vk.AccessDepthStencilAttachmentWriteBit),
	}

	return vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 2,
		PAttachments:    attachmentDescriptions,
		SubpassCount:    1,
		PSubpasses:      subpassDescriptions,
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
}

func (p *GraphicsApp) createRenderer() error {
	renderPassCreateInfo := p.VKRenderPassCreateInfo()

	if p.ConfigureRenderPass != nil {
		p.ConfigureRenderPass(renderPassCreateInfo)
	}

	var renderPass vk.RenderPass
	err := vk.Error(vk.CreateRenderPass(p.Device.VKDevice, &renderPassCreateInfo, nil, &renderPass))
	if err != nil {
		return fmt.Errorf("creating render pass: %w", err)
	}

	p.VKRenderPass = renderPass
	return nil
}

func (p *GraphicsApp) destroyRenderer() {
	vk.DestroyRenderPass(p.Device.VKDevice, p.VKRenderPass, nil)
	p.VKRenderPass = vk.NullRenderPass
}

func (p *GraphicsApp) createSwapchainAndImages() error {
	extent := p.GetScreenExtent()

	options := &CreateSwapchainOptions{
		ActualSize:                extent,
		DesiredNumSwapchainImages: p.DefaultNumSwapchainImages,
	}

	swapchain, err := p.Device.CreateSwapchain(p.VKSurface, p.GraphicsQueue, p.PresentQueue, options)
	if err != nil {
		return err
	}
	p.Swapchain = swapchain

	images, err := swapchain.GetImages()
	if err != nil {
		return err
	}
	p.SwapchainImages = images

	p.SwapchainImageViews = make([]*ImageView, len(images))
	for i, image := range images {
		view, err := image.CreateImageView()
		if err != nil {
			return err
		}
		p.SwapchainImageViews[i] = view
	}
	return nil
}

func (p *GraphicsApp) destroySwapchainAndImages() {
	for _, views := range p.SwapchainImageViews {
		views.Destroy()
	}
	p.SwapchainImageViews = nil

	// Swapchain images belong to the swapchain and go away with it.
	p.SwapchainImages = nil

	p.Swapchain.Destroy()
}

func (p *GraphicsApp) createDepthImage() error {
	var err error

	p.DepthImage, err = p.ResourceManager.NewImageResourceWithOptions(p.Swapchain.Extent,
		vk.FormatD32Sfloat, vk.ImageTilingOptimal, vk.ImageUsageDepthStencilAttachmentBit,
		vk.SharingModeExclusive, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return err
	}

	p.DepthImageView, err = p.DepthImage.CreateImageViewWithAspectMask(vk.ImageAspectFlags(vk.ImageAspectDepthBit))
	return err
}

func (p *GraphicsApp) destroyDepthImage() {
	if p.DepthImageView != nil {
		p.DepthImageView.Destroy()
		p.DepthImageView = nil
	}
	if p.DepthImage != nil {
		p.DepthImage.Destroy()
		p.DepthImage = nil
	}
}

func (p *GraphicsApp) createFramebuffers() error {
	p.Framebuffers = make([]vk.Framebuffer, len(p.SwapchainImageViews))
	for i, view := range p.SwapchainImageViews {
		attachments := []vk.ImageView{
			view.VKImageView,
			p.DepthImageView.VKImageView,
		}
		fbCreateInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      p.VKRenderPass,
			Layers:          1,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           p.Swapchain.Extent.Width,
			Height:          p.Swapchain.Extent.Height,
		}
		err := vk.Error(vk.CreateFramebuffer(p.Device.VKDevice, &fbCreateInfo, nil, &p.Framebuffers[i]))
		if err != nil {
			return fmt.Errorf("creating framebuffer %d: %w", i, err)
		}
	}
	return nil
}

func (p *GraphicsApp) destroyFramebuffers() {
	for i := range p.Framebuffers {
		vk.DestroyFramebuffer(p.Device.VKDevice, p.Framebuffers[i], nil)
	}
	p.Framebuffers = nil
}

func (p *GraphicsApp) createCommandBuffers() error {
	var err error
	p.GraphicsCommandBuffers, err = p.GraphicsCommandPool.AllocateBuffers(p.FramesInFlight)
	return err
}

func (p *GraphicsApp) createSemaphores() error {
	var err error

	p.imageAvailableSemaphores = make([]vk.Semaphore, len(p.SwapchainImages))
	p.renderFinishedSemaphores = make([]vk.Semaphore, len(p.SwapchainImages))

	for i := range p.SwapchainImages {
		p.imageAvailableSemaphores[i], err = p.Device.VKCreateSemaphore()
		if err != nil {
			return err
		}
		p.renderFinishedSemaphores[i], err = p.Device.VKCreateSemaphore()
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *GraphicsApp) destroySemaphores() {
	for _, s := range p.imageAvailableSemaphores {
		p.Device.VKDestroySemaphore(s)
	}
	for _, s := range p.renderFinishedSemaphores {
		p.Device.VKDestroySemaphore(s)
	}
	p.imageAvailableSemaphores = nil
	p.renderFinishedSemaphores = nil
}

func (p *GraphicsApp) createSyncObjects() error {
	if err := p.createSemaphores(); err != nil {
		return err
	}

	p.waitFences = make([]vk.Fence, p.FramesInFlight)
	for i := range p.waitFences {
		fence, err := p.Device.VKCreateFence(true)
		if err != nil {
			return err
		}
		p.waitFences[i] = fence
	}

	return nil
}

func (p *GraphicsApp) destroySyncObjects() {
	p.destroySemaphores()

	for _, fence := range p.waitFences {
		p.Device.VKDestroyFence(fence)
	}
	p.waitFences = nil
}
