package vktut

import (
	"fmt"
	"unsafe"

	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// InitializeHeadless initializes Vulkan without any window system glue, for
// tools which only need to query devices.
func InitializeHeadless() error {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return fmt.Errorf("loading vulkan proc addr: %w", err)
	}
	if err := vk.Init(); err != nil {
		return fmt.Errorf("initializing vulkan: %w", err)
	}
	return nil
}

// Version identifies application, engine and API versions.
type Version struct {
	Major int
	Minor int
	Patch int
}

// VKVersion returns the packed Vulkan representation of this version.
func (v *Version) VKVersion() uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}

// App describes this application to Vulkan and carries the layers and
// extensions the instance will be created with.
type App struct {
	// Name the name of the application
	Name string
	// EngineName the name of the engine associated with the application
	EngineName string
	// Version the version of the application
	Version Version
	// APIVersion the minimum version of the Vulkan API required (defaults to 1.0.0)
	APIVersion Version

	EnabledLayers     []string
	EnabledExtensions []string
}

// SupportedLayers returns the instance layers Vulkan reports. Vulkan must
// have been initialized first.
func SupportedLayers() ([]string, error) {
	var count uint32
	err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil))
	if err != nil {
		return nil, fmt.Errorf("enumerating instance layers: %w", err)
	}
	props := make([]vk.LayerProperties, count)
	err = vk.Error(vk.EnumerateInstanceLayerProperties(&count, props))
	if err != nil {
		return nil, fmt.Errorf("enumerating instance layers: %w", err)
	}
	names := make([]string, 0, count)
	for _, layer := range props {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// SupportedExtensions returns the instance extensions Vulkan reports. Vulkan
// must have been initialized first.
func SupportedExtensions() ([]string, error) {
	var count uint32
	err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil))
	if err != nil {
		return nil, fmt.Errorf("enumerating instance extensions: %w", err)
	}
	props := make([]vk.ExtensionProperties, count)
	err = vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, props))
	if err != nil {
		return nil, fmt.Errorf("enumerating instance extensions: %w", err)
	}
	names := make([]string, 0, count)
	for _, ext := range props {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// EnableDebugging enables the Khronos validation layer and the debug
// reporting extensions. Call before CreateInstance.
func (a *App) EnableDebugging() {
	a.EnableLayer("VK_LAYER_KHRONOS_validation")
	a.EnableExtension("VK_EXT_debug_utils")
	a.EnableExtension("VK_EXT_debug_report")
}

// EnableLayer enables a layer if the installed Vulkan supports it.
func (a *App) EnableLayer(layer string) (*App, error) {
	layers, err := SupportedLayers()
	if err != nil {
		return a, fmt.Errorf("getting supported layers: %w", err)
	}
	for _, l := range layers {
		if l == layer {
			a.EnabledLayers = append(a.EnabledLayers, layer)
			return a, nil
		}
	}
	return a, fmt.Errorf("layer %q not supported", layer)
}

// EnableExtension enables an instance extension.
func (a *App) EnableExtension(extension string) *App {
	a.EnabledExtensions = append(a.EnabledExtensions, extension)
	return a
}

// VKApplicationInfo builds the vk.ApplicationInfo for this app.
func (a *App) VKApplicationInfo() vk.ApplicationInfo {
	if a.APIVersion.Major < 1 {
		a.APIVersion.Major = 1
	}
	return vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         a.APIVersion.VKVersion(),
		ApplicationVersion: a.Version.VKVersion(),
		PApplicationName:   safeString(a.Name),
		PEngineName:        safeString(a.EngineName),
	}
}

// CreateInstance creates the Vulkan instance with the app's enabled layers
// and extensions.
func (a *App) CreateInstance() (*Instance, error) {
	appInfo := a.VKApplicationInfo()

	extensions := safeStrings(a.EnabledExtensions)
	layers := safeStrings(a.EnabledLayers)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	instance := &Instance{}

	err := vk.Error(vk.CreateInstance(&createInfo, nil, &instance.VKInstance))
	if err != nil {
		return nil, fmt.Errorf("creating instance: %w", err)
	}
	vk.InitInstance(instance.VKInstance)

	return instance, nil
}

// Instance is an instance of the Vulkan subsystem.
type Instance struct {
	// VKInstance is the native Vulkan instance object
	VKInstance vk.Instance
}

func (i *Instance) Destroy() {
	vk.DestroyInstance(i.VKInstance, nil)
}

// PhysicalDevices returns the physical devices known to this instance.
func (i *Instance) PhysicalDevices() ([]*PhysicalDevice, error) {
	var deviceCount uint32
	err := vk.Error(vk.EnumeratePhysicalDevices(i.VKInstance, &deviceCount, nil))
	if err != nil {
		return nil, fmt.Errorf("enumerating physical devices: %w", err)
	}

	if deviceCount == 0 {
		return nil, nil
	}

	devices := make([]vk.PhysicalDevice, deviceCount)
	err = vk.Error(vk.EnumeratePhysicalDevices(i.VKInstance, &deviceCount, devices))
	if err != nil {
		return nil, fmt.Errorf("enumerating physical devices: %w", err)
	}

	ret := make([]*PhysicalDevice, deviceCount)
	for n, device := range devices {
		ret[n] = &PhysicalDevice{VKPhysicalDevice: device}
		vk.GetPhysicalDeviceProperties(device, &ret[n].VKPhysicalDeviceProperties)
		ret[n].VKPhysicalDeviceProperties.Deref()
		ret[n].DeviceName = vk.ToString(ret[n].VKPhysicalDeviceProperties.DeviceName[:])
	}
	return ret, nil
}

// UseDefaultDebugCallback routes validation output through the package logger.
func (i *Instance) UseDefaultDebugCallback() error {
	return i.SetDebugCallback(defaultDebugCallback)
}

// SetDebugCallback registers a debug report callback for errors and warnings.
func (i *Instance) SetDebugCallback(callback vk.DebugReportCallbackFunc) error {
	var debugCallback vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(i.VKInstance, &vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit),
		PfnCallback: callback,
	}, nil, &debugCallback)
	return vk.Error(ret)
}

func defaultDebugCallback(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	entry := logrus.WithFields(logrus.Fields{
		"layer": pLayerPrefix,
		"code":  messageCode,
	})

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		entry.Error(pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0,
		flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		entry.Warn(pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		entry.Debug(pMessage)
	default:
		entry.Info(pMessage)
	}
	return vk.Bool32(vk.False)
}
