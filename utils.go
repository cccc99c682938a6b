package vktut

import (
	"unsafe"
)

var end = "\x00"
var endChar byte = '\x00'

// ToBytes reinterprets ptr as a byte slice of lenInBytes bytes. The caller
// must keep the underlying allocation alive for as long as the slice is used.
func ToBytes(ptr unsafe.Pointer, lenInBytes int) []byte {
	const m = 0x7fffffff
	return (*[m]byte)(ptr)[:lenInBytes]
}

// sliceUint32 reinterprets SPIR-V bytes as the uint32 words Vulkan expects.
func sliceUint32(data []byte) []uint32 {
	const m = 0x7fffffff
	return (*[m / 4]uint32)(unsafe.Pointer((*sliceHeader)(unsafe.Pointer(&data)).Data))[:len(data)/4]
}

type sliceHeader struct {
	Data uintptr
	Len  int
	Cap  int
}

// safeString ensures s is NUL terminated, which the C side of the Vulkan
// binding requires for every string it is handed.
func safeString(s string) string {
	if len(s) == 0 {
		return end
	}
	if s[len(s)-1] != endChar {
		return s + end
	}
	return s
}

func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = safeString(list[i])
	}
	return out
}
