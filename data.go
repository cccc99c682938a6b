package vktut

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// IndexSliceUint16 is a convenience IndexSource over 16 bit indices.
type IndexSliceUint16 []uint16

func (i IndexSliceUint16) Bytes() []byte {
	size := len(i) * int(unsafe.Sizeof(uint16(0)))
	return ToBytes(unsafe.Pointer(&i[0]), size)
}

func (i IndexSliceUint16) IndexType() vk.IndexType {
	return vk.IndexTypeUint16
}

// IndexSliceUint32 is a convenience IndexSource over 32 bit indices.
type IndexSliceUint32 []uint32

func (i IndexSliceUint32) Bytes() []byte {
	size := len(i) * int(unsafe.Sizeof(uint32(0)))
	return ToBytes(unsafe.Pointer(&i[0]), size)
}

func (i IndexSliceUint32) IndexType() vk.IndexType {
	return vk.IndexTypeUint32
}
