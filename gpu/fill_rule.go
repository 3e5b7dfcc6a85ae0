//go:build !nogpu

package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// FillRule selects how stencil coverage is accumulated.
type FillRule uint8

const (
	// NonZero counts winding: front faces increment, back faces decrement.
	NonZero FillRule = iota
	// EvenOdd counts parity: every covering face inverts the stencil value.
	EvenOdd
)

// String returns the rule name.
func (f FillRule) String() string {
	switch f {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	default:
		return "Unknown"
	}
}

// stencilFaces returns the front and back stencil states for the rule.
// The compare function is Always: the stencil pass never rejects fragments.
func (f FillRule) stencilFaces() (front, back hal.StencilFaceState) {
	front = hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationIncrementWrap,
	}
	back = front
	back.PassOp = hal.StencilOperationDecrementWrap
	if f == EvenOdd {
		front.PassOp = hal.StencilOperationInvert
		back.PassOp = hal.StencilOperationInvert
	}
	return front, back
}
