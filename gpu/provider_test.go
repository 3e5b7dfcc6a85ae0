//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
type mockProvider struct {
	format gputypes.TextureFormat
}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }

// mockHalProvider also exposes HAL handles.
type mockHalProvider struct {
	mockProvider
	device any
	queue  any
}

func (m *mockHalProvider) HalDevice() any { return m.device }
func (m *mockHalProvider) HalQueue() any  { return m.queue }

func TestNewFromProvider(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p := &mockHalProvider{
		mockProvider: mockProvider{format: gputypes.TextureFormatRGBA8Unorm},
		device:       device,
		queue:        queue,
	}
	r, err := NewFromProvider(p)
	if err != nil {
		t.Fatalf("NewFromProvider failed: %v", err)
	}
	defer r.Destroy()

	if r.Device() != device {
		t.Error("renderer does not use the provider's device")
	}
	if r.opts.colorFormat != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("colorFormat = %v, want the provider surface format", r.opts.colorFormat)
	}
}

func TestNewFromProviderOptionOverridesSurfaceFormat(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p := &mockHalProvider{
		mockProvider: mockProvider{format: gputypes.TextureFormatRGBA8Unorm},
		device:       device,
		queue:        queue,
	}
	r, err := NewFromProvider(p, WithColorFormat(gputypes.TextureFormatBGRA8Unorm))
	if err != nil {
		t.Fatalf("NewFromProvider failed: %v", err)
	}
	defer r.Destroy()

	if r.opts.colorFormat != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("colorFormat = %v, want BGRA8Unorm", r.opts.colorFormat)
	}
}

func TestNewFromProviderErrors(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
	}{
		{"no HAL access", &mockProvider{}},
		{"device wrong type", &mockHalProvider{device: "device", queue: queue}},
		{"queue wrong type", &mockHalProvider{device: device, queue: 42}},
		{"nil device", &mockHalProvider{device: hal.Device(nil), queue: queue}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFromProvider(tt.provider)
			if !errors.Is(err, ErrProviderNotHAL) {
				t.Errorf("error = %v, want ErrProviderNotHAL", err)
			}
			if r != nil {
				t.Error("expected nil renderer")
			}
		})
	}
}
