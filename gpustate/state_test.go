package gpustate

import "testing"

func TestResourceStateString(t *testing.T) {
	tests := []struct {
		state ResourceState
		want  string
	}{
		{StateInvalid, "Invalid"},
		{StateCommon, "Common"},
		{StateCopySource, "CopySource"},
		{StateCopyDest, "CopyDest"},
		{StateRenderTarget, "RenderTarget"},
		{StateDepthWrite, "DepthWrite"},
		{StateDepthRead, "DepthRead"},
		{StateShaderResource, "ShaderResource"},
		{StateUnorderedAccess, "UnorderedAccess"},
		{StateIndirectArgument, "IndirectArgument"},
		{StatePresent, "Present"},
		{ResourceState(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResourceStateIsReadOnly(t *testing.T) {
	readOnly := []ResourceState{
		StateCopySource, StateDepthRead, StateShaderResource,
		StateIndirectArgument, StatePresent,
	}
	writable := []ResourceState{
		StateInvalid, StateCommon, StateCopyDest, StateRenderTarget,
		StateDepthWrite, StateUnorderedAccess,
	}

	for _, s := range readOnly {
		if !s.IsReadOnly() {
			t.Errorf("%v.IsReadOnly() = false, want true", s)
		}
	}
	for _, s := range writable {
		if s.IsReadOnly() {
			t.Errorf("%v.IsReadOnly() = true, want false", s)
		}
	}
}

func TestNewResourceTrackerSentinel(t *testing.T) {
	tr := NewResourceTracker()
	if tr.IsInitialized() {
		t.Error("IsInitialized() = true before Init, want false")
	}
	tr.Init(1, StateCommon, false)
	if !tr.IsInitialized() {
		t.Error("IsInitialized() = false after Init, want true")
	}
	tr.Release()
	if tr.IsInitialized() {
		t.Error("IsInitialized() = true after Release, want false")
	}
}
