package pipeline

import "os"

// handle owns at most one file. Ownership moves with take, after which the
// handle is empty and Close is a no-op.
type handle struct {
	f *os.File
}

func (h *handle) take() *os.File {
	f := h.f
	h.f = nil
	return f
}

func (h *handle) empty() bool {
	return h.f == nil
}

func (h *handle) Close() error {
	if f := h.take(); f != nil {
		return f.Close()
	}
	return nil
}
