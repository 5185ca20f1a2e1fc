package mocks

import (
	"github.com/stretchr/testify/mock"
)

// Recorder is a mock of service.Recorder.
type Recorder struct {
	mock.Mock
}

// NewRecorder creates a Recorder mock whose expectations are asserted on cleanup.
func NewRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *Recorder {
	m := &Recorder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Recorder) SessionEvent(operation, outcome string) {
	m.Called(operation, outcome)
}
