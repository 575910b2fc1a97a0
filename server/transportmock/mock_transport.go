// Package transportmock provides a hand-written go.uber.org/mock-shaped
// double for server.Transport, in the shape mockgen would produce for:
//
//	//go:generate mockgen -destination=mock_transport.go -package=transportmock wormarena/server Transport
//
// Written by hand since the Go toolchain is not run in this exercise.
package transportmock

import (
	"reflect"

	"go.uber.org/mock/gomock"
)

// MockTransport is a mock of the server.Transport interface.
type MockTransport struct {
	ctrl     *gomock.Controller
	recorder *MockTransportMockRecorder
}

// MockTransportMockRecorder is the mock recorder for MockTransport.
type MockTransportMockRecorder struct {
	mock *MockTransport
}

// NewMockTransport creates a new mock instance.
func NewMockTransport(ctrl *gomock.Controller) *MockTransport {
	m := &MockTransport{ctrl: ctrl}
	m.recorder = &MockTransportMockRecorder{m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTransport) EXPECT() *MockTransportMockRecorder {
	return m.recorder
}

// Send mocks base method.
func (m *MockTransport) Send(b []byte) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", b)
	ret0, _ := ret[0].(bool)
	return ret0
}

// Send indicates an expected call of Send.
func (mr *MockTransportMockRecorder) Send(b any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockTransport)(nil).Send), b)
}

// Receive mocks base method.
func (m *MockTransport) Receive() ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Receive")
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Receive indicates an expected call of Receive.
func (mr *MockTransportMockRecorder) Receive() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Receive", reflect.TypeOf((*MockTransport)(nil).Receive))
}

// CloseWithCode mocks base method.
func (m *MockTransport) CloseWithCode(code int, reason string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "CloseWithCode", code, reason)
}

// CloseWithCode indicates an expected call of CloseWithCode.
func (mr *MockTransportMockRecorder) CloseWithCode(code, reason any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CloseWithCode", reflect.TypeOf((*MockTransport)(nil).CloseWithCode), code, reason)
}

// Close mocks base method.
func (m *MockTransport) Close() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Close")
}

// Close indicates an expected call of Close.
func (mr *MockTransportMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockTransport)(nil).Close))
}
