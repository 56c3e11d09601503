// Package sms is the mobile-verification collaborator. The real system
// would talk to an SMS gateway; this provider is a demo stub and must not
// be treated as a security mechanism.
package sms

import (
	"sync"

	"github.com/sirupsen/logrus"
)

type Provider interface {
	SendOtp(mobile string) error
	VerifyOtp(mobile, code string) bool
}

// StubProvider logs the "sent" code and accepts a single hardcoded value.
type StubProvider struct {
	mu   sync.Mutex
	sent map[string]bool
}

const stubCode = "123456"

func NewStubProvider() *StubProvider {
	return &StubProvider{sent: make(map[string]bool)}
}

func (p *StubProvider) SendOtp(mobile string) error {
	p.mu.Lock()
	p.sent[mobile] = true
	p.mu.Unlock()

	logrus.WithField("mobile", mobile).Info("stub OTP sent")
	return nil
}

// VerifyOtp accepts the stub code only for numbers an OTP was sent to.
func (p *StubProvider) VerifyOtp(mobile, code string) bool {
	p.mu.Lock()
	wasSent := p.sent[mobile]
	p.mu.Unlock()

	return wasSent && code == stubCode
}
