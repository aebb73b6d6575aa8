// Package loginflow implements the three-step login interaction
// (mobile number, then OTP, then PIN) independent of how it is rendered.
package loginflow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/casedesk/cli/internal/auth"
	"github.com/casedesk/cli/internal/utils"
)

// Phase is the step the flow is waiting on
type Phase int

const (
	AwaitingMobile Phase = iota
	AwaitingOTP
	AwaitingPIN
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case AwaitingMobile:
		return "mobile"
	case AwaitingOTP:
		return "otp"
	case AwaitingPIN:
		return "pin"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

var (
	// ErrBusy is returned while a submission is awaiting its response
	ErrBusy = errors.New("a request is already in progress")
	// ErrComplete is returned when submitting after the flow finished
	ErrComplete = errors.New("login already complete")
	// ErrWrongPhase is returned by actions that do not apply to the current phase
	ErrWrongPhase = errors.New("action not available in this step")
)

// Authenticator performs the remote side of each step
type Authenticator interface {
	SendOTP(ctx context.Context, mobile string) auth.Result
	LoginWithOTP(ctx context.Context, mobile, otp string) auth.Result
	LoginWithPIN(ctx context.Context, pin string) auth.Result
}

// Flow is one login attempt. It is safe for concurrent use; at most one
// submission is in flight at a time.
type Flow struct {
	auth Authenticator

	mu     sync.Mutex
	phase  Phase
	mobile string
	otp    [utils.OTPLength]string
	pin    string
	errMsg string
	busy   bool
}

// New starts a fresh flow in AwaitingMobile
func New(a Authenticator) *Flow {
	return &Flow{auth: a}
}

// Phase returns the current step
func (f *Flow) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Mobile returns the entered mobile number
func (f *Flow) Mobile() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mobile
}

// OTP returns the entered OTP digits in position order
func (f *Flow) OTP() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.otpLocked()
}

// PIN returns the entered PIN
func (f *Flow) PIN() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pin
}

// Error returns the message to display, or ""
func (f *Flow) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Busy reports whether a submission is awaiting its response
func (f *Flow) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// SetMobile records typed input, keeping at most 10 digits. Once an OTP
// has been requested the number is fixed until ChangeNumber.
func (f *Flow) SetMobile(raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return ErrBusy
	}
	if f.phase != AwaitingMobile {
		return ErrWrongPhase
	}
	f.mobile = utils.DigitsOnly(raw, utils.MobileLength)
	return nil
}

// SetOTP fills the OTP positions from pasted input
func (f *Flow) SetOTP(raw string) {
	digits := utils.DigitsOnly(raw, utils.OTPLength)

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.otp {
		f.otp[i] = ""
		if i < len(digits) {
			f.otp[i] = digits[i : i+1]
		}
	}
}

// SetOTPDigit sets one OTP position and returns the position that should
// take focus next. An empty value clears the position.
func (f *Flow) SetOTPDigit(index int, value string) int {
	if index < 0 || index >= utils.OTPLength {
		return index
	}
	digits := utils.DigitsOnly(value, 0)

	f.mu.Lock()
	defer f.mu.Unlock()
	if digits == "" {
		f.otp[index] = ""
		return index
	}
	f.otp[index] = digits[len(digits)-1:]
	if index < utils.OTPLength-1 {
		return index + 1
	}
	return index
}

// SetPIN records typed input, keeping at most 4 digits
func (f *Flow) SetPIN(raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pin = utils.DigitsOnly(raw, utils.PINLength)
}

// ChangeNumber returns from the OTP step to mobile entry, clearing the
// mobile number, the OTP and any displayed error
func (f *Flow) ChangeNumber() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return ErrBusy
	}
	if f.phase != AwaitingOTP {
		return ErrWrongPhase
	}

	f.phase = AwaitingMobile
	f.mobile = ""
	f.otp = [utils.OTPLength]string{}
	f.errMsg = ""
	return nil
}

// Submit validates the current step's input and, if it is well formed,
// performs the remote call. On success the flow advances; on failure it
// stays in place and Error reports why. The returned error is a
// *utils.ValidationError for local format failures, a *utils.AuthError for
// remote failures, or ErrBusy / ErrComplete.
func (f *Flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return ErrBusy
	}
	phase := f.phase
	if phase == Authenticated {
		f.mu.Unlock()
		return ErrComplete
	}

	mobile, otp, pin := f.mobile, f.otpLocked(), f.pin
	if err := validate(phase, mobile, otp, pin); err != nil {
		f.errMsg = err.Error()
		f.mu.Unlock()
		return err
	}
	f.busy = true
	f.errMsg = ""
	f.mu.Unlock()

	var res auth.Result
	switch phase {
	case AwaitingMobile:
		res = f.auth.SendOTP(ctx, mobile)
	case AwaitingOTP:
		res = f.auth.LoginWithOTP(ctx, mobile, otp)
	case AwaitingPIN:
		res = f.auth.LoginWithPIN(ctx, pin)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false

	if !res.Success {
		f.errMsg = res.Error
		return &utils.AuthError{Message: res.Error}
	}

	f.phase = phase + 1
	return nil
}

func (f *Flow) otpLocked() string {
	return strings.Join(f.otp[:], "")
}

func validate(phase Phase, mobile, otp, pin string) error {
	switch phase {
	case AwaitingMobile:
		return utils.ValidateMobile(mobile)
	case AwaitingOTP:
		return utils.ValidateOTP(otp)
	case AwaitingPIN:
		return utils.ValidatePIN(pin)
	}
	return nil
}
