package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/casedesk/cli/internal/loginflow"
	"github.com/casedesk/cli/internal/utils"
)

// changeNumber is the answer at the OTP prompt that returns to mobile entry
const changeNumber = "c"

// Prompter drives a login flow from a line-oriented terminal. Preset
// values are tried once before prompting.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	Mobile string
	OTP    string
	PIN    string
}

// Run walks flow to the Authenticated phase. It returns when login
// completes, the input ends, or ctx is done.
func (p *Prompter) Run(ctx context.Context, flow *loginflow.Flow) error {
	reader := bufio.NewReader(p.In)

	for flow.Phase() != loginflow.Authenticated {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch flow.Phase() {
		case loginflow.AwaitingMobile:
			value, err := p.value(reader, &p.Mobile, "Mobile number: ")
			if err != nil {
				return err
			}
			if err := flow.SetMobile(value); err != nil {
				return err
			}

		case loginflow.AwaitingOTP:
			value, err := p.value(reader, &p.OTP, fmt.Sprintf("OTP sent to +91 %s. Enter OTP ('%s' to change number): ", flow.Mobile(), changeNumber))
			if err != nil {
				return err
			}
			if strings.EqualFold(value, changeNumber) {
				if err := flow.ChangeNumber(); err != nil {
					return err
				}
				continue
			}
			flow.SetOTP(value)

		case loginflow.AwaitingPIN:
			value, err := p.value(reader, &p.PIN, "PIN: ")
			if err != nil {
				return err
			}
			flow.SetPIN(value)
		}

		err := flow.Submit(ctx)
		switch {
		case err == nil:
		case utils.IsValidationError(err), isAuthError(err):
			fmt.Fprintln(p.Out, flow.Error())
		default:
			return err
		}
	}
	return nil
}

// value returns the preset (clearing it so a rejected preset is not
// retried) or reads a line after printing prompt
func (p *Prompter) value(r *bufio.Reader, preset *string, prompt string) (string, error) {
	if *preset != "" {
		v := *preset
		*preset = ""
		return v, nil
	}

	fmt.Fprint(p.Out, prompt)
	line, err := r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("input closed before login completed")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func isAuthError(err error) bool {
	var authErr *utils.AuthError
	return errors.As(err, &authErr)
}
