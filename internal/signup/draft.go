// Package signup collects a new account over the three registration steps
// and scores password strength while it is typed.
package signup

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/models"
)

type Step int

const (
	StepProfile Step = iota + 1
	StepContact
	StepPassword
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepProfile:
		return "profile"
	case StepContact:
		return "contact"
	case StepPassword:
		return "password"
	case StepDone:
		return "done"
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// MsgPasswordMismatch is shown when the confirmation differs.
const MsgPasswordMismatch = "Passwords don't match"

var (
	ErrPasswordMismatch = errors.New("passwords don't match")
	ErrWrongStep        = errors.New("signup step out of order")
)

// RequiredFieldError names a mandatory field left blank.
type RequiredFieldError struct {
	Field string
}

func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Draft accumulates the fields of one registration. Steps must be
// completed in order; Back reopens the previous one.
type Draft struct {
	step     Step
	account  models.Account
	password []byte
}

func NewDraft() *Draft {
	return &Draft{step: StepProfile}
}

func (d *Draft) Step() Step { return d.step }

// SetProfile completes step one. Values are stored as typed; blank checks
// ignore surrounding spaces.
func (d *Draft) SetProfile(fullName, username string) error {
	if err := d.expect(StepProfile); err != nil {
		return err
	}
	if err := required("full name", fullName); err != nil {
		return err
	}
	if err := required("username", username); err != nil {
		return err
	}

	d.account.FullName = fullName
	d.account.Username = username
	d.step = StepContact
	return nil
}

// SetContact completes step two. Country is optional. The email is
// trimmed because login trims it too.
func (d *Draft) SetContact(email, phone, country string) error {
	if err := d.expect(StepContact); err != nil {
		return err
	}
	if err := required("email", email); err != nil {
		return err
	}
	if err := required("phone", phone); err != nil {
		return err
	}

	d.account.Email = strings.TrimSpace(email)
	d.account.Phone = phone
	d.account.Country = country
	d.step = StepPassword
	return nil
}

// SetPassword completes step three. The draft keeps its own copy of
// password; Reset wipes it.
func (d *Draft) SetPassword(password, confirm []byte) error {
	if err := d.expect(StepPassword); err != nil {
		return err
	}
	if len(password) == 0 {
		return &RequiredFieldError{Field: "password"}
	}
	if !bytes.Equal(password, confirm) {
		return ErrPasswordMismatch
	}

	common.WipeByteArray(d.password)
	d.password = bytes.Clone(password)
	d.step = StepDone
	return nil
}

// Back returns to the previous step, keeping what was entered.
func (d *Draft) Back() Step {
	if d.step > StepProfile {
		d.step--
	}
	return d.step
}

func (d *Draft) Complete() bool { return d.step == StepDone }

// Account returns the collected profile. PasswordHash is left empty; the
// credential store fills it in.
func (d *Draft) Account() models.Account {
	a := d.account
	a.PasswordHash = ""
	return a
}

func (d *Draft) Password() []byte { return d.password }

// Reset wipes the password and starts over.
func (d *Draft) Reset() {
	common.WipeByteArray(d.password)
	*d = Draft{step: StepProfile}
}

func (d *Draft) expect(s Step) error {
	if d.step != s {
		return fmt.Errorf("%w: at %s, not %s", ErrWrongStep, d.step, s)
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &RequiredFieldError{Field: field}
	}
	return nil
}
