package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mrtrade/internal/client/services"
	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/signup"
)

// Login prompts for credentials and authenticates. On success the profile
// of the user is shown.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.logger.Debug(ctx, "login failed", "error", err)
		fmt.Fprintln(a.out, services.Message(err))
		return err
	}

	fmt.Fprintln(a.out, msg)
	return a.Profile(ctx)
}

// Signup walks through the three registration steps. Invalid input is
// reported and the step is asked again; "back" at the email prompt returns
// to the previous step.
func (a *App) Signup(ctx context.Context) error {
	d := signup.NewDraft()
	defer d.Reset()

	for !d.Complete() {
		var verr error

		switch d.Step() {
		case signup.StepProfile:
			fmt.Fprintln(a.out, "Step 1 of 3: profile")
			fullName, err := getSimpleText(a.reader, "Full name", a.out)
			if err != nil {
				return err
			}
			username, err := getSimpleText(a.reader, "Username", a.out)
			if err != nil {
				return err
			}
			verr = d.SetProfile(fullName, username)

		case signup.StepContact:
			fmt.Fprintln(a.out, "Step 2 of 3: contact (type 'back' to return)")
			email, err := getSimpleText(a.reader, "Email", a.out)
			if err != nil {
				return err
			}
			if email == "back" {
				d.Back()
				continue
			}
			phone, err := getSimpleText(a.reader, "Phone", a.out)
			if err != nil {
				return err
			}
			country, err := getSimpleText(a.reader, "Country (optional)", a.out)
			if err != nil {
				return err
			}
			verr = d.SetContact(email, phone, country)

		case signup.StepPassword:
			fmt.Fprintln(a.out, "Step 3 of 3: password")
			verr = a.readNewPassword(d)
			if verr != nil && !isValidationError(verr) {
				return verr
			}
		}

		if verr != nil {
			fmt.Fprintln(a.out, services.Message(verr))
		}
	}

	msg, err := a.authService.Register(ctx, d)
	if err != nil {
		a.logger.Debug(ctx, "signup failed", "error", err)
		fmt.Fprintln(a.out, services.Message(err))
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) readNewPassword(d *signup.Draft) error {
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	printStrength(a.out, signup.Evaluate(string(password)))

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	return d.SetPassword(password, confirm)
}

// isValidationError tells input the user can correct from I/O failures.
func isValidationError(err error) bool {
	var rf *signup.RequiredFieldError
	return errors.As(err, &rf) || errors.Is(err, signup.ErrPasswordMismatch)
}

// Forgot asks for an email and requests a reset link for it.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email address", a.out)
	if err != nil {
		return err
	}

	msg, err := a.authService.ForgotPassword(ctx, email)
	if err != nil {
		fmt.Fprintln(a.out, services.Message(err))
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

// Profile prints the stored data of the logged-in user.
func (a *App) Profile(ctx context.Context) error {
	account, err := a.authService.Profile(ctx)
	if err != nil {
		fmt.Fprintln(a.out, services.Message(err))
		return err
	}

	fmt.Fprintln(a.out, "Welcome to MR Trade!")
	fmt.Fprintf(a.out, "  Full name: %s\n", account.FullName)
	fmt.Fprintf(a.out, "  Username:  %s\n", account.Username)
	fmt.Fprintf(a.out, "  Email:     %s\n", account.Email)
	fmt.Fprintf(a.out, "  Phone:     %s\n", account.Phone)
	fmt.Fprintf(a.out, "  Country:   %s\n", account.Country)
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
