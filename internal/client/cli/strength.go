package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/mrtrade/internal/common"
	"github.com/dmitrijs2005/mrtrade/internal/signup"
)

func printStrength(w io.Writer, s signup.Strength) {
	fmt.Fprintf(w, "Password strength: %s (%d%%)\n", s.Level, s.Score)
}

// Strength scores a password without storing it.
func (a *App) Strength(ctx context.Context) error {
	password, err := getPassword("Password to check", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	printStrength(a.out, signup.Evaluate(string(password)))
	return nil
}
