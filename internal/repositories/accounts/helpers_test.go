package accounts

import (
	"io"
	"testing"

	"github.com/dmitrijs2005/mrtrade/internal/logging"
	"github.com/dmitrijs2005/mrtrade/internal/models"
	"github.com/stretchr/testify/require"
)

const secretHash = "b7a40fee20e8d4a5b4a2bcd1c8c0ee5e1b5e4a7c8fd0d3ec6a3f1e2b9c4d5a6f"

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	l, err := logging.New(io.Discard, "text", "debug")
	require.NoError(t, err)
	return l
}

func account(email string) *models.Account {
	return &models.Account{
		FullName:     "Full " + email,
		Username:     "user",
		Email:        email,
		Phone:        "+3100000",
		Country:      "NL",
		PasswordHash: secretHash,
	}
}
