package accounts

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/mrtrade/internal/models"
)

// EncodeDocument renders accounts as the users_db.json document: one JSON
// object keyed by email, indented by four spaces.
func EncodeDocument(accounts []*models.Account) ([]byte, error) {
	doc := make(map[string]*models.Account, len(accounts))
	for _, a := range accounts {
		doc[a.Email] = a
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode accounts: %w", err)
	}
	return data, nil
}

// DecodeDocument parses a users_db.json document. The map key is the
// authoritative email: a record whose email field is empty or differs
// takes the key. The result is sorted by email.
func DecodeDocument(data []byte) ([]*models.Account, error) {
	out, _, err := decodeDocument(data)
	return out, err
}

// keyMismatch records a record whose email field disagreed with its key.
type keyMismatch struct {
	Key   string
	Field string
}

func decodeDocument(data []byte) ([]*models.Account, []keyMismatch, error) {
	var doc map[string]*models.Account
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode accounts: %w", err)
	}

	out := make([]*models.Account, 0, len(doc))
	var mismatched []keyMismatch
	for email, a := range doc {
		if a == nil {
			return nil, nil, fmt.Errorf("decode accounts: empty record for %q", email)
		}
		if a.Email != "" && a.Email != email {
			mismatched = append(mismatched, keyMismatch{Key: email, Field: a.Email})
		}
		a.Email = email
		out = append(out, a)
	}

	sortByEmail(out)
	sort.Slice(mismatched, func(i, j int) bool { return mismatched[i].Key < mismatched[j].Key })
	return out, mismatched, nil
}

func sortByEmail(accounts []*models.Account) {
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Email < accounts[j].Email })
}

func clone(a *models.Account) *models.Account {
	c := *a
	return &c
}
