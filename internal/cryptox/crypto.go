// Package cryptox implements the password hashing schemes used by the
// credential store.
//
// The default scheme is a single SHA-256 over the UTF-8 password rendered
// as 64 lowercase hex characters; it is what existing users_db.json files
// contain. argon2id is available as an opt-in scheme and is stored in PHC
// string form. Verify accepts both, so a store can switch schemes without
// locking out existing users.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mrtrade/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SchemeSHA256   = "sha256"
	SchemeArgon2ID = "argon2id"

	argon2Prefix = "$argon2id$"
	sha256HexLen = sha256.Size * 2
)

var (
	ErrUnknownScheme = errors.New("unknown hash scheme")
	ErrMalformedHash = errors.New("malformed password hash")
)

// Hasher turns a plaintext password into its at-rest representation.
type Hasher interface {
	Hash(password []byte) (string, error)
}

// NewHasher returns the Hasher for scheme. An empty scheme means sha256.
func NewHasher(scheme string) (Hasher, error) {
	switch strings.ToLower(scheme) {
	case SchemeSHA256, "":
		return SHA256Hasher{}, nil
	case SchemeArgon2ID:
		return NewArgon2Hasher(DefaultArgon2Params()), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
}

// SHA256Hex returns the lowercase hex SHA-256 digest of password.
func SHA256Hex(password []byte) string {
	sum := sha256.Sum256(password)
	return hex.EncodeToString(sum[:])
}

// SHA256Hasher is the unsalted digest scheme of the original store format.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password []byte) (string, error) {
	return SHA256Hex(password), nil
}

// Argon2Params are the argon2id cost parameters.
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

func DefaultArgon2Params() Argon2Params {
	return Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4, SaltLen: 16, KeyLen: 32}
}

type Argon2Hasher struct {
	params Argon2Params
}

func NewArgon2Hasher(p Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: p}
}

// Hash derives an argon2id key with a random salt and encodes it as
// $argon2id$v=19$m=<mem>,t=<time>,p=<threads>$<salt>$<key>.
func (h *Argon2Hasher) Hash(password []byte) (string, error) {
	p := h.params
	salt := common.GenerateRandByteArray(int(p.SaltLen))
	key := argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix, argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encoded, which may be either a
// SHA-256 hex digest or an argon2id PHC string.
func Verify(password []byte, encoded string) (bool, error) {
	if strings.HasPrefix(encoded, argon2Prefix) {
		return verifyArgon2(password, encoded)
	}
	if !isSHA256Hex(encoded) {
		return false, ErrMalformedHash
	}
	candidate := SHA256Hex(password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(encoded)) == 1, nil
}

// IsEncodedHash reports whether s looks like the output of one of the
// supported schemes rather than a plaintext password.
func IsEncodedHash(s string) bool {
	if strings.HasPrefix(s, argon2Prefix) {
		_, _, _, err := decodeArgon2(s)
		return err == nil
	}
	return isSHA256Hex(s)
}

func isSHA256Hex(s string) bool {
	if len(s) != sha256HexLen {
		return false
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

func verifyArgon2(password []byte, encoded string) (bool, error) {
	p, salt, key, err := decodeArgon2(encoded)
	if err != nil {
		return false, err
	}
	candidate := argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeArgon2(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrMalformedHash
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrMalformedHash
	}

	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
