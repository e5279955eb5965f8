package proto

import (
	"github.com/dmitrijs2005/mrtrade/internal/models"
	"google.golang.org/protobuf/types/known/structpb"
)

// Struct field names used on the wire.
const (
	FieldFullName    = "full_name"
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldCountry     = "country"
	FieldPassword    = "password"
	FieldMessage     = "message"
	FieldAccessToken = "access_token"
)

func profileFields(a models.Account) map[string]any {
	return map[string]any{
		FieldFullName: a.FullName,
		FieldUsername: a.Username,
		FieldEmail:    a.Email,
		FieldPhone:    a.Phone,
		FieldCountry:  a.Country,
	}
}

// NewCreateUserRequest packs the profile of a and the plaintext password.
func NewCreateUserRequest(a models.Account, password string) (*structpb.Struct, error) {
	f := profileFields(a)
	f[FieldPassword] = password
	return structpb.NewStruct(f)
}

// ParseCreateUserRequest is the inverse of NewCreateUserRequest.
func ParseCreateUserRequest(s *structpb.Struct) (models.Account, string) {
	return ProfileFromStruct(s), str(s, FieldPassword)
}

func NewVerifyLoginRequest(email, password string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{FieldEmail: email, FieldPassword: password})
}

func ParseVerifyLoginRequest(s *structpb.Struct) (email, password string) {
	return str(s, FieldEmail), str(s, FieldPassword)
}

func NewVerifyLoginResponse(message, token string) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{FieldMessage: message, FieldAccessToken: token})
}

func ParseVerifyLoginResponse(s *structpb.Struct) (message, token string) {
	return str(s, FieldMessage), str(s, FieldAccessToken)
}

// ProfileToStruct encodes every field of a except the password hash.
func ProfileToStruct(a models.Account) (*structpb.Struct, error) {
	return structpb.NewStruct(profileFields(a))
}

func ProfileFromStruct(s *structpb.Struct) models.Account {
	return models.Account{
		FullName: str(s, FieldFullName),
		Username: str(s, FieldUsername),
		Email:    str(s, FieldEmail),
		Phone:    str(s, FieldPhone),
		Country:  str(s, FieldCountry),
	}
}

func str(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}
