package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultStoreFile is the file name of the JSON account document.
const DefaultStoreFile = "users_db.json"
