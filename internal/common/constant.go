package common

// AuthorizationHeader is the HTTP header carrying the bearer token on
// outbound authenticated requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// PDFMagic is the byte signature every PDF body must start with.
const PDFMagic = "%PDF-"

// Fixed file names for the persisted session under the state directory.
const (
	TokenFileName = "token"
	UserFileName  = "user.json"
)
