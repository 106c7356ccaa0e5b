package curl

import "github.com/unkn0wn-root/curlparse/internal/util"

const (
	cmdCurl    = "curl"
	cmdSudo    = "sudo"
	cmdEnv     = "env"
	cmdCommand = "command"
	cmdTime    = "time"
	cmdNoGlob  = "noglob"
)

var promptPrefixes = []string{"$", "%", ">", "!"}

const (
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerAuthorization = "Authorization"
	headerUserAgent     = "User-Agent"
	headerReferer       = "Referer"
	headerCookie        = "cookie"
)

const (
	mimeJSON           = "application/json"
	mimeJSONSuffix     = "+json"
	mimeFormURLEncoded = "x-www-form-urlencoded"
	mimeMultipartForm  = "multipart/form-data"
)

const (
	authHeaderBasicPrefix = "Basic "
	schemeHTTP            = "http://"
	schemeHTTPS           = "https://"
	dataSeparator         = "&"
	shortOptTokenLen      = 2 // length of "-x" when the value is separate
)

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
)

var knownMethods = map[string]struct{}{
	MethodGet:     {},
	MethodPost:    {},
	MethodPut:     {},
	MethodPatch:   {},
	MethodDelete:  {},
	MethodHead:    {},
	MethodOptions: {},
}

// header names whose values carry credentials; compared lower-cased.
var sensitiveHeaders = util.NewFoldSet(
	"authorization",
	"proxy-authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
	"api-key",
	"apikey",
	"x-auth-token",
	"x-access-token",
	"x-refresh-token",
	"x-session-token",
	"x-csrf-token",
	"x-xsrf-token",
	"x-amz-security-token",
	"x-goog-api-key",
	"private-token",
)

// substrings that mark a cookie name as a credential when it came from a Cookie header.
var sensitiveCookieHints = []string{
	"sess",
	"sid",
	"token",
	"auth",
	"jwt",
	"csrf",
	"xsrf",
	"secret",
	"key",
	"login",
	"remember",
}
