package curl

// Result is the outcome of parsing one curl command.
type Result struct {
	Original   string    `json:"original"   yaml:"original"   toml:"original"`
	Normalized string    `json:"normalized" yaml:"normalized" toml:"normalized"`
	Request    *Request  `json:"request"    yaml:"request"    toml:"request"`
	Warnings   []Warning `json:"warnings"   yaml:"warnings"   toml:"warnings"`
}

type Request struct {
	Method     string       `json:"method"               yaml:"method"               toml:"method"`
	URL        string       `json:"url"                  yaml:"url"                  toml:"url"`
	URLDecoded string       `json:"urlDecoded,omitempty" yaml:"urlDecoded,omitempty" toml:"urlDecoded,omitempty"`
	Query      []QueryParam `json:"query"                yaml:"query"                toml:"query"`
	Headers    []Header     `json:"headers"              yaml:"headers"              toml:"headers"`
	Cookies    *Cookies     `json:"cookies,omitempty"    yaml:"cookies,omitempty"    toml:"cookies,omitempty"`
	Body       *Body        `json:"body,omitempty"       yaml:"body,omitempty"       toml:"body,omitempty"`
	Options    Options      `json:"options"              yaml:"options"              toml:"options"`
}

type QueryParam struct {
	Key     string `json:"key"     yaml:"key"     toml:"key"`
	Value   string `json:"value"   yaml:"value"   toml:"value"`
	Enabled bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
}

type Header struct {
	Key       string `json:"key"       yaml:"key"       toml:"key"`
	Value     string `json:"value"     yaml:"value"     toml:"value"`
	Enabled   bool   `json:"enabled"   yaml:"enabled"   toml:"enabled"`
	Sensitive bool   `json:"sensitive" yaml:"sensitive" toml:"sensitive"`
}

type CookieSource string

const (
	CookieSourceFlag   CookieSource = "cookie-flag"
	CookieSourceHeader CookieSource = "cookie-header"
)

type Cookies struct {
	Raw    string       `json:"raw"    yaml:"raw"    toml:"raw"`
	Items  []CookieItem `json:"items"  yaml:"items"  toml:"items"`
	Source CookieSource `json:"source" yaml:"source" toml:"source"`
}

type CookieItem struct {
	Key       string `json:"key"       yaml:"key"       toml:"key"`
	Value     string `json:"value"     yaml:"value"     toml:"value"`
	Sensitive bool   `json:"sensitive" yaml:"sensitive" toml:"sensitive"`
}

type BodyKind string

const (
	BodyNone       BodyKind = "none"
	BodyText       BodyKind = "text"
	BodyJSON       BodyKind = "json"
	BodyURLEncoded BodyKind = "urlencoded"
	BodyMultipart  BodyKind = "multipart"
)

// Body holds exactly one payload shape: Text for text and json,
// URLEncodedItems for urlencoded, MultipartItems for multipart.
type Body struct {
	Kind            BodyKind        `json:"kind"                      yaml:"kind"                      toml:"kind"`
	Text            *string         `json:"text,omitempty"            yaml:"text,omitempty"            toml:"text,omitempty"`
	URLEncodedItems []FormItem      `json:"urlencodedItems,omitempty" yaml:"urlencodedItems,omitempty" toml:"urlencodedItems,omitempty"`
	MultipartItems  []MultipartItem `json:"multipartItems,omitempty"  yaml:"multipartItems,omitempty"  toml:"multipartItems,omitempty"`
}

type FormItem struct {
	Key     string `json:"key"     yaml:"key"     toml:"key"`
	Value   string `json:"value"   yaml:"value"   toml:"value"`
	Enabled bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
}

type MultipartKind string

const (
	MultipartField MultipartKind = "field"
	MultipartFile  MultipartKind = "file"
)

const NoteUnsupportedFilePath = "unsupported-file-path"

type MultipartItem struct {
	Kind  MultipartKind `json:"kind"            yaml:"kind"            toml:"kind"`
	Key   string        `json:"key"             yaml:"key"             toml:"key"`
	Value string        `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Path  string        `json:"path,omitempty"  yaml:"path,omitempty"  toml:"path,omitempty"`
	Note  string        `json:"note,omitempty"  yaml:"note,omitempty"  toml:"note,omitempty"`
}

type Options struct {
	FollowRedirects bool       `json:"followRedirects,omitempty" yaml:"followRedirects,omitempty" toml:"followRedirects,omitempty"`
	InsecureTLS     bool       `json:"insecureTLS,omitempty"     yaml:"insecureTLS,omitempty"     toml:"insecureTLS,omitempty"`
	Compressed      bool       `json:"compressed,omitempty"      yaml:"compressed,omitempty"      toml:"compressed,omitempty"`
	BasicAuth       *BasicAuth `json:"basicAuth,omitempty"       yaml:"basicAuth,omitempty"       toml:"basicAuth,omitempty"`
}

type BasicAuth struct {
	User     string `json:"user"     yaml:"user"     toml:"user"`
	Password string `json:"password" yaml:"password" toml:"password"`
}

// HeaderValue returns the first header value with the given name, case-insensitively.
func (r *Request) HeaderValue(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	return lookupHeader(r.Headers, name)
}

// Consistent reports whether the body carries exactly the payload shape its kind calls for.
func (b *Body) Consistent() bool {
	if b == nil {
		return true
	}
	text := b.Text != nil
	form := b.URLEncodedItems != nil
	multi := b.MultipartItems != nil
	switch b.Kind {
	case BodyText, BodyJSON:
		return text && !form && !multi
	case BodyURLEncoded:
		return form && !text && !multi
	case BodyMultipart:
		return multi && !text && !form
	case BodyNone:
		return !text && !form && !multi
	default:
		return false
	}
}
