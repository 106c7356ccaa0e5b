package curl

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
)

type dataPart struct {
	val     string
	literal bool // --data-urlencode content, taken as name=value without decoding
}

type bodyBuilder struct {
	has    bool
	forced BodyKind
	parts  []dataPart
	multi  []MultipartItem
}

func newBodyBuilder() *bodyBuilder {
	return &bodyBuilder{}
}

func (b *bodyBuilder) addData(val string, literal bool) {
	b.has = true
	b.parts = append(b.parts, dataPart{val: val, literal: literal})
}

func (b *bodyBuilder) addFormPart(item MultipartItem) {
	b.has = true
	b.multi = append(b.multi, item)
	b.force(BodyMultipart)
}

// force pins the body kind; multipart outranks urlencoded.
func (b *bodyBuilder) force(kind BodyKind) {
	if b.forced == BodyMultipart {
		return
	}
	b.forced = kind
}

func (b *bodyBuilder) content() (string, bool) {
	if len(b.parts) == 0 {
		return "", false
	}
	vals := make([]string, len(b.parts))
	for i, p := range b.parts {
		vals[i] = p.val
	}
	return strings.Join(vals, dataSeparator), true
}

func (b *bodyBuilder) build(headers []Header) *Body {
	if !b.has {
		return nil
	}
	content, ok := b.content()
	kind := b.forced
	if kind == "" {
		if !ok {
			return nil
		}
		kind = DetectBodyType(content, headers)
	}

	switch kind {
	case BodyMultipart:
		items := b.multi
		if items == nil && ok {
			parsed, err := parseRawMultipart(content, headers)
			if err != nil {
				return textBody(BodyText, content)
			}
			items = parsed
		}
		if items == nil {
			items = []MultipartItem{}
		}
		return &Body{Kind: BodyMultipart, MultipartItems: items}
	case BodyURLEncoded:
		return &Body{Kind: BodyURLEncoded, URLEncodedItems: b.formItems()}
	default:
		return textBody(kind, content)
	}
}

func textBody(kind BodyKind, content string) *Body {
	return &Body{Kind: kind, Text: &content}
}

func (b *bodyBuilder) formItems() []FormItem {
	out := []FormItem{}
	for _, p := range b.parts {
		if p.literal {
			key, value, found := strings.Cut(p.val, "=")
			if !found {
				key, value = p.val, ""
			}
			out = append(out, FormItem{Key: key, Value: value, Enabled: true})
			continue
		}
		for _, pair := range strings.Split(p.val, dataSeparator) {
			if pair == "" {
				continue
			}
			key, value, _ := strings.Cut(pair, "=")
			out = append(out, FormItem{
				Key:     decodeOr(key, url.QueryUnescape),
				Value:   decodeOr(value, url.QueryUnescape),
				Enabled: true,
			})
		}
	}
	return out
}

// DetectBodyType infers the body kind: an explicit Content-Type wins, then
// JSON that parses, then single-line key=value data, then plain text.
func DetectBodyType(content string, headers []Header) BodyKind {
	if ct, ok := lookupHeader(headers, headerContentType); ok {
		ct = strings.ToLower(ct)
		switch {
		case strings.Contains(ct, mimeJSON), strings.Contains(ct, mimeJSONSuffix):
			return BodyJSON
		case strings.Contains(ct, mimeFormURLEncoded):
			return BodyURLEncoded
		case strings.Contains(ct, mimeMultipartForm):
			return BodyMultipart
		}
	}

	trim := strings.TrimSpace(content)
	if looksBracketed(trim) && json.Valid([]byte(trim)) {
		return BodyJSON
	}
	if strings.Contains(content, "=") && !strings.ContainsAny(content, "\r\n") {
		return BodyURLEncoded
	}
	return BodyText
}

func looksBracketed(v string) bool {
	if len(v) < 2 {
		return false
	}
	first, last := v[0], v[len(v)-1]
	return (first == '{' && last == '}') || (first == '[' && last == ']')
}

func parseMultipartItem(raw string, literal bool) MultipartItem {
	key, val, _ := strings.Cut(raw, "=")
	key = strings.TrimSpace(key)
	if !literal && val != "" && (val[0] == '@' || val[0] == '<') {
		path, _, _ := strings.Cut(val[1:], ";")
		return MultipartItem{
			Kind: MultipartFile,
			Key:  key,
			Path: strings.TrimSpace(path),
			Note: NoteUnsupportedFilePath,
		}
	}
	return MultipartItem{Kind: MultipartField, Key: key, Value: val}
}

var (
	errNoBoundary = errors.New("multipart content type without boundary")
	errNoParts    = errors.New("multipart content has no parts")
)

// parseRawMultipart splits a hand-written multipart body using the boundary
// from the Content-Type header.
func parseRawMultipart(content string, headers []Header) ([]MultipartItem, error) {
	ct, _ := lookupHeader(headers, headerContentType)
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, err
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, errNoBoundary
	}

	mr := multipart.NewReader(strings.NewReader(content), boundary)
	items := []MultipartItem{}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			if len(items) == 0 {
				return nil, errNoParts
			}
			return items, nil
		}
		if err != nil {
			return nil, err
		}
		if name := part.FileName(); name != "" {
			items = append(items, MultipartItem{
				Kind: MultipartFile,
				Key:  part.FormName(),
				Path: name,
				Note: NoteUnsupportedFilePath,
			})
			continue
		}
		val, err := io.ReadAll(part)
		if err != nil {
			return nil, err
		}
		items = append(items, MultipartItem{Kind: MultipartField, Key: part.FormName(), Value: string(val)})
	}
}
