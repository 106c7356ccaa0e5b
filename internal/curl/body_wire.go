package curl

import "encoding/json"

type textWire struct {
	Kind BodyKind `json:"kind" yaml:"kind"`
	Text string   `json:"text" yaml:"text"`
}

type urlencodedWire struct {
	Kind            BodyKind   `json:"kind"            yaml:"kind"`
	URLEncodedItems []FormItem `json:"urlencodedItems" yaml:"urlencodedItems"`
}

type multipartWire struct {
	Kind           BodyKind        `json:"kind"           yaml:"kind"`
	MultipartItems []MultipartItem `json:"multipartItems" yaml:"multipartItems"`
}

// wire returns the encoded form of b: kind plus exactly the payload field
// that kind names, present even when empty.
func (b Body) wire() any {
	switch b.Kind {
	case BodyURLEncoded:
		items := b.URLEncodedItems
		if items == nil {
			items = []FormItem{}
		}
		return urlencodedWire{Kind: b.Kind, URLEncodedItems: items}
	case BodyMultipart:
		items := b.MultipartItems
		if items == nil {
			items = []MultipartItem{}
		}
		return multipartWire{Kind: b.Kind, MultipartItems: items}
	default:
		var text string
		if b.Text != nil {
			text = *b.Text
		}
		return textWire{Kind: b.Kind, Text: text}
	}
}

func (b Body) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.wire())
}

func (b Body) MarshalYAML() (any, error) {
	return b.wire(), nil
}
