// Package codec provides the JSON codec shared by the HTTP and gRPC
// transports. Importing it registers the codec with both.
package codec

import (
	"bytes"
	"encoding/json"

	"github.com/go-kratos/kratos/v2/encoding"
	"github.com/tidwall/jsonc"
	grpcencoding "google.golang.org/grpc/encoding"
)

// Name is the codec name and the gRPC content-subtype.
const Name = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
	grpcencoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal accepts JSON with comments and trailing commas, so cached
// profiles can be posted as they are. Numbers are kept as json.Number to
// preserve integer answers exactly.
func (jsonCodec) Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()
	return dec.Decode(v)
}

func (jsonCodec) Name() string { return Name }
