// Package apiconnect binds the api messages to Connect RPC handlers and clients.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec names replacing Connect's default protobuf JSON codecs. Connect
// registers "json; charset=utf-8" separately, so both are overridden.
const (
	codecName        = "json"
	codecNameCharset = "json; charset=utf-8"
)

// JSONCodec marshals plain Go messages with encoding/json.
// It is installed on every handler and client built by this package.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

func (JSONCodec) Name() string { return codecName }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// charsetJSONCodec is JSONCodec under the "application/json; charset=utf-8"
// content type.
type charsetJSONCodec struct{ JSONCodec }

func (charsetJSONCodec) Name() string { return codecNameCharset }

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(JSONCodec{}),
		connect.WithCodec(charsetJSONCodec{}),
	}, opts...)
}

// clientOptions installs both codecs. The last one applied is used for
// requests, so clients send plain "application/json".
func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{
		connect.WithCodec(charsetJSONCodec{}),
		connect.WithCodec(JSONCodec{}),
	}, opts...)
}
