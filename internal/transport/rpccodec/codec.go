// Package rpccodec registers a gob-based grpc codec under the content
// subtype "gob". The manager and scheduler clients in this repository talk
// to control planes over plain Go structs (internal/transport/manager and
// internal/transport/scheduler) rather than protoc-generated protobuf
// messages, so every call site passes grpc.CallContentSubtype(Name) to
// select this codec instead of grpc-go's default "proto" codec.
package rpccodec

import (
	"bytes"
	"encoding/gob"

	"google.golang.org/grpc/encoding"
)

// Name is the grpc content-subtype this codec registers under.
const Name = "gob"

func init() {
	encoding.RegisterCodec(codec{})
}

type codec struct{}

func (codec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (codec) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func (codec) Name() string { return Name }
