// Package ticket implements the service ticket codec and the family of
// ticket validators for the supported identity provider protocols.
package ticket

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"encoding/base64"
	"io"

	"github.com/luikyv/go-cas/pkg/gocas"
)

// maxInflatedSize bounds the expanded size of front channel payloads so a
// hostile message cannot exhaust memory.
const maxInflatedSize = 1 << 20

// DeflateBase64 compresses the message with raw DEFLATE, no zlib header or
// trailer, and encodes the result with standard base64. This matches the
// byte format identity providers produce on the front channel.
func DeflateBase64(message string) (string, error) {
	var compressed bytes.Buffer
	writer, err := flate.NewWriter(&compressed, flate.DefaultCompression)
	if err != nil {
		return "", gocas.WrapError(gocas.ErrorCodeDecoding, "could not deflate the message", err)
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		_ = writer.Close()
		return "", gocas.WrapError(gocas.ErrorCodeDecoding, "could not deflate the message", err)
	}
	if err := writer.Close(); err != nil {
		return "", gocas.WrapError(gocas.ErrorCodeDecoding, "could not deflate the message", err)
	}

	return base64.StdEncoding.EncodeToString(compressed.Bytes()), nil
}

// InflateBase64 reverses [DeflateBase64]. Payloads wrapped with the two byte
// zlib header some encoders add are accepted as well.
func InflateBase64(encoded string) (string, error) {
	compressed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", gocas.WrapError(gocas.ErrorCodeDecoding, "the message is not valid base64", err)
	}

	reader := inflateReader(compressed)
	defer reader.Close()

	inflated, err := io.ReadAll(io.LimitReader(reader, maxInflatedSize+1))
	if err != nil {
		return "", gocas.WrapError(gocas.ErrorCodeDecoding, "could not inflate the message", err)
	}
	if len(inflated) > maxInflatedSize {
		return "", gocas.NewError(gocas.ErrorCodeDecoding, "the inflated message is too large")
	}

	return string(inflated), nil
}

func inflateReader(compressed []byte) io.ReadCloser {
	// 0x78 is the zlib CMF byte for the DEFLATE method.
	if len(compressed) >= 2 && compressed[0] == 0x78 {
		if reader, err := zlib.NewReader(bytes.NewReader(compressed)); err == nil {
			return reader
		}
	}
	return flate.NewReader(bytes.NewReader(compressed))
}
