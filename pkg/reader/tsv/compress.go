package tsv

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/pkg/errors"
	"github.com/xi2/xz"
)

// DataType identifies the compression of an input stream.
type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZlib
	DataTypeBZip2
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "plain"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZlib:
		return "zlib"
	case DataTypeBZip2:
		return "bzip2"
	default:
		return "invalid"
	}
}

// Magic bytes from https://stackoverflow.com/a/19127748/199475, longest first.
var byteCodeSigs = []struct {
	dt  DataType
	sig []byte
}{
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
	{DataTypeZlib, []byte{0x78, 0x9c}},
	{DataTypeZlib, []byte{0x78, 0x01}},
	{DataTypeZlib, []byte{0x78, 0xda}},
}

// DetectDataType peeks at the head of r and reports its compression.
func DetectDataType(r *bufio.Reader) (DataType, error) {
	head, err := r.Peek(6)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}

Outer:
	for _, s := range byteCodeSigs {
		if len(head) < len(s.sig) {
			continue
		}
		for i := range s.sig {
			if head[i] != s.sig[i] {
				continue Outer
			}
		}
		return s.dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompress wraps r in a decompressor matching its magic bytes. Uncompressed
// input is returned as is.
func MaybeDecompress(r io.Reader) (io.Reader, DataType, error) {
	br := bufio.NewReader(r)
	dt, err := DetectDataType(br)
	if err != nil {
		return nil, DataTypeInvalid, errors.Wrap(err, "cannot detect input compression")
	}

	var out io.Reader
	switch dt {
	case DataTypeGzip:
		out, err = gzip.NewReader(br)
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		if _, err = zr.Next(); err == nil {
			out = zr
		}
	case DataTypeBZip2:
		out = bzip2.NewReader(br)
	case DataTypeXZ:
		out, err = xz.NewReader(br, 0)
	case DataTypeZlib:
		out, err = zlib.NewReader(br)
	default:
		out = br
	}
	if err != nil {
		return nil, dt, errors.Wrapf(err, "cannot open %s stream", dt)
	}
	return out, dt, nil
}
