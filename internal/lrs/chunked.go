package lrs

import (
	"bytes"
	"fmt"
	"strconv"
)

var crlf = []byte("\r\n")

type chunkState int

const (
	chunkSize chunkState = iota
	chunkData
	chunkDataEnd
	chunkTrailer
	chunkDone
)

// DecodeChunked decodes a body framed with Transfer-Encoding: chunked.
// A body without any CRLF is not chunk framed and is returned unchanged.
// Input that ends cleanly on a chunk boundary is accepted even without the
// terminating zero-length chunk.
func DecodeChunked(raw []byte) ([]byte, error) {
	if !bytes.Contains(raw, crlf) {
		return raw, nil
	}

	out := make([]byte, 0, len(raw))
	state := chunkSize
	pos := 0
	remaining := 0

	for state != chunkDone {
		switch state {
		case chunkSize:
			if pos == len(raw) {
				state = chunkDone
				continue
			}
			end := bytes.Index(raw[pos:], crlf)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated chunk size line at offset %d", ErrMalformedChunkEncoding, pos)
			}
			size, err := parseChunkSize(raw[pos : pos+end])
			if err != nil {
				return nil, fmt.Errorf("%w: offset %d: %v", ErrMalformedChunkEncoding, pos, err)
			}
			pos += end + len(crlf)
			remaining = size
			if size == 0 {
				state = chunkTrailer
			} else {
				state = chunkData
			}

		case chunkData:
			if len(raw)-pos < remaining {
				return nil, fmt.Errorf("%w: chunk declares %d bytes, %d available", ErrMalformedChunkEncoding, remaining, len(raw)-pos)
			}
			out = append(out, raw[pos:pos+remaining]...)
			pos += remaining
			state = chunkDataEnd

		case chunkDataEnd:
			if !bytes.HasPrefix(raw[pos:], crlf) {
				return nil, fmt.Errorf("%w: missing CRLF after chunk data at offset %d", ErrMalformedChunkEncoding, pos)
			}
			pos += len(crlf)
			state = chunkSize

		case chunkTrailer:
			// Trailer fields are dropped; an empty line or end of input finishes the body.
			if pos == len(raw) {
				state = chunkDone
				continue
			}
			end := bytes.Index(raw[pos:], crlf)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated trailer at offset %d", ErrMalformedChunkEncoding, pos)
			}
			pos += end + len(crlf)
			if end == 0 {
				state = chunkDone
			}
		}
	}
	return out, nil
}

// parseChunkSize reads the hexadecimal size from a chunk-size line, ignoring
// chunk extensions and surrounding blanks.
func parseChunkSize(line []byte) (int, error) {
	if i := bytes.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = bytes.Trim(line, " \t")
	if len(line) == 0 {
		return 0, fmt.Errorf("empty chunk size")
	}
	n, err := strconv.ParseUint(string(line), 16, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid chunk size %q", line)
	}
	return int(n), nil
}
