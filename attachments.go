package mailgun

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// Attachment is a file attached to an outgoing message. Exactly one of
// Path, Data, or Reader must be set.
type Attachment struct {
	// Path reads the attachment from a local file.
	Path string

	// Data holds the attachment content in memory.
	Data []byte

	// Reader streams the attachment content. Stream attachments must set
	// ContentType and KnownLength, since neither can be inferred from the
	// stream.
	Reader io.Reader

	// Filename is the name presented to recipients. Required unless the
	// attachment comes from a Path, where it defaults to the base name.
	Filename string

	// ContentType is the MIME type of the content. Optional for Path and
	// Data sources; "application/octet-stream" is used when unset.
	ContentType string

	// KnownLength is the content length in bytes. Required for Reader
	// sources; the stream is truncated at this length.
	KnownLength int64
}

func (a Attachment) validate() error {
	sources := 0
	if a.Path != "" {
		sources++
	}
	if a.Data != nil {
		sources++
	}
	if a.Reader != nil {
		sources++
	}
	if sources == 0 {
		return errors.New("mailgun: attachment has no content source")
	}
	if sources > 1 {
		return errors.New("mailgun: attachment has more than one content source")
	}
	if a.Path == "" && a.Filename == "" {
		return errors.New("mailgun: attachment requires a filename")
	}
	if a.Reader != nil {
		if a.ContentType == "" {
			return errors.New("mailgun: stream attachment requires a content type")
		}
		if a.KnownLength <= 0 {
			return errors.New("mailgun: stream attachment requires a known length")
		}
	}
	return nil
}

// open returns the content reader, the effective filename, and an optional
// close func for the source.
func (a Attachment) open() (io.Reader, string, func() error, error) {
	switch {
	case a.Path != "":
		f, err := os.Open(a.Path)
		if err != nil {
			return nil, "", nil, err
		}
		name := a.Filename
		if name == "" {
			name = filepath.Base(a.Path)
		}
		return f, name, f.Close, nil
	case a.Data != nil:
		return bytes.NewReader(a.Data), a.Filename, nil, nil
	default:
		return io.LimitReader(a.Reader, a.KnownLength), a.Filename, nil, nil
	}
}
