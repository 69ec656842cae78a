package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedAssetInput is returned for asset inputs that can only be
// resolved client-side (blob: object URLs) and therefore never reach the
// upload pipeline.
var ErrUnsupportedAssetInput = errors.New("unsupported asset input: blob references cannot be uploaded server-side")

// AssetKind discriminates the ways creative media can be referenced.
type AssetKind string

const (
	// AssetInline carries raw bytes decoded from a data URL.
	AssetInline AssetKind = "inline"
	// AssetHosted references media already uploaded to the platform.
	AssetHosted AssetKind = "hosted"
	// AssetLibrary references media in the account's media library.
	AssetLibrary AssetKind = "library"
	// AssetRemote references media by a fetchable URL.
	AssetRemote AssetKind = "remote"
)

const (
	imageHashPrefix = "fb-image-hash:"
	videoIDPrefix   = "fb-video-id:"
	libraryPrefix   = "library:"
	hostedVideoHost = "https://facebook.com/video/"
)

// AssetReference is the resolved form of a creative media input. Exactly the
// fields implied by Kind are populated; nothing downstream parses strings.
type AssetReference struct {
	Kind AssetKind
	Data []byte // AssetInline
	MIME string // AssetInline
	ID   string // AssetHosted, AssetLibrary
	URL  string // AssetRemote
}

// IsZero reports whether the reference is unset.
func (a AssetReference) IsZero() bool { return a.Kind == "" }

// Same reports whether two references resolve to the same underlying asset.
func (a AssetReference) Same(b AssetReference) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case AssetHosted, AssetLibrary:
		return a.ID == b.ID
	case AssetRemote:
		return a.URL == b.URL
	case AssetInline:
		return string(a.Data) == string(b.Data)
	}
	return false
}

// ParseAssetReference turns a raw media input string into a discriminated
// AssetReference. This is the only place sentinel prefixes are interpreted;
// everything past this boundary works with the tagged value.
func ParseAssetReference(input string) (AssetReference, error) {
	switch {
	case input == "":
		return AssetReference{}, errors.New("empty asset input")
	case strings.HasPrefix(input, "blob:"):
		return AssetReference{}, ErrUnsupportedAssetInput
	case strings.HasPrefix(input, "data:"):
		data, mime, err := decodeDataURL(input)
		if err != nil {
			return AssetReference{}, err
		}
		return AssetReference{Kind: AssetInline, Data: data, MIME: mime}, nil
	case strings.HasPrefix(input, imageHashPrefix):
		return AssetReference{Kind: AssetHosted, ID: strings.TrimPrefix(input, imageHashPrefix)}, nil
	case strings.HasPrefix(input, videoIDPrefix):
		return AssetReference{Kind: AssetHosted, ID: strings.TrimPrefix(input, videoIDPrefix)}, nil
	case strings.HasPrefix(input, hostedVideoHost):
		return AssetReference{Kind: AssetHosted, ID: strings.TrimPrefix(input, hostedVideoHost)}, nil
	case strings.HasPrefix(input, libraryPrefix):
		return AssetReference{Kind: AssetLibrary, ID: strings.TrimPrefix(input, libraryPrefix)}, nil
	case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		return AssetReference{Kind: AssetRemote, URL: input}, nil
	}
	return AssetReference{}, fmt.Errorf("unrecognized asset input %q", truncate(input, 40))
}

func decodeDataURL(input string) ([]byte, string, error) {
	// data:image/png;base64,iVBOR...
	rest := strings.TrimPrefix(input, "data:")
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return nil, "", errors.New("malformed data URL: missing comma")
	}
	meta, payload := rest[:comma], rest[comma+1:]
	mime := meta
	if semi := strings.Index(meta, ";"); semi >= 0 {
		mime = meta[:semi]
		if !strings.Contains(meta, "base64") {
			return nil, "", errors.New("malformed data URL: only base64 encoding is supported")
		}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URL payload: %w", err)
	}
	return data, mime, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
