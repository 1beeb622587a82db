package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	maxImageWidth  = 1280
	maxImageHeight = 1280
)

var AllowImage = []string{".png", ".jpg", ".jpeg"}

var (
	ErrNotDataURI       = errors.New("image is not a base64 data URI")
	ErrImageFormat      = errors.New("image format is not allowed")
	ErrImageUndecodable = errors.New("image cannot be decoded")
)

type ImageFile struct {
	Name        string
	Ext         string
	ContentType string
	Data        []byte
}

// DecodeBase64Image parses a "data:image/<ext>;base64,<payload>" string into
// raw bytes named "temp.<ext>".
func DecodeBase64Image(data string) (*ImageFile, error) {
	header, payload, found := strings.Cut(data, ";base64,")
	if !found || !strings.HasPrefix(header, "data:image/") {
		return nil, ErrNotDataURI
	}

	format := strings.ToLower(strings.TrimPrefix(header, "data:image/"))
	ext := "." + format
	if !isAllowed(ext) {
		return nil, ErrImageFormat
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrNotDataURI
	}

	return &ImageFile{
		Name:        "temp" + ext,
		Ext:         ext,
		ContentType: "image/" + format,
		Data:        raw,
	}, nil
}

// Normalize shrinks the image to fit inside the max bounds and re-encodes it
// in its own format. Smaller images are left as they are.
func Normalize(file *ImageFile) (*ImageFile, error) {
	img, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrImageUndecodable
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxImageWidth && bounds.Dy() <= maxImageHeight {
		return file, nil
	}

	format, err := imaging.FormatFromExtension(file.Ext)
	if err != nil {
		return nil, ErrImageFormat
	}

	resized := imaging.Fit(img, maxImageWidth, maxImageHeight, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, err
	}

	return &ImageFile{
		Name:        file.Name,
		Ext:         file.Ext,
		ContentType: file.ContentType,
		Data:        buf.Bytes(),
	}, nil
}

// PrepareImage decodes and normalizes a data URI image in one step.
func PrepareImage(data string) (*ImageFile, error) {
	file, err := DecodeBase64Image(data)
	if err != nil {
		return nil, err
	}
	return Normalize(file)
}

func isAllowed(ext string) bool {
	for _, allowed := range AllowImage {
		if ext == allowed {
			return true
		}
	}
	return false
}
