package storage

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURI(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeBase64Image(t *testing.T) {
	file, err := DecodeBase64Image("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("raw")))
	require.NoError(t, err)
	assert.Equal(t, "temp.jpeg", file.Name)
	assert.Equal(t, ".jpeg", file.Ext)
	assert.Equal(t, "image/jpeg", file.ContentType)
	assert.Equal(t, []byte("raw"), file.Data)
}

func TestDecodeBase64Image_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "plain url", input: "https://example.com/a.png", want: ErrNotDataURI},
		{name: "not an image", input: "data:text/plain;base64,aGVsbG8=", want: ErrNotDataURI},
		{name: "gif not allowed", input: "data:image/gif;base64,R0lGODlh", want: ErrImageFormat},
		{name: "broken payload", input: "data:image/png;base64,%%%", want: ErrNotDataURI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBase64Image(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPrepareImage_ShrinksLargeImages(t *testing.T) {
	file, err := PrepareImage(pngDataURI(t, 2560, 640))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(file.Data))
	require.NoError(t, err)
	assert.Equal(t, 1280, img.Bounds().Dx())
	assert.Equal(t, 320, img.Bounds().Dy())
}

func TestPrepareImage_KeepsSmallImages(t *testing.T) {
	uri := pngDataURI(t, 10, 10)
	original, err := DecodeBase64Image(uri)
	require.NoError(t, err)

	file, err := PrepareImage(uri)
	require.NoError(t, err)
	assert.Equal(t, original.Data, file.Data)
}

func TestPrepareImage_Undecodable(t *testing.T) {
	_, err := PrepareImage("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a png")))
	assert.ErrorIs(t, err, ErrImageUndecodable)
}

func TestAwsS3_Links(t *testing.T) {
	s := &awsS3{bucket: "foodgram", region: "eu-central-1"}
	link := s.GetPublicLinkKey("recipes/images/a.png")
	assert.Equal(t, "https://foodgram.s3.eu-central-1.amazonaws.com/recipes/images/a.png", link)
	assert.Equal(t, "recipes/images/a.png", s.GetObjectKeyFromLink(link))
	assert.Equal(t, "", s.GetObjectKeyFromLink("https://elsewhere.example.com/a.png"))

	minio := &awsS3{bucket: "foodgram", endpoint: "http://localhost:9000"}
	assert.Equal(t, "http://localhost:9000/foodgram/users/avatars/b.jpg", minio.GetPublicLinkKey("users/avatars/b.jpg"))
}
