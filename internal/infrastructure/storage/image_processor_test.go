package storage

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/image-pipeline/internal/domain/valueobject"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeGray(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// encodeRotatedJPEG returns a w×h JPEG carrying an EXIF APP1 segment with
// the given Orientation tag.
func encodeRotatedJPEG(t *testing.T, w, h int, orientation uint16) []byte {
	t.Helper()

	var raw bytes.Buffer
	require.NoError(t, jpeg.Encode(&raw, image.NewNRGBA(image.Rect(0, 0, w, h)), nil))

	var exif bytes.Buffer
	exif.WriteString("Exif\x00\x00")
	exif.WriteString("MM")
	_ = binary.Write(&exif, binary.BigEndian, uint16(0x002A))
	_ = binary.Write(&exif, binary.BigEndian, uint32(8))
	_ = binary.Write(&exif, binary.BigEndian, uint16(1))      // entries
	_ = binary.Write(&exif, binary.BigEndian, uint16(0x0112)) // Orientation
	_ = binary.Write(&exif, binary.BigEndian, uint16(3))      // SHORT
	_ = binary.Write(&exif, binary.BigEndian, uint32(1))
	_ = binary.Write(&exif, binary.BigEndian, orientation)
	_ = binary.Write(&exif, binary.BigEndian, uint16(0))
	_ = binary.Write(&exif, binary.BigEndian, uint32(0)) // next IFD

	data := raw.Bytes()
	var out bytes.Buffer
	out.Write(data[:2]) // SOI
	out.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(exif.Len()+2))
	out.Write(exif.Bytes())
	out.Write(data[2:])
	return out.Bytes()
}

func TestImageProcessor_Dimensions(t *testing.T) {
	p := NewImageProcessor()

	t.Run("reads png header", func(t *testing.T) {
		w, h, err := p.Dimensions(encodePNG(t, 1000, 500))
		require.NoError(t, err)
		assert.Equal(t, 1000, w)
		assert.Equal(t, 500, h)
	})

	t.Run("rejects undecodable data", func(t *testing.T) {
		_, _, err := p.Dimensions([]byte("not an image"))
		assert.Error(t, err)
	})
}

func TestImageProcessor_Resize(t *testing.T) {
	p := NewImageProcessor()

	t.Run("thumb of landscape source", func(t *testing.T) {
		out, err := p.Resize(encodePNG(t, 1000, 500), "thumb")
		require.NoError(t, err)

		assert.Equal(t, 150, out.Width)
		assert.Equal(t, 75, out.Height)
		assert.Equal(t, "image/jpeg", out.ContentType)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(out.Data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 150, cfg.Width)
		assert.Equal(t, 75, cfg.Height)
	})

	t.Run("unknown size uses default width", func(t *testing.T) {
		out, err := p.Resize(encodePNG(t, 400, 200), "poster")
		require.NoError(t, err)
		assert.Equal(t, 800, out.Width)
		assert.Equal(t, 400, out.Height)
	})

	t.Run("grayscale source encodes as jpeg", func(t *testing.T) {
		out, err := p.Resize(encodeGray(t, 300, 300), "thumb")
		require.NoError(t, err)

		_, format, err := image.DecodeConfig(bytes.NewReader(out.Data))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 150, out.Height)
	})

	t.Run("exif orientation does not change geometry", func(t *testing.T) {
		data := encodeRotatedJPEG(t, 1000, 500, 6)

		w, h, err := p.Dimensions(data)
		require.NoError(t, err)
		assert.Equal(t, 1000, w)
		assert.Equal(t, 500, h)

		out, err := p.Resize(data, "thumb")
		require.NoError(t, err)
		wantW, wantH := valueobject.TargetDims("thumb", w, h)
		assert.Equal(t, wantW, out.Width)
		assert.Equal(t, wantH, out.Height)
		assert.Equal(t, 75, out.Height)

		cfg, _, err := image.DecodeConfig(bytes.NewReader(out.Data))
		require.NoError(t, err)
		assert.Equal(t, 150, cfg.Width)
		assert.Equal(t, 75, cfg.Height)
	})

	t.Run("undecodable data", func(t *testing.T) {
		_, err := p.Resize([]byte{0x00, 0x01}, "thumb")
		assert.Error(t, err)
	})
}
