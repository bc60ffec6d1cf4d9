package texture

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tgaHeader builds an 18-byte Targa header.
func tgaHeader(imageType byte, width, height int, pixelDepth, descriptor byte, colorMapLen int, colorMapDepth byte) []byte {
	hdr := make([]byte, 18)
	if colorMapLen > 0 {
		hdr[1] = 1
	}
	hdr[2] = imageType
	binary.LittleEndian.PutUint16(hdr[5:7], uint16(colorMapLen))
	hdr[7] = colorMapDepth
	binary.LittleEndian.PutUint16(hdr[12:14], uint16(width))
	binary.LittleEndian.PutUint16(hdr[14:16], uint16(height))
	hdr[16] = pixelDepth
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTrueColorBottomOrigin(t *testing.T) {
	// 2x2, 24-bit, rows stored bottom-up in BGR order.
	data := tgaHeader(tgaTrueColor, 2, 2, 24, 0, 0, 0)
	data = append(data,
		255, 0, 0, 255, 255, 255, // bottom row: blue, white
		0, 0, 255, 0, 255, 0, // top row: red, green
	)

	img, err := DecodeTGA(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(1, 1))
}

func TestDecodeTrueColorTopOrigin(t *testing.T) {
	// 1x2, 32-bit, top-origin bit set: rows are already top-down.
	data := tgaHeader(tgaTrueColor, 1, 2, 32, tgaTopOrigin, 0, 0)
	data = append(data,
		0, 0, 255, 128, // top row: red, half alpha
		255, 0, 0, 255, // bottom row: blue
	)

	img, err := DecodeTGA(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{255, 0, 0, 128}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 1))
}

func TestDecodeColorMapped(t *testing.T) {
	// 2x1 with a two-entry BGR palette.
	data := tgaHeader(tgaColorMapped, 2, 1, 8, tgaTopOrigin, 2, 24)
	data = append(data,
		0, 0, 255, // entry 0: red
		0, 255, 0, // entry 1: green
	)
	data = append(data, 1, 0)

	img, err := DecodeTGA(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(1, 0))
}

func TestDecodeColorMapIndexOutOfRange(t *testing.T) {
	data := tgaHeader(tgaColorMapped, 1, 1, 8, tgaTopOrigin, 2, 24)
	data = append(data,
		0, 0, 255,
		0, 255, 0,
	)
	data = append(data, 7)

	_, err := DecodeTGA(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestDecodeGrayscale(t *testing.T) {
	data := tgaHeader(tgaGrayscale, 2, 1, 8, tgaTopOrigin, 0, 0)
	data = append(data, 0, 200)

	img, err := DecodeTGA(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{200, 200, 200, 255}, img.RGBAAt(1, 0))
}

func TestDecodeRLETrueColor(t *testing.T) {
	// 2x2 top-origin: one run packet of 3 red pixels, then a raw
	// packet with a single blue pixel.
	data := tgaHeader(tgaTrueColorRLE, 2, 2, 24, tgaTopOrigin, 0, 0)
	data = append(data,
		0x82, 0, 0, 255, // run of 3x red
		0x00, 255, 0, 0, // raw: blue
	)

	img, err := DecodeTGA(bytes.NewReader(data))
	require.NoError(t, err)

	red := color.RGBA{255, 0, 0, 255}
	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(1, 0))
	assert.Equal(t, red, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(1, 1))
}

func TestDecodeRLEOverrun(t *testing.T) {
	// A run of 5 pixels in a 2x2 image overruns the pixel grid.
	data := tgaHeader(tgaTrueColorRLE, 2, 2, 24, tgaTopOrigin, 0, 0)
	data = append(data, 0x84, 0, 0, 255)

	_, err := DecodeTGA(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overruns")
}

func TestDecodeTruncatedHeader(t *testing.T) {
	_, err := DecodeTGA(bytes.NewReader([]byte{0, 0, 2}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestDecodeTruncatedPixelData(t *testing.T) {
	data := tgaHeader(tgaTrueColor, 4, 4, 24, 0, 0, 0)
	data = append(data, 1, 2, 3) // one pixel out of sixteen

	_, err := DecodeTGA(bytes.NewReader(data))
	require.Error(t, err)
}

func TestDecodeUnsupportedType(t *testing.T) {
	data := tgaHeader(5, 1, 1, 24, 0, 0, 0)
	data = append(data, 0, 0, 0)

	_, err := DecodeTGA(bytes.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported TGA image type")
}

func TestDecodeZeroSize(t *testing.T) {
	data := tgaHeader(tgaTrueColor, 0, 0, 24, 0, 0, 0)

	_, err := DecodeTGA(bytes.NewReader(data))
	require.Error(t, err)
}
