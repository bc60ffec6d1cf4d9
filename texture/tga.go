package texture

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
)

// TGA image types we accept. Types 9-11 are the run-length encoded
// counterparts of 1-3.
const (
	tgaColorMapped    = 1
	tgaTrueColor      = 2
	tgaGrayscale      = 3
	tgaColorMappedRLE = 9
	tgaTrueColorRLE   = 10
	tgaGrayscaleRLE   = 11
)

// tgaTopOrigin is the image-descriptor bit that marks the first pixel
// row as the top of the image instead of the bottom.
const tgaTopOrigin = 0x20

// DecodeTGA reads a Targa image and returns it as RGBA with the first
// row at the top, ready for texture upload.
func DecodeTGA(r io.Reader) (*image.RGBA, error) {
	br := bufio.NewReader(r)

	var hdr [18]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("corrupt TGA header: %w", err)
	}

	idLength := int(hdr[0])
	colorMapType := hdr[1]
	imageType := hdr[2]
	colorMapLength := int(binary.LittleEndian.Uint16(hdr[5:7]))
	colorMapDepth := int(hdr[7])
	width := int(binary.LittleEndian.Uint16(hdr[12:14]))
	height := int(binary.LittleEndian.Uint16(hdr[14:16]))
	pixelDepth := int(hdr[16])
	descriptor := hdr[17]

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("corrupt TGA header: %dx%d image", width, height)
	}

	rle := false
	switch imageType {
	case tgaColorMapped, tgaTrueColor, tgaGrayscale:
	case tgaColorMappedRLE, tgaTrueColorRLE, tgaGrayscaleRLE:
		rle = true
	default:
		return nil, fmt.Errorf("unsupported TGA image type %d", imageType)
	}

	// Skip the free-form image ID field.
	if _, err := io.CopyN(io.Discard, br, int64(idLength)); err != nil {
		return nil, fmt.Errorf("corrupt TGA file: %w", err)
	}

	// Read the palette, if there is one.
	var palette [][4]uint8
	if colorMapType == 1 {
		entrySize := colorMapDepth / 8
		if entrySize != 3 && entrySize != 4 {
			return nil, fmt.Errorf("unsupported TGA color map depth %d", colorMapDepth)
		}
		raw := make([]byte, colorMapLength*entrySize)
		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, fmt.Errorf("corrupt TGA color map: %w", err)
		}
		palette = make([][4]uint8, colorMapLength)
		for i := range palette {
			e := raw[i*entrySize:]
			// Palette entries are stored BGR(A).
			palette[i] = [4]uint8{e[2], e[1], e[0], 255}
			if entrySize == 4 {
				palette[i][3] = e[3]
			}
		}
	}

	bpp := pixelDepth / 8
	switch imageType & 0x3 {
	case tgaColorMapped:
		if bpp != 1 {
			return nil, fmt.Errorf("unsupported TGA pixel depth %d for color-mapped image", pixelDepth)
		}
		if palette == nil {
			return nil, fmt.Errorf("color-mapped TGA without a color map")
		}
	case tgaTrueColor:
		if bpp != 3 && bpp != 4 {
			return nil, fmt.Errorf("unsupported TGA pixel depth %d", pixelDepth)
		}
	case tgaGrayscale:
		if bpp != 1 {
			return nil, fmt.Errorf("unsupported TGA pixel depth %d for grayscale image", pixelDepth)
		}
	}

	data := make([]byte, width*height*bpp)
	if rle {
		if err := readRLE(br, data, bpp); err != nil {
			return nil, fmt.Errorf("corrupt TGA pixel data: %w", err)
		}
	} else {
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, fmt.Errorf("corrupt TGA pixel data: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		// File rows run bottom-to-top unless the descriptor says otherwise.
		srcY := height - 1 - y
		if descriptor&tgaTopOrigin != 0 {
			srcY = y
		}
		for x := 0; x < width; x++ {
			src := data[(srcY*width+x)*bpp:]
			dst := img.Pix[y*img.Stride+x*4:]
			switch {
			case imageType&0x3 == tgaColorMapped:
				idx := int(src[0])
				if idx >= len(palette) {
					return nil, fmt.Errorf("TGA color map index %d out of range (map has %d entries)", idx, len(palette))
				}
				copy(dst[:4], palette[idx][:])
			case bpp == 1:
				dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 255
			case bpp == 3:
				// Stored BGR.
				dst[0], dst[1], dst[2], dst[3] = src[2], src[1], src[0], 255
			default:
				// Stored BGRA.
				dst[0], dst[1], dst[2], dst[3] = src[2], src[1], src[0], src[3]
			}
		}
	}

	return img, nil
}

// readRLE expands run-length encoded pixel packets into dst.
func readRLE(r io.Reader, dst []byte, bpp int) error {
	pixel := make([]byte, bpp)
	for off := 0; off < len(dst); {
		var hdr [1]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return err
		}
		count := int(hdr[0]&0x7f) + 1
		if off+count*bpp > len(dst) {
			return fmt.Errorf("RLE packet overruns image by %d bytes", off+count*bpp-len(dst))
		}
		if hdr[0]&0x80 != 0 {
			// Run packet: one pixel value repeated count times.
			if _, err := io.ReadFull(r, pixel); err != nil {
				return err
			}
			for i := 0; i < count; i++ {
				copy(dst[off:], pixel)
				off += bpp
			}
		} else {
			// Raw packet: count literal pixels.
			if _, err := io.ReadFull(r, dst[off:off+count*bpp]); err != nil {
				return err
			}
			off += count * bpp
		}
	}
	return nil
}
