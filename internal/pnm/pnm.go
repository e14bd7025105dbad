// Package pnm decodes and encodes Netpbm images (P1 to P6).
//
// Importing the package registers the formats with the image package, so
// image.Decode accepts PBM, PGM and PPM files.
package pnm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// ErrFormat is returned for malformed input.
var ErrFormat = errors.New("pnm: invalid format")

// MaxPixels is the largest width*height a header may declare.
const MaxPixels = 1 << 26

type header struct {
	magic  byte
	width  int
	height int
	maxval int
}

// pixelReader fills img from the raster that follows the header.
type pixelReader func(r *bufio.Reader, h header, img *image.RGBA) error

type format struct {
	name      string
	hasMaxval bool
	read      pixelReader
}

var formats = map[byte]format{
	'1': {"pbm", false, readPlainBitmap},
	'2': {"pgm", true, readPlainGray},
	'3': {"ppm", true, readPlainColor},
	'4': {"pbm", false, readRawBitmap},
	'5': {"pgm", true, readRawGray},
	'6': {"ppm", true, readRawColor},
}

func init() {
	for magic, f := range formats {
		image.RegisterFormat(f.name, "P"+string(magic), Decode, DecodeConfig)
	}
}

// Decode reads a PNM image into an *image.RGBA. Samples are scaled to 8 bits.
func Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	if err := formats[h.magic].read(br, h, img); err != nil {
		return nil, fmt.Errorf("pnm: P%c raster: %w", h.magic, err)
	}
	return img, nil
}

// DecodeConfig returns the dimensions without reading the raster.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

func readHeader(r *bufio.Reader) (header, error) {
	var magic [2]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return header{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	f, ok := formats[magic[1]]
	if magic[0] != 'P' || !ok {
		return header{}, fmt.Errorf("%w: magic %q", ErrFormat, magic[:])
	}

	h := header{magic: magic[1], maxval: 1}
	fields := []*int{&h.width, &h.height}
	if f.hasMaxval {
		fields = append(fields, &h.maxval)
	}
	for _, field := range fields {
		v, err := readInt(r)
		if err != nil {
			return header{}, err
		}
		*field = v
	}
	if h.width <= 0 || h.height <= 0 || h.width > MaxPixels/h.height {
		return header{}, fmt.Errorf("%w: size %dx%d", ErrFormat, h.width, h.height)
	}
	if h.maxval <= 0 || h.maxval > 65535 {
		return header{}, fmt.Errorf("%w: maxval %d", ErrFormat, h.maxval)
	}
	return h, nil
}

// skipSpace skips whitespace and '#' comments.
func skipSpace(r *bufio.Reader) error {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case c == '#':
			if _, err := r.ReadString('\n'); err != nil {
				return err
			}
		case isSpace(c):
		default:
			return r.UnreadByte()
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// readInt reads one decimal token and consumes the single whitespace byte after it.
func readInt(r *bufio.Reader) (int, error) {
	if err := skipSpace(r); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	var digits []byte
	for {
		c, err := r.ReadByte()
		if err == io.EOF && len(digits) > 0 {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		if isSpace(c) {
			break
		}
		digits = append(digits, c)
	}
	v, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return v, nil
}

func scale(v, maxval int) uint8 {
	if v > maxval {
		v = maxval
	}
	return uint8(v * 255 / maxval)
}

func setGray(img *image.RGBA, i int, v uint8) {
	img.Pix[4*i], img.Pix[4*i+1], img.Pix[4*i+2], img.Pix[4*i+3] = v, v, v, 0xff
}

func readPlainBitmap(r *bufio.Reader, h header, img *image.RGBA) error {
	for i := 0; i < h.width*h.height; i++ {
		if err := skipSpace(r); err != nil {
			return err
		}
		c, err := r.ReadByte()
		if err != nil {
			return err
		}
		switch c {
		case '0':
			setGray(img, i, 0xff)
		case '1':
			setGray(img, i, 0)
		default:
			return fmt.Errorf("%w: bit %q", ErrFormat, c)
		}
	}
	return nil
}

func readPlainGray(r *bufio.Reader, h header, img *image.RGBA) error {
	for i := 0; i < h.width*h.height; i++ {
		v, err := readInt(r)
		if err != nil {
			return err
		}
		setGray(img, i, scale(v, h.maxval))
	}
	return nil
}

func readPlainColor(r *bufio.Reader, h header, img *image.RGBA) error {
	for i := 0; i < h.width*h.height; i++ {
		for c := 0; c < 3; c++ {
			v, err := readInt(r)
			if err != nil {
				return err
			}
			img.Pix[4*i+c] = scale(v, h.maxval)
		}
		img.Pix[4*i+3] = 0xff
	}
	return nil
}

func readRawBitmap(r *bufio.Reader, h header, img *image.RGBA) error {
	row := make([]byte, (h.width+7)/8)
	for y := 0; y < h.height; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return err
		}
		for x := 0; x < h.width; x++ {
			v := uint8(0xff)
			if row[x/8]&(0x80>>(x%8)) != 0 {
				v = 0
			}
			setGray(img, y*h.width+x, v)
		}
	}
	return nil
}

// readSamples reads n raw samples, one byte each or two big-endian bytes when maxval exceeds 255.
func readSamples(r *bufio.Reader, n, maxval int) ([]uint8, error) {
	width := 1
	if maxval > 255 {
		width = 2
	}
	buf := make([]byte, n*width)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]uint8, n)
	for i := range out {
		v := int(buf[i*width])
		if width == 2 {
			v = v<<8 | int(buf[i*width+1])
		}
		out[i] = scale(v, maxval)
	}
	return out, nil
}

func readRawGray(r *bufio.Reader, h header, img *image.RGBA) error {
	samples, err := readSamples(r, h.width*h.height, h.maxval)
	if err != nil {
		return err
	}
	for i, v := range samples {
		setGray(img, i, v)
	}
	return nil
}

func readRawColor(r *bufio.Reader, h header, img *image.RGBA) error {
	samples, err := readSamples(r, 3*h.width*h.height, h.maxval)
	if err != nil {
		return err
	}
	for i := 0; i < h.width*h.height; i++ {
		copy(img.Pix[4*i:4*i+3], samples[3*i:3*i+3])
		img.Pix[4*i+3] = 0xff
	}
	return nil
}

// Encode writes img as a binary P6 pixmap with 8-bit samples.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, err := bw.Write([]byte{c.R, c.G, c.B}); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
