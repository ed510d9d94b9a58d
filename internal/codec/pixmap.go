package codec

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Pixmap is a decoded image as one tightly packed row-major byte buffer.
// Channels uses the common raster convention: 1 = grayscale,
// 2 = grayscale+alpha, 3 = RGB, 4 = RGBA. Row stride is Width*Channels.
type Pixmap struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// FromImage flattens a decoded image.Image into a Pixmap, keeping the
// narrowest channel layout the source type allows.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch src := img.(type) {
	case *image.Gray:
		pm := &Pixmap{Pix: make([]byte, w*h), Width: w, Height: h, Channels: 1}
		for y := 0; y < h; y++ {
			copy(pm.Pix[y*w:(y+1)*w], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return pm

	case *image.YCbCr:
		pm := &Pixmap{Pix: make([]byte, w*h*3), Width: w, Height: h, Channels: 3}
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				yy := src.Y[src.YOffset(x, y)]
				cb := src.Cb[src.COffset(x, y)]
				cr := src.Cr[src.COffset(x, y)]
				r, g, bl := color.YCbCrToRGB(yy, cb, cr)
				pm.Pix[i], pm.Pix[i+1], pm.Pix[i+2] = r, g, bl
				i += 3
			}
		}
		return pm

	case *image.NRGBA:
		pm := &Pixmap{Pix: make([]byte, w*h*4), Width: w, Height: h, Channels: 4}
		for y := 0; y < h; y++ {
			copy(pm.Pix[y*w*4:(y+1)*w*4], src.Pix[y*src.Stride:y*src.Stride+w*4])
		}
		return pm

	default:
		// Everything else (RGBA, paletted, CMYK, 16-bit) goes through an
		// NRGBA clone.
		clone := imaging.Clone(img)
		return &Pixmap{Pix: clone.Pix, Width: w, Height: h, Channels: 4}
	}
}

// Image builds an image.Image view of the pixmap. 1- and 4-channel
// pixmaps alias Pix directly; 2- and 3-channel layouts have no packed
// stdlib counterpart and are expanded to NRGBA.
func (pm *Pixmap) Image() (image.Image, error) {
	if pm.Width <= 0 || pm.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", pm.Width, pm.Height)
	}
	if want := pm.Width * pm.Height * pm.Channels; len(pm.Pix) != want {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %d (%dx%d, %d channels)",
			len(pm.Pix), want, pm.Width, pm.Height, pm.Channels)
	}
	rect := image.Rect(0, 0, pm.Width, pm.Height)

	switch pm.Channels {
	case 1:
		return &image.Gray{Pix: pm.Pix, Stride: pm.Width, Rect: rect}, nil

	case 2:
		out := image.NewNRGBA(rect)
		for i, o := 0, 0; i < len(pm.Pix); i, o = i+2, o+4 {
			g, a := pm.Pix[i], pm.Pix[i+1]
			out.Pix[o], out.Pix[o+1], out.Pix[o+2], out.Pix[o+3] = g, g, g, a
		}
		return out, nil

	case 3:
		out := image.NewNRGBA(rect)
		for i, o := 0, 0; i < len(pm.Pix); i, o = i+3, o+4 {
			out.Pix[o] = pm.Pix[i]
			out.Pix[o+1] = pm.Pix[i+1]
			out.Pix[o+2] = pm.Pix[i+2]
			out.Pix[o+3] = 0xff
		}
		return out, nil

	case 4:
		return &image.NRGBA{Pix: pm.Pix, Stride: pm.Width * 4, Rect: rect}, nil
	}
	return nil, fmt.Errorf("unsupported channel count %d", pm.Channels)
}
