package codec

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode parses an in-memory encoded image into a Pixmap and reports the
// detected format name. All format parsing is delegated to the registered
// decoders (png, jpeg, gif, bmp, tiff, webp) plus an explicit TGA attempt:
// TGA files carry no magic bytes, so format sniffing can never find them.
// Malformed or unsupported input yields a nil Pixmap and an error.
func Decode(data []byte) (*Pixmap, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		timg, terr := tga.Decode(bytes.NewReader(data))
		if terr != nil {
			return nil, "", fmt.Errorf("decode image: %w", err)
		}
		img, format = timg, "tga"
	}
	return FromImage(img), format, nil
}
