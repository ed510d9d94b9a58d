package codec

import (
	"fmt"
	"image/png"
)

// EncodePNG compresses the pixmap to PNG and returns the encoded bytes.
// The encoder streams its output through a Sink; on success the sink's
// buffer is handed back whole. On any failure nothing is returned — a
// truncated image is not a useful partial result, so the accumulated
// bytes are discarded with the sink.
func EncodePNG(pm *Pixmap) ([]byte, error) {
	img, err := pm.Image()
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	sink := NewSink()
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(sink, img); err != nil {
		sink.Discard()
		return nil, fmt.Errorf("encode png: %w", err)
	}

	data, _ := sink.Finalize()
	return data, nil
}
