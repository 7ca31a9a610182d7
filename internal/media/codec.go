package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/logging"
	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultMaxDimension = 1920
	DefaultQuality      = 0.8
)

var (
	errNilImage        = errors.New("nil image")
	errEmptyImage      = errors.New("image has no pixels")
	errUnsupportedType = errors.New("unsupported image type")
)

// Codec converts images to and from their transport form. It holds no
// mutable state and is safe for concurrent use.
type Codec struct {
	maxDimension int
	quality      float64
	logger       *logging.Logger
	metrics      *monitoring.Metrics
}

// NewCodec creates a codec. Non-positive settings fall back to the defaults.
func NewCodec(maxDimension int, quality float64, logger *logging.Logger, metrics *monitoring.Metrics) *Codec {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 || quality > 1 {
		quality = DefaultQuality
	}
	return &Codec{
		maxDimension: maxDimension,
		quality:      quality,
		logger:       logging.OrNop(logger).Named("media"),
		metrics:      metrics,
	}
}

// MaxDimension returns the long-edge bound
func (c *Codec) MaxDimension() int { return c.maxDimension }

// Encode bounds img to the long-edge limit, re-compresses it as JPEG and
// returns the base64 text. The transform is lossy: encode a decoded working
// copy once rather than re-encoding previous output.
func (c *Codec) Encode(img image.Image) (string, bool) {
	start := time.Now()
	encoded, err := c.encode(img)
	if err != nil {
		c.logger.Debug("Encode failed", zap.Error(err))
		c.metrics.RecordMedia("encode", "error", time.Since(start))
		return "", false
	}
	c.metrics.RecordMedia("encode", "ok", time.Since(start))
	return encoded, true
}

func (c *Codec) encode(img image.Image) (string, error) {
	if img == nil {
		return "", errNilImage
	}
	if img.Bounds().Empty() {
		return "", errEmptyImage
	}

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: int(math.Round(c.quality * 100))}
	if err := jpeg.Encode(&buf, Fit(img, c.maxDimension), opts); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodeBytes decodes a picked image file and encodes it for transport
func (c *Codec) EncodeBytes(raw []byte) (string, bool) {
	img, err := decodeImage(raw)
	if err != nil {
		c.logger.Debug("Source image unreadable", zap.Error(err), zap.Int("bytes", len(raw)))
		c.metrics.RecordMedia("encode", "error", 0)
		return "", false
	}
	return c.Encode(img)
}

// Decode turns base64 text back into an image
func (c *Codec) Decode(text string) (image.Image, bool) {
	start := time.Now()
	img, err := c.decode(text)
	if err != nil {
		c.logger.Debug("Decode failed", zap.Error(err), zap.Int("length", len(text)))
		c.metrics.RecordMedia("decode", "error", time.Since(start))
		return nil, false
	}
	c.metrics.RecordMedia("decode", "ok", time.Since(start))
	return img, true
}

func (c *Codec) decode(text string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	return decodeImage(raw)
}

func decodeImage(raw []byte) (image.Image, error) {
	mtype := mimetype.Detect(raw)
	if !mtype.Is("image/jpeg") && !mtype.Is("image/png") && !mtype.Is("image/gif") {
		return nil, errUnsupportedType
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	return img, err
}

// EncodeAll encodes images in order and wraps them as a JSON array. Any
// failed image makes the whole result absent.
func (c *Codec) EncodeAll(images []image.Image) (string, bool) {
	encoded := make([]string, len(images))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			s, ok := c.Encode(img)
			if !ok {
				return errors.New("image could not be encoded")
			}
			encoded[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.logger.Warn("Collection encode failed", zap.Int("count", len(images)), zap.Error(err))
		return "", false
	}

	out, err := sonic.MarshalString(encoded)
	if err != nil {
		return "", false
	}
	return out, true
}

// DecodeAll unwraps a JSON array of base64 images. Text that is not a JSON
// array of strings yields an empty list; entries that fail to decode are
// dropped and the rest keep their order.
func (c *Codec) DecodeAll(text string) []image.Image {
	var entries []string
	if err := sonic.UnmarshalString(text, &entries); err != nil {
		c.logger.Debug("Image collection is not a JSON string array", zap.Error(err))
		return []image.Image{}
	}

	decoded := make([]image.Image, len(entries))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if img, ok := c.Decode(entry); ok {
				decoded[i] = img
			}
			return nil
		})
	}
	_ = g.Wait()

	images := make([]image.Image, 0, len(decoded))
	for _, img := range decoded {
		if img != nil {
			images = append(images, img)
		}
	}
	if dropped := len(entries) - len(images); dropped > 0 {
		c.logger.Warn("Dropped undecodable images", zap.Int("dropped", dropped), zap.Int("count", len(entries)))
	}
	return images
}
