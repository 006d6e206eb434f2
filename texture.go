package glf

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Texture is a 2D RGBA texture. It owns its GPU object until Delete is called.
type Texture struct {
	dev    Device
	handle uint32
	width  int
	height int
}

// Handle returns the GPU handle, or 0 once deleted.
func (t *Texture) Handle() uint32 { return t.handle }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// Delete releases the GPU object. Safe to call more than once.
func (t *Texture) Delete() {
	if t.handle == 0 {
		return
	}
	t.dev.DeleteTexture(t.handle)
	t.handle = 0
}

// NewTexture uploads img as a 4-byte-per-pixel RGBA texture.
func NewTexture(dev Device, img image.Image) *Texture {
	rgba := toRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()

	handle := dev.GenTexture()
	dev.BindTexture(handle)
	dev.TexImage2D(w, h, rgba.Pix)
	dev.BindTexture(0)

	return &Texture{dev: dev, handle: handle, width: w, height: h}
}

// LoadTexture decodes the image file at path and uploads it.
func LoadTexture(dev Device, path string) (*Texture, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	tex := NewTexture(dev, img)
	Logger().Info("glf: texture loaded", "path", path, "width", tex.width, "height", tex.height)
	return tex, nil
}

// DecodeImage reads and decodes an image file in any registered format
// (PNG, JPEG, GIF, BMP, TIFF, WebP).
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("glf: open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("glf: decode image %s: %w", path, err)
	}
	return img, nil
}

// toRGBA returns img as a tightly packed *image.RGBA with a zero origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return rgba
}
