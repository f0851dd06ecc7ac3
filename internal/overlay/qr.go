package overlay

import (
	"image"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"
)

// QRBadge is an attribution QR code composited into the bottom-right corner
// of every output frame. Generated once, stamped per frame.
type QRBadge struct {
	img    image.Image
	margin int
}

func NewQRBadge(link string, size, margin int) (*QRBadge, error) {
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return &QRBadge{img: q.Image(size), margin: margin}, nil
}

// Apply stamps the badge onto the frame. Frames smaller than the badge plus
// its margin are left untouched.
func (b *QRBadge) Apply(frame *image.RGBA) {
	fb := frame.Bounds()
	ib := b.img.Bounds()

	if fb.Dx() < ib.Dx()+b.margin || fb.Dy() < ib.Dy()+b.margin {
		return
	}

	offset := image.Pt(fb.Max.X-ib.Dx()-b.margin, fb.Max.Y-ib.Dy()-b.margin)
	rect := image.Rectangle{Min: offset, Max: offset.Add(ib.Size())}
	draw.Draw(frame, rect, b.img, ib.Min, draw.Over)
}
