package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// LoadStill загружает неподвижное изображение для титульной заставки:
// первую страницу PDF (рендер через go-fitz) либо файл PNG/JPEG
func LoadStill(path string, dpi int) (image.Image, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		doc, err := fitz.New(path)
		if err != nil {
			return nil, fmt.Errorf("не удалось открыть PDF %s: %w", path, err)
		}
		defer doc.Close()

		if doc.NumPage() == 0 {
			return nil, fmt.Errorf("в PDF %s нет страниц", path)
		}
		return doc.ImageDPI(0, float64(dpi))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("не удалось декодировать изображение %s: %w", path, err)
	}
	return img, nil
}
