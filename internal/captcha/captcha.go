package captcha

import (
	"bytes"
	"image/jpeg"

	"github.com/dchest/captcha"
	"github.com/google/uuid"
)

// Generator выдаёт проверочную строку и соответствующую ей картинку.
// Строка сохраняется в сессии, картинка отдаётся клиенту.
type Generator interface {
	Generate() (answer string, image []byte, err error)
}

type ImageGenerator struct {
	digits int
	width  int
	height int
}

func NewImageGenerator() *ImageGenerator {
	return &ImageGenerator{
		digits: 5,
		width:  captcha.StdWidth,
		height: captcha.StdHeight,
	}
}

func (g *ImageGenerator) Generate() (string, []byte, error) {
	ds := captcha.RandomDigits(g.digits)
	img := captcha.NewImage(uuid.New().String(), ds, g.width, g.height)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return "", nil, err
	}

	answer := make([]byte, len(ds))
	for i, d := range ds {
		answer[i] = '0' + d
	}
	return string(answer), buf.Bytes(), nil
}
