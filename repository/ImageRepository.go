package repository

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bookStore/models"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog/log"
)

// ImageWidth is the width uploaded covers are scaled down to.
const ImageWidth = 800

const UploadsPath = "/uploads/"

type ImageRepository interface {
	SaveImage(src io.Reader, filename string) (url string, err error)
	DeleteImage(url string) (err error)
}

type ImageRepo struct {
	dir string
}

func NewImageRepository(dir string) (ImageRepository, error) {
	if dir == "" {
		return nil, errors.New("upload dir must be set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ImageRepo{
		dir: dir,
	}, nil
}

// SaveImage decodes a png or jpeg upload, scales it to ImageWidth when wider
// and stores it as jpeg under a random name. The returned url is relative to
// the server root.
func (i *ImageRepo) SaveImage(src io.Reader, filename string) (url string, err error) {
	var img image.Image
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		img, err = png.Decode(src)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(src)
	default:
		log.Warn().Str("file", filename).Msg("unsupported image type")
		err = models.ErrBadRequest
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("SaveImage[1]")
		err = models.ErrBadRequest
		return
	}

	if img.Bounds().Dx() > ImageWidth {
		img = resize.Resize(ImageWidth, 0, img, resize.Lanczos3)
	}

	name := fmt.Sprintf("%s.jpg", uuid.NewString())
	out, err := os.Create(filepath.Join(i.dir, name))
	if err != nil {
		log.Error().Err(err).Msg("SaveImage[2]")
		err = models.ErrServerError
		return
	}
	defer out.Close()

	if err = jpeg.Encode(out, img, &jpeg.Options{Quality: 80}); err != nil {
		log.Error().Err(err).Msg("SaveImage[3]")
		err = models.ErrServerError
		return
	}
	url = UploadsPath + name
	return
}

// DeleteImage removes a previously stored upload. Urls outside the uploads
// path are ignored.
func (i *ImageRepo) DeleteImage(url string) (err error) {
	if !strings.HasPrefix(url, UploadsPath) {
		return
	}
	name := filepath.Base(url)
	err = os.Remove(filepath.Join(i.dir, name))
	if err != nil && !os.IsNotExist(err) {
		log.Error().Err(err).Msg("DeleteImage")
		err = models.ErrServerError
		return
	}
	err = nil
	return
}
