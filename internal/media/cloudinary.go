package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// DefaultFolder папка магазина в Cloudinary
const DefaultFolder = "shagun_fabrics"

var cloudinaryFormats = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".mp4": true, ".mov": true,
}

// Cloudinary хранит медиа во внешнем хостинге Cloudinary
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, folder: DefaultFolder}, nil
}

var _ Store = (*Cloudinary)(nil)

func (c *Cloudinary) Upload(ctx context.Context, f File) (string, error) {
	if f.Body == nil {
		return "", ErrNoFile
	}
	if !cloudinaryFormats[strings.ToLower(path.Ext(f.Name))] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, f.Name)
	}
	res, err := c.cld.Upload.Upload(ctx, f.Body, uploader.UploadParams{
		Folder:       c.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

func (c *Cloudinary) Key(rawURL string) (string, bool) { return PublicIDFromURL(rawURL) }

func (c *Cloudinary) Delete(ctx context.Context, key string, kind Kind) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     key,
		ResourceType: string(kind),
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", key, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", key, res.Error.Message)
	}
	if res.Result != "ok" {
		return fmt.Errorf("cloudinary destroy %s: %s", key, res.Result)
	}
	return nil
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// PublicIDFromURL extracts the Cloudinary public id from a delivery URL:
// https://res.cloudinary.com/<cloud>/<type>/upload/[transformations/][v123/]<folder>/<name>.<ext>
// yields <folder>/<name>. URLs from other hosts are not recognised.
func PublicIDFromURL(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.HasSuffix(u.Hostname(), "cloudinary.com") {
		return "", false
	}
	_, rest, found := strings.Cut(u.Path, "/upload/")
	if !found {
		return "", false
	}
	segments := strings.Split(strings.Trim(rest, "/"), "/")
	for i, s := range segments {
		if versionSegment.MatchString(s) {
			segments = segments[i+1:]
			break
		}
	}
	if len(segments) == 0 || segments[0] == "" {
		return "", false
	}
	last := len(segments) - 1
	segments[last] = strings.TrimSuffix(segments[last], path.Ext(segments[last]))
	if segments[last] == "" {
		return "", false
	}
	return strings.Join(segments, "/"), true
}
