package domain

import "errors"

var (
	ErrForeignURL      = errors.New("url is not hosted by this service")
	ErrForbidden       = errors.New("asset belongs to another user")
	ErrTooLarge        = errors.New("asset exceeds the upload limit")
	ErrUnsupportedType = errors.New("unsupported asset type")
	ErrEmpty           = errors.New("asset is empty")
)

// Allowed image types keyed by MIME type, with the extension stored keys use.
var AllowedTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}
