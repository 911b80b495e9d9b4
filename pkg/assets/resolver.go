package assets

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/petedyestory/tapedeck/pkg/config"
	"github.com/petedyestory/tapedeck/pkg/models"
)

// Resolver maps a clip's stored metadata to a playable URL for its media file
// and thumbnail. It is configured once at process start; the local/storage
// decision never changes per request, so the same clip always resolves to the
// same URL for the lifetime of the server.
//
// Resolution is total. Missing data falls through to a derived path; a derived
// path that points at nothing renders as a broken media element, it never
// errors here.
type Resolver struct {
	mode             string
	storageBaseURL   string
	clipsBucket      string
	thumbnailsBucket string
}

func NewResolver(site *config.SiteConfig) *Resolver {
	return &Resolver{
		mode:             site.AssetMode,
		storageBaseURL:   strings.TrimSuffix(site.StorageBaseURL, "/"),
		clipsBucket:      site.ClipsBucket,
		thumbnailsBucket: site.ThumbnailsBucket,
	}
}

// ClipURL resolves the playable media URL for a clip. Precedence:
//  1. stored path that is already a full URL: returned unchanged
//  2. stored path that is root-relative: returned unchanged
//  3. stored path that is a bare object key: composed with the storage base
//  4. nothing stored: key derived from the parent tape and clip filenames
func (r *Resolver) ClipURL(clip *models.Clip) string {
	if clip.StoragePath != nil && *clip.StoragePath != "" {
		if u, ok := r.resolveStored(*clip.StoragePath, r.clipsBucket); ok {
			return u
		}
	}

	key := DerivedBaseName(clip) + ".mp4"
	if r.mode == config.AssetModeLocal {
		return "/clips/" + key
	}
	if u := r.storageURL(r.clipsBucket, key); u != "" {
		return u
	}
	return "/clips/" + key
}

// ThumbnailURL resolves the still image for a clip, with the same precedence
// as ClipURL but against the thumbnails bucket and a .jpg derived key.
func (r *Resolver) ThumbnailURL(clip *models.Clip) string {
	if clip.ThumbnailPath != nil && *clip.ThumbnailPath != "" {
		if u, ok := r.resolveStored(*clip.ThumbnailPath, r.thumbnailsBucket); ok {
			return u
		}
	}

	key := DerivedBaseName(clip) + ".jpg"
	if r.mode == config.AssetModeLocal {
		return "/thumbnails/" + key
	}
	if u := r.storageURL(r.thumbnailsBucket, key); u != "" {
		return u
	}
	return "/thumbnails/" + key
}

// resolveStored handles precedence steps 1-3 for an explicitly stored path.
// The second return is false only when the stored path was a bare key and no
// storage base is configured, in which case the caller serves it root-relative.
func (r *Resolver) resolveStored(stored, bucket string) (string, bool) {
	if strings.HasPrefix(stored, "http://") || strings.HasPrefix(stored, "https://") {
		return stored, true
	}
	if strings.HasPrefix(stored, "/") {
		return stored, true
	}

	key := strings.TrimLeft(stored, "/")
	if u := r.storageURL(bucket, key); u != "" {
		return u, true
	}
	return "/" + key, true
}

func (r *Resolver) storageURL(bucket, key string) string {
	if r.storageBaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", r.storageBaseURL, bucket, url.PathEscape(key))
}

// DerivedBaseName reconstructs the flat object key shared by a clip's media
// file and thumbnail: the parent tape's filename with dashes normalized to
// underscores, a double underscore, then the clip's filename without its .mp4
// extension. "Pete-Dye-1" + "001-intro.mp4" => "Pete_Dye_1__001-intro".
func DerivedBaseName(clip *models.Clip) string {
	videoFilename := ""
	if clip.Video != nil {
		videoFilename = clip.Video.Filename
	}
	videoFilename = strings.ReplaceAll(videoFilename, "-", "_")
	clipName := strings.Replace(clip.Filename, ".mp4", "", 1)
	return videoFilename + "__" + clipName
}
