package destination

import (
	"fmt"
	"path"
	"strings"
)

// checkKey rejects keys that would escape the destination root.
func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("archive key is required")
	}
	if path.IsAbs(key) || strings.HasPrefix(path.Clean(key), "..") {
		return fmt.Errorf("invalid archive key: %q", key)
	}
	return nil
}

// objectKey joins a configured prefix and an archive key.
func objectKey(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

// contentType returns the MIME type uploaded with an archive.
func contentType(key string) string {
	if strings.HasSuffix(key, ".zip") {
		return "application/zip"
	}
	return "application/octet-stream"
}
