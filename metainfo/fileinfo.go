package metainfo

import "strings"

// Information specific to a single file inside the MetaInfo structure.
type FileInfo struct {
	Length int64
	Path   []string
	MD5Sum string
}

// DisplayPath returns the path a client would create for this file. For
// multi-file torrents that's the joined path segments; for single-file
// torrents the file is named by the info dictionary itself.
func (fi *FileInfo) DisplayPath(info *Info) string {
	if info.IsDir() {
		return strings.Join(fi.Path, "/")
	}
	return info.Name
}
