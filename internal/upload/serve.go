package upload

import (
	"net/http"
	"os"
	"strings"
)

// filesOnly hides directories so the upload folder cannot be listed.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

// FileServer serves the images in dir under urlPrefix. Directory paths,
// including the bare prefix, return 404.
func FileServer(dir, urlPrefix string) http.Handler {
	prefix := strings.TrimSuffix(urlPrefix, "/")
	return http.StripPrefix(prefix, http.FileServer(filesOnly{fs: http.Dir(dir)}))
}
