package source

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const fileScheme = "file"

func init() {
	register(fileScheme, func(uri string) (Source, error) {
		parsed, err := url.Parse(uri)
		if err != nil {
			return nil, err
		}
		pwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path := parsed.Host + parsed.Path
		if strings.HasPrefix(path, "./") {
			path = filepath.Join(pwd, strings.TrimPrefix(path, "./"))
		}
		return &fileSource{root: path}, nil
	})
}

type fileSource struct{ root string }

func (s *fileSource) Fetch(remotePath string, size int64) ([]byte, error) {
	f, err := os.Open(filepath.Join(s.root, remotePath))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if size > 0 {
		buf := make([]byte, size)
		if _, err := io.ReadFull(f, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	return io.ReadAll(f)
}

func (s *fileSource) HasFile(remotePath string) bool {
	_, err := os.Stat(filepath.Join(s.root, remotePath))
	return err == nil
}

func (s *fileSource) Scheme() string { return fileScheme }
func (s *fileSource) Close() error   { return nil }
