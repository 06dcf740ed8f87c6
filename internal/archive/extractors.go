package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// Extractor expands an archive file into targetDir.
type Extractor interface {
	Extract(archivePath, targetDir string) error
}

type ZipExtractor struct{}

type TarGzExtractor struct{}

var extractors = map[string]Extractor{
	".zip":    &ZipExtractor{},
	".tar.gz": &TarGzExtractor{},
	".tgz":    &TarGzExtractor{},
}

// NewExtractor returns the extractor matching the archive's suffix.
func NewExtractor(archivePath string) (Extractor, error) {
	for suffix, extractor := range extractors {
		if strings.HasSuffix(archivePath, suffix) {
			return extractor, nil
		}
	}
	return nil, fmt.Errorf("no extractor implemented for %s", archivePath)
}

func (z *ZipExtractor) Extract(archivePath, targetDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer reader.Close()
	for _, f := range reader.File {
		path, err := securejoin.SecureJoin(targetDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		src, err := f.Open()
		if err != nil {
			return err
		}
		err = writeFile(path, src, fileMode(f.Mode()))
		src.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *TarGzExtractor) Extract(archivePath, targetDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer file.Close()
	uncompressedStream, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer uncompressedStream.Close()

	tarReader := tar.NewReader(uncompressedStream)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		path, err := securejoin.SecureJoin(targetDir, header.Name)
		if err != nil {
			return err
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := writeFile(path, tarReader, fileMode(os.FileMode(header.Mode))); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown type: %b in %s", header.Typeflag, header.Name)
		}
	}
}

func writeFile(path string, src io.Reader, mode os.FileMode) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func fileMode(m os.FileMode) os.FileMode {
	if m.Perm() == 0 {
		return 0644
	}
	return m.Perm()
}
