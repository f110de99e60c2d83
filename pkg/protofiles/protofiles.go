// Package protofiles ships the disperser protocol description used by the grpcurl
// transport.
package protofiles

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	ros "github.com/rollkit/eigenda-client/pkg/os"
)

const (
	// CommonProto is the shared message definitions, relative to the import path.
	CommonProto = "common/common.proto"
	// DisperserProto is the disperser service definition, relative to the import path.
	DisperserProto = "disperser/disperser.proto"
)

//go:embed proto
var files embed.FS

// Files lists the embedded proto files relative to the import path.
func Files() ([]string, error) {
	var out []string
	err := fs.WalkDir(files, "proto", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel("proto", path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

// Read returns the embedded contents of name.
func Read(name string) ([]byte, error) {
	return files.ReadFile("proto/" + name)
}

// Setup writes the embedded proto files below dir. Existing files are kept
// unless overwrite is set. It returns the files it wrote.
func Setup(dir string, overwrite bool) ([]string, error) {
	names, err := Files()
	if err != nil {
		return nil, err
	}
	var written []string
	for _, name := range names {
		dst := filepath.Join(dir, filepath.FromSlash(name))
		if !overwrite && ros.FileExists(dst) {
			continue
		}
		data, err := Read(name)
		if err != nil {
			return written, err
		}
		if err := ros.EnsureDir(filepath.Dir(dst), 0o750); err != nil {
			return written, fmt.Errorf("creating proto directory: %w", err)
		}
		if err := ros.WriteFile(dst, data, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", name, err)
		}
		written = append(written, dst)
	}
	return written, nil
}

// Present reports whether every embedded file exists below dir.
func Present(dir string) bool {
	names, err := Files()
	if err != nil {
		return false
	}
	for _, name := range names {
		if !ros.FileExists(filepath.Join(dir, filepath.FromSlash(name))) {
			return false
		}
	}
	return true
}
