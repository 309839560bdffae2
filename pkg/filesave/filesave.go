package filesave

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Dir writes files into a directory atomically: data goes to a temporary file
// first and is renamed into place only once fully written.
type Dir struct {
	OutputDir string
}

func New(outputDir string) *Dir {
	return &Dir{OutputDir: outputDir}
}

func (d *Dir) ensureOutputDir() error {
	if _, err := os.Stat(d.OutputDir); os.IsNotExist(err) {
		err = os.MkdirAll(d.OutputDir, os.ModePerm)
		if err != nil {
			return fmt.Errorf("failed to create output directory: %v", err)
		}
	}
	return nil
}

// Save writes data as name inside the directory and returns the final path.
// Nothing is left behind when it fails.
func (d *Dir) Save(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := d.ensureOutputDir(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(d.OutputDir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err = ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(d.OutputDir, name)
	if err = os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", name, err)
	}
	committed = true
	return path, nil
}

// Delete removes a previously saved file.
func (d *Dir) Delete(name string) error {
	err := os.Remove(filepath.Join(d.OutputDir, name))
	if err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}
