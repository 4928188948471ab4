package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Writer 输出到标准输出或文件
type Writer struct {
	path   string
	stdout io.Writer
}

// NewWriter path 为空时写到 stdout
func NewWriter(path string, stdout io.Writer) *Writer {
	return &Writer{
		path:   path,
		stdout: stdout,
	}
}

// ToFile 是否写入文件
func (w *Writer) ToFile() bool {
	return w.path != ""
}

// Path 输出文件路径
func (w *Writer) Path() string {
	return w.path
}

// Write 写出内容，文件已存在时覆盖
func (w *Writer) Write(content string) error {
	if !w.ToFile() {
		_, err := fmt.Fprintln(w.stdout, content)
		return err
	}

	// 确保目录存在
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// 保留已有文件的权限
	mode := os.FileMode(0644)
	if fi, err := os.Stat(w.path); err == nil {
		mode = fi.Mode().Perm()
	}

	// 写入同目录下的临时文件
	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpFile := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Chmod(tmpFile, mode); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to set output file mode: %w", err)
	}

	// 重命名为正式文件（原子操作）
	if err := os.Rename(tmpFile, w.path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename output file: %w", err)
	}

	logrus.Debugf("Output written: %s (%d bytes)", w.path, len(content))
	return nil
}
