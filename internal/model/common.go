package model

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCode 错误类型
type ErrorCode int

const (
	CodeMissingDatabase ErrorCode = iota + 1 // 数据库文件不存在
	CodeEmptySchema                          // 数据库中没有表
	CodeTableNotFound                        // 指定的表不存在
	CodeQuery                                // SQL执行失败
)

// DumpError 自定义错误类型
type DumpError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`   // 数据库路径（CodeMissingDatabase）
	Table   string    `json:"table,omitempty"`  // 请求的表（CodeTableNotFound）
	Tables  []string  `json:"tables,omitempty"` // 可用的表（CodeTableNotFound）
	Err     error     `json:"-"`
}

func (e *DumpError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DumpError) Unwrap() error {
	return e.Err
}

// 预定义错误
var (
	ErrMissingDatabase = func(path string) error {
		return &DumpError{Code: CodeMissingDatabase, Message: "database not found at: " + path, Path: path}
	}
	ErrEmptySchema = func() error {
		return &DumpError{Code: CodeEmptySchema, Message: "no tables found in database"}
	}
	ErrTableNotFound = func(name string, available []string) error {
		return &DumpError{
			Code:    CodeTableNotFound,
			Message: fmt.Sprintf("table '%s' not found (available: %s)", name, strings.Join(available, ", ")),
			Table:   name,
			Tables:  available,
		}
	}
	ErrQuery = func(err error, format string, args ...interface{}) error {
		return &DumpError{Code: CodeQuery, Message: fmt.Sprintf(format, args...), Err: errors.WithStack(err)}
	}
)

// AsDumpError 从错误链中取出 DumpError
func AsDumpError(err error) (*DumpError, bool) {
	var de *DumpError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsCode 判断错误链中是否有指定类型的 DumpError
func IsCode(err error, code ErrorCode) bool {
	de, ok := AsDumpError(err)
	return ok && de.Code == code
}
