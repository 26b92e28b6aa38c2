package catalog_models

import (
	"errors"
	"fmt"
	"net/http"
)

// FetchError 抓取失败（网络、超时、反爬拦截），核心层不自动重试
type FetchError struct {
	URL        string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.StatusCode)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: http status %d: %v", e.URL, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// IsBlocked 反爬或限流
func (e *FetchError) IsBlocked() bool {
	switch e.StatusCode {
	case http.StatusForbidden, http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return true
	}
	return false
}

func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// ExtractionError 字段级或记录级提取失败；Error() 即记录上的 parsing_error
type ExtractionError struct {
	Kind  PageKind
	Field string
	Err   error
}

func (e *ExtractionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Kind, e.Field, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ReferenceResolutionError 唱片目录中单张专辑解析失败，不中断乐队写入
type ReferenceResolutionError struct {
	BandID  int64
	AlbumID int64
	Err     error
}

func (e *ReferenceResolutionError) Error() string {
	return fmt.Sprintf("resolve album %d for band %d: %v", e.AlbumID, e.BandID, e.Err)
}

func (e *ReferenceResolutionError) Unwrap() error { return e.Err }
