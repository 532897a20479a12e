package movies

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// ErrPosterTooLarge: 実際に読んだバイト数が上限を超えた（Content-Length 詐称を含む）
var ErrPosterTooLarge = errors.New("poster exceeds size limit")

// PosterPolicy はポスターの許可拡張子とサイズ上限。生成後は変更できない。
type PosterPolicy struct {
	allowed  []string
	maxBytes int64
}

// NewPosterPolicy: 拡張子は小文字・ドット付きに正規化して保持する
func NewPosterPolicy(maxBytes int64, exts ...string) PosterPolicy {
	allowed := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed = append(allowed, e)
	}
	return PosterPolicy{allowed: allowed, maxBytes: maxBytes}
}

func DefaultPosterPolicy() PosterPolicy {
	return NewPosterPolicy(1<<20, ".jpg", ".png")
}

func (p PosterPolicy) AllowedExtensions() []string { return slices.Clone(p.allowed) }
func (p PosterPolicy) MaxBytes() int64             { return p.maxBytes }

func (p PosterPolicy) extensionMessage() string {
	return fmt.Sprintf("Only %s images are allowed!", strings.Join(p.allowed, ", "))
}

func (p PosterPolicy) sizeMessage() string {
	return fmt.Sprintf("Posters can't be more than %s!", humanSize(p.maxBytes))
}

// Check: 拡張子（大文字小文字無視）とサイズを検査。問題なければ nil
func (p PosterPolicy) Check(filename string, size int64) *FieldError {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(p.allowed, ext) {
		return &FieldError{Field: FieldPoster, Message: p.extensionMessage()}
	}
	if size > p.maxBytes {
		return &FieldError{Field: FieldPoster, Message: p.sizeMessage()}
	}
	return nil
}

// PosterFile はアップロードされたファイル1件
type PosterFile struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

func PosterFromHeader(fh *multipart.FileHeader) *PosterFile {
	if fh == nil {
		return nil
	}
	return &PosterFile{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}

// attached: 空のファイルパートは未選択と同じ扱い
func (f *PosterFile) attached() bool {
	return f != nil && f.Open != nil && f.Size > 0
}

var posterBufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Read: プールのバッファに全量読み込んでコピーを返す。バッファは必ずプールへ戻す。
func (p PosterPolicy) Read(f *PosterFile) ([]byte, error) {
	src, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open poster: %w", err)
	}
	defer src.Close()

	buf := posterBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		// 上限より大きく育ったバッファはプールに戻さない
		if int64(buf.Cap()) <= 2*p.maxBytes {
			buf.Reset()
			posterBufPool.Put(buf)
		}
	}()

	n, err := buf.ReadFrom(io.LimitReader(src, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read poster: %w", err)
	}
	if n > p.maxBytes {
		return nil, ErrPosterTooLarge
	}
	return bytes.Clone(buf.Bytes()), nil
}

// 配信してよい Content-Type。これ以外は octet-stream で返す
var servableTypes = []string{"image/jpeg", "image/png"}

const fallbackContentType = "application/octet-stream"

// DetectContentType: 保存済みポスターの Content-Type をバイト列から推定。
// 拡張子しか見ていないので中身が画像とは限らない。
func DetectContentType(data []byte) string {
	m := mimetype.Detect(data)
	for _, t := range servableTypes {
		if m.Is(t) {
			return t
		}
	}
	return fallbackContentType
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%dKB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
