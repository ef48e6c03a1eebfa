package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/foodgram-next/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

const (
	uploadURLPrefix  = "/uploads/"
	defaultUploadDir = "uploads"
)

// ErrUploadRejected 内容本身不合格（格式、大小、尺寸），区别于磁盘写入失败
var ErrUploadRejected = errors.New("upload rejected")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

func rejectUpload(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUploadRejected, fmt.Sprintf(format, args...))
}

// UploadService 图片落盘到 upload.dir，对外路径为 /uploads/<scene>/<yyyymm>/<uuid>.<ext>
type UploadService struct {
	cfg *config.Config
	now func() time.Time
}

func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg, now: time.Now}
}

// SaveBase64Image 接受 data URI 或裸 base64，返回对外访问路径
func (s *UploadService) SaveBase64Image(dataURI, scene string) (string, error) {
	raw, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	ext, err := s.checkImage(raw)
	if err != nil {
		return "", err
	}

	scene = strings.Trim(strings.TrimSpace(scene), "/")
	if scene == "" {
		scene = "common"
	}
	relative := strings.Join([]string{scene, s.now().Format("200601"), uuid.NewString() + ext}, "/")
	if err := writeFileAtomic(filepath.Join(s.BaseDir(), filepath.FromSlash(relative)), raw); err != nil {
		return "", err
	}
	return uploadURLPrefix + relative, nil
}

// checkImage 按实际内容判断类型，不信任 data URI 里声明的类型
func (s *UploadService) checkImage(raw []byte) (string, error) {
	limits := s.cfg.Upload
	if limits.MaxSize > 0 && int64(len(raw)) > limits.MaxSize {
		return "", rejectUpload("size %d exceeds %d bytes", len(raw), limits.MaxSize)
	}
	contentType := http.DetectContentType(raw)
	ext, known := imageExtensions[contentType]
	allowed := len(limits.AllowedTypes) == 0 || slices.ContainsFunc(limits.AllowedTypes, func(t string) bool {
		return strings.EqualFold(t, contentType)
	})
	if !known || !allowed {
		return "", rejectUpload("content type %s not allowed", contentType)
	}
	dims, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", rejectUpload("undecodable image: %v", err)
	}
	if limits.MaxWidth > 0 && dims.Width > limits.MaxWidth {
		return "", rejectUpload("width %d exceeds %d", dims.Width, limits.MaxWidth)
	}
	if limits.MaxHeight > 0 && dims.Height > limits.MaxHeight {
		return "", rejectUpload("height %d exceeds %d", dims.Height, limits.MaxHeight)
	}
	return ext, nil
}

// writeFileAtomic 先写临时文件再改名，读者不会看到写了一半的图片
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// RemoveFile 只删除上传目录内的文件，路径不合法或文件不存在时忽略
func (s *UploadService) RemoveFile(publicPath string) error {
	local, ok := s.localPath(publicPath)
	if !ok {
		return nil
	}
	if err := os.Remove(local); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// BaseDir 上传根目录
func (s *UploadService) BaseDir() string {
	if dir := strings.TrimSpace(s.cfg.Upload.Dir); dir != "" {
		return dir
	}
	return defaultUploadDir
}

func (s *UploadService) localPath(publicPath string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(publicPath), uploadURLPrefix)
	if !ok {
		return "", false
	}
	relative := filepath.Clean(filepath.FromSlash(rest))
	if relative == "." || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) || filepath.IsAbs(relative) {
		return "", false
	}
	return filepath.Join(s.BaseDir(), relative), true
}

func decodeDataURI(dataURI string) ([]byte, error) {
	payload := strings.TrimSpace(dataURI)
	if meta, body, ok := strings.Cut(payload, ","); ok && strings.HasPrefix(meta, "data:") {
		mediaType, isBase64 := strings.CutSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
		if !isBase64 || !strings.HasPrefix(mediaType, "image/") {
			return nil, rejectUpload("malformed data URI")
		}
		payload = body
	} else if strings.HasPrefix(payload, "data:") {
		return nil, rejectUpload("malformed data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, rejectUpload("invalid base64: %v", err)
	}
	if len(raw) == 0 {
		return nil, rejectUpload("empty image")
	}
	return raw, nil
}
