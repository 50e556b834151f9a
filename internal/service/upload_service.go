package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/craftshowcase/internal/config"
	"github.com/craftshowcase/internal/logger"

	"github.com/google/uuid"
)

const uploadSubDir = "uploads"

// UploadService 图片资源存储
type UploadService struct {
	cfg    config.UploadConfig
	now    func() time.Time
	create func(name string) (io.WriteCloser, error)
}

// NewUploadService 创建上传服务
func NewUploadService(cfg config.UploadConfig) *UploadService {
	return &UploadService{cfg: cfg, now: time.Now, create: createFile}
}

func createFile(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// SaveImages 依次保存图片并返回公开访问路径；中途失败时已写入的文件保留
func (s *UploadService) SaveImages(files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.SaveImage(file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// SaveImage 保存单个文件
func (s *UploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", ErrNoFiles
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", fmt.Errorf("%w: file larger than %d MB", ErrUploadRejected, s.cfg.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 && (ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions)) {
		return "", fmt.Errorf("%w: extension %q", ErrUploadRejected, ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	defer src.Close()

	if err := s.checkContentType(src); err != nil {
		return "", err
	}

	filename := s.buildFilename(ext)
	dir := filepath.Join(s.publicDir(), uploadSubDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	target := filepath.Join(dir, filename)
	dst, err := s.create(target)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	logger.Debugw("upload_image_saved", "filename", filename, "size", file.Size)
	return path.Join("/", uploadSubDir, filename), nil
}

func (s *UploadService) checkContentType(src multipart.File) error {
	if len(s.cfg.AllowedTypes) == 0 {
		return nil
	}
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}
	contentType := http.DetectContentType(buffer[:n])
	for _, allowed := range s.cfg.AllowedTypes {
		if strings.EqualFold(contentType, allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: content type %s", ErrUploadRejected, contentType)
}

// buildFilename 生成 <毫秒时间戳>-<随机串><扩展名>
func (s *UploadService) buildFilename(ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), suffix, ext)
}

func (s *UploadService) publicDir() string {
	dir := strings.TrimSpace(s.cfg.PublicDir)
	if dir == "" {
		return "public"
	}
	return dir
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
