package util

// CompactDate 用于对象存储路径和证书编号中的日期段
const CompactDate = "20060102"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeText        = "text/"
	MimeZip         = "application/zip"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}

	// 项目文档允许的内容类型（按 http.DetectContentType 的结果匹配前缀）
	AllowedDocumentTypes = []string{MimePDF, MimeImage, MimeVideo, MimeText, MimeZip, MimeOctetStream}
)

const DefaultVideoThumbnail = "thumbnails/default-video-thumbnail.jpg"
