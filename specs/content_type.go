package specs

import "strings"

const (
	ContentTypeUndefined = ""
	ContentTypeRaw       = "application/octet-stream"
	ContentTypePlain     = "text/plain"
	ContentTypeMarkdown  = "text/markdown"

	ContentTypeHTML       = "text/html"
	ContentTypeCSV        = "text/csv"
	ContentTypeCSS        = "text/css"
	ContentTypePDF        = "application/pdf"
	ContentTypeJavaScript = "text/javascript"

	ContentTypeAVI  = "video/x-msvideo"
	ContentTypeWAV  = "audio/wav"
	ContentTypeMP3  = "audio/mpeg"
	ContentTypeMP4  = "video/mp4"
	ContentTypeMPEG = "video/mpeg"
	ContentTypeMKV  = "application/x-matroska"

	ContentTypeBMP  = "image/bmp"
	ContentTypeGIF  = "image/gif"
	ContentTypeICO  = "image/vnd.microsoft.icon"
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeWEBP = "image/webp"
	ContentTypeSVG  = "image/svg+xml"

	ContentTypeJson = "application/json"
	ContentTypeXml  = "application/xml"
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeZip  = "application/zip"
	ContentTypeGzip = "application/gzip"
)

// contentTypesByExt maps lower-case file extensions to content types.
// Read-only after init.
var contentTypesByExt = map[string]string{
	"txt":  ContentTypePlain,
	"md":   ContentTypeMarkdown,
	"html": ContentTypeHTML,
	"htm":  ContentTypeHTML,
	"csv":  ContentTypeCSV,
	"css":  ContentTypeCSS,
	"pdf":  ContentTypePDF,
	"js":   ContentTypeJavaScript,
	"mjs":  ContentTypeJavaScript,
	"avi":  ContentTypeAVI,
	"wav":  ContentTypeWAV,
	"mp3":  ContentTypeMP3,
	"mp4":  ContentTypeMP4,
	"mpeg": ContentTypeMPEG,
	"mkv":  ContentTypeMKV,
	"bmp":  ContentTypeBMP,
	"gif":  ContentTypeGIF,
	"ico":  ContentTypeICO,
	"jpeg": ContentTypeJPEG,
	"jpg":  ContentTypeJPEG,
	"png":  ContentTypePNG,
	"webp": ContentTypeWEBP,
	"svg":  ContentTypeSVG,
	"json": ContentTypeJson,
	"xml":  ContentTypeXml,
	"zip":  ContentTypeZip,
	"gz":   ContentTypeGzip,
}

// ContentTypeByExt returns the content type registered for a file
// extension, with or without the leading dot, folding ascii case.
// Unknown extensions map to [ContentTypeRaw].
func ContentTypeByExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if contentType, has := contentTypesByExt[ext]; has {
		return contentType
	}
	return ContentTypeRaw
}

// FileContentType derives the content type for the file the url path
// names, or [ContentTypeRaw] when it names no file.
func FileContentType(url *Url) string {
	file := url.File()
	if i := strings.LastIndexByte(file, '.'); i >= 0 {
		return ContentTypeByExt(file[i+1:])
	}
	return ContentTypeRaw
}
