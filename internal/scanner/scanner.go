package scanner

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"reelmatch/internal/catalog"
	"reelmatch/internal/logging"
	"reelmatch/internal/parse"
)

// MediaFile is one discovered media file, valid for the duration of a single
// scan/scrape cycle.
type MediaFile struct {
	Path        string // unique key
	Name        string
	FolderName  string
	ParsedTitle string
	ParsedYear  int
	IsStrm      bool
	StrmContent string
	Kind        catalog.Kind // tagged by the caller, not the walk
	TMDBID      int64        // known external id, 0 when unknown
}

// mediaExtensions is the allow-list of container and stream-pointer formats.
var mediaExtensions = map[string]struct{}{
	".mkv": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {},
	".flv": {}, ".ts": {}, ".m2ts": {}, ".mpg": {}, ".mpeg": {},
	".rmvb": {}, ".rm": {}, ".webm": {}, ".iso": {}, ".strm": {},
}

// skipExtensions are known non-media artifacts that would otherwise clutter
// the walk log.
var skipExtensions = map[string]struct{}{
	".srt": {}, ".ass": {}, ".ssa": {}, ".sub": {}, ".idx": {}, ".smi": {}, ".vtt": {},
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".webp": {},
	".txt": {}, ".log": {}, ".nfo": {}, ".json": {}, ".xml": {}, ".md": {},
	".db": {}, ".ini": {},
}

// genericBuckets are organizational folder names that never carry a title.
var genericBuckets = map[string]struct{}{
	"movie": {}, "movies": {}, "film": {}, "films": {},
	"tv": {}, "series": {}, "shows": {}, "season": {},
	"电影": {}, "电视剧": {}, "剧集": {}, "动漫": {}, "纪录片": {},
}

const maxStrmBytes = 8 * 1024

// Scanner walks folder trees and collects media files.
type Scanner struct {
	logger *slog.Logger
}

// New creates a scanner. A nil logger disables logging.
func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{logger: logging.NewComponentLogger(logger, "scanner")}
}

// Scan recursively walks each root and returns the discovered media files.
// Per-subtree traversal errors are logged and skipped.
func (s *Scanner) Scan(ctx context.Context, roots []string) ([]MediaFile, error) {
	var files []MediaFile
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return files, err
		}
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				s.logger.Warn("skipping unreadable path",
					logging.String("path", path),
					logging.Error(walkErr))
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if isHiddenName(d.Name()) && path != root {
					return fs.SkipDir
				}
				return nil
			}
			if file, ok := s.inspect(path, d.Name()); ok {
				files = append(files, file)
			}
			return nil
		})
		if err != nil {
			s.logger.Warn("walk aborted for root",
				logging.String("root", root),
				logging.Error(err))
		}
	}
	s.logger.Info("scan complete",
		logging.Int("roots", len(roots)),
		logging.Int("files", len(files)))
	return files, nil
}

// inspect filters one file and derives its title, returning false for
// non-media files.
func (s *Scanner) inspect(path, name string) (MediaFile, bool) {
	if isHiddenName(name) {
		return MediaFile{}, false
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, skip := skipExtensions[ext]; skip {
		return MediaFile{}, false
	}
	if _, ok := mediaExtensions[ext]; !ok {
		return MediaFile{}, false
	}

	folder := filepath.Base(filepath.Dir(path))
	parsed := deriveTitle(name, path)

	file := MediaFile{
		Path:        path,
		Name:        name,
		FolderName:  folder,
		ParsedTitle: parsed.Title,
		ParsedYear:  parsed.Year,
		IsStrm:      ext == ".strm",
	}

	if file.IsStrm {
		content, err := readStrm(path)
		if err != nil {
			s.logger.Warn("failed to read strm content",
				logging.String("path", path),
				logging.Error(err))
		} else {
			file.StrmContent = content
		}
	}
	return file, true
}

// deriveTitle implements the three-tier fallback: file name, then containing
// folder, then a non-generic grandparent with CJK characters. Deeply nested
// layouts often carry the real title one or two levels above the leaf file.
func deriveTitle(name, path string) parse.ParsedName {
	parsed := parse.Parse(name)
	if !parse.IsNoiseTitle(parsed.Title) {
		return parsed
	}

	folder := filepath.Base(filepath.Dir(path))
	if folder != "." && folder != string(filepath.Separator) {
		folderParsed := parse.Parse(folder)
		if betterSource(parsed, folderParsed) {
			parsed = folderParsed
		}
	}
	if !parse.IsNoiseTitle(parsed.Title) {
		return parsed
	}

	grandparent := filepath.Base(filepath.Dir(filepath.Dir(path)))
	if grandparent != "." && grandparent != string(filepath.Separator) && !isGenericBucket(grandparent) {
		grandParsed := parse.Parse(grandparent)
		if parse.ContainsCJK(grandParsed.Title) {
			parsed = grandParsed
		}
	}
	return parsed
}

// betterSource reports whether the candidate parse is a stronger title
// source than the noisy current one: it has CJK characters or is simply
// longer.
func betterSource(current, candidate parse.ParsedName) bool {
	if parse.IsNoiseTitle(candidate.Title) && !parse.ContainsCJK(candidate.Title) {
		return false
	}
	if parse.ContainsCJK(candidate.Title) {
		return true
	}
	return utf8.RuneCountInString(candidate.Title) > utf8.RuneCountInString(current.Title)
}

func isGenericBucket(name string) bool {
	_, ok := genericBuckets[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

func isHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}

// readStrm returns the trimmed text content of a stream-pointer file,
// typically a playback URL. Content is capped at maxStrmBytes; anything that
// large is not a pointer file.
func readStrm(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxStrmBytes))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
