package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"followcheck/core"
	"followcheck/internal/report"
)

const (
	fieldFollowers = "followers"
	fieldFollowing = "following"
)

var (
	errTooLarge  = errors.New("upload too large")
	errBadUpload = errors.New("malformed upload")
)

type AnalyzeResponse struct {
	core.AnalysisResult
	ProfileURLs []string `json:"profileUrls"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	limit := 2*int64(s.cfg.Upload.MaxFiles)*s.cfg.Upload.MaxFileBytes + multipartOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.fail(c, fmt.Errorf("%w: request exceeds %d bytes", errTooLarge, limit))
			return
		}
		s.fail(c, fmt.Errorf("%w: %v", errBadUpload, err))
		return
	}

	followers, err := s.readDocuments(form.File[fieldFollowers])
	if err != nil {
		s.fail(c, err)
		return
	}

	following, err := s.readDocuments(form.File[fieldFollowing])
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := core.Check(followers, following)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.log.Info("analyzed export",
		zap.Int("followers_files", len(followers)),
		zap.Int("following_files", len(following)),
		zap.Int("follower_count", result.FollowerCount),
		zap.Int("following_count", result.FollowingCount),
		zap.Int("not_following_back", len(result.NotFollowingBack)),
	)

	success(c, AnalyzeResponse{
		AnalysisResult: result,
		ProfileURLs:    report.ProfileURLs(s.cfg.Report.ProfileBaseURL, result.NotFollowingBack),
	})
}

func (s *Server) readDocuments(files []*multipart.FileHeader) ([]core.Document, error) {
	if len(files) > s.cfg.Upload.MaxFiles {
		return nil, fmt.Errorf("%w: %d files, at most %d allowed", errTooLarge, len(files), s.cfg.Upload.MaxFiles)
	}

	docs := make([]core.Document, 0, len(files))

	for _, fh := range files {
		if fh.Size > s.cfg.Upload.MaxFileBytes {
			return nil, fmt.Errorf("%w: %s is %d bytes, at most %d allowed", errTooLarge, fh.Filename, fh.Size, s.cfg.Upload.MaxFileBytes)
		}

		data, err := readFile(fh)
		if err != nil {
			return nil, err
		}

		docs = append(docs, core.Document{Name: fh.Filename, Data: data})
	}

	return docs, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}

	return data, nil
}
