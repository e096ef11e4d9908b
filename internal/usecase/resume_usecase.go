package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/metrics"
)

// Resume previews are cut to this many characters
const (
	rawTextPreviewLimit = 1000
	rawTextEllipsis     = "..."
)

// DownloadResume opens the stored binary of any resume by id
func (uc *applicationUsecase) DownloadResume(ctx context.Context, resumeID int64) (*domain.ResumeFile, error) {
	resume, err := uc.resumeRepo.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.ResumeDownloads.WithLabelValues(metrics.DownloadMissingRow).Inc()
			return nil, apperror.NotFound(msgResumeNotFound)
		}
		return nil, apperror.Internal(err)
	}

	content, size, err := uc.files.Open(ctx, resume.ObjectKey())
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			metrics.ResumeDownloads.WithLabelValues(metrics.DownloadMissingBlob).Inc()
			logger.Log.Warnw("Resume record has no backing file", "resume_id", resume.ID, "key", resume.ObjectKey())
			return nil, apperror.NotFound(msgResumeFileAbsent)
		}
		metrics.ResumeDownloads.WithLabelValues(metrics.DownloadStorageError).Inc()
		return nil, apperror.Internal(err)
	}

	metrics.ResumeDownloads.WithLabelValues(metrics.DownloadServed).Inc()
	return &domain.ResumeFile{
		Filename:    resume.Filename,
		ContentType: domain.ResumeContentType,
		Size:        size,
		Content:     content,
	}, nil
}

// ViewResumeDetails returns resume metadata, its owner and a text preview
func (uc *applicationUsecase) ViewResumeDetails(ctx context.Context, resumeID int64) (*domain.ResumeDetail, error) {
	resume, err := uc.resumeRepo.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(msgResumeNotFound)
		}
		return nil, apperror.Internal(err)
	}

	var owner *domain.ResumeOwner
	user, err := uc.userRepo.GetByID(ctx, resume.UserID)
	switch {
	case err == nil:
		owner = &domain.ResumeOwner{ID: user.ID, Username: user.Username, Email: user.Email}
	case !errors.Is(err, domain.ErrNotFound):
		return nil, apperror.Internal(err)
	}

	skills, err := decodeStringList(resume.Skills)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("resume %d skills: %w", resume.ID, err))
	}
	keywords, err := decodeStringList(resume.Keywords)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("resume %d keywords: %w", resume.ID, err))
	}

	return &domain.ResumeDetail{
		ID:         resume.ID,
		Filename:   resume.Filename,
		UploadedAt: resume.UploadedAt,
		User:       owner,
		Skills:     skills,
		Keywords:   keywords,
		RawText:    previewRawText(resume.RawText),
	}, nil
}

// decodeStringList parses a JSON string array; empty input is an empty list
func decodeStringList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// previewRawText keeps the first rawTextPreviewLimit characters and marks the cut
func previewRawText(text string) string {
	if utf8.RuneCountInString(text) <= rawTextPreviewLimit {
		return text
	}
	return string([]rune(text)[:rawTextPreviewLimit]) + rawTextEllipsis
}
