package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"creava/logger"
	"creava/models"
	"creava/quota"
	"creava/store"

	"github.com/google/uuid"
)

// Token budgets fixed by the operation kind. Articles use the caller-chosen
// length instead.
const (
	blogTitleMaxTokens    = 100
	resumeReviewMaxTokens = 1000
)

// MaxResumeSize is the upload ceiling for resume review.
const MaxResumeSize = 5 << 20 // 5 MiB

const resumeReviewPromptTemplate = `You are an expert resume reviewer.
Give feedback with these sections:
1. Summary of what the resume says
2. Strengths
3. Weaknesses
4. ATS improvements (keywords to add)
5. Formatting improvements

Resume Content:
%s
`

// Service runs the creation pipeline for every operation kind:
// quota check, input validation, one provider call, persistence, quota
// commit. Failures exit the pipeline at any stage; no retries, no partial
// records.
type Service struct {
	Text      TextCompletion
	Images    ImageSynthesis
	Store     ImageStore
	Documents DocumentTextExtractor
	Creations store.CreationStore
	Guard     *quota.Guard
	Log       *logger.Logger
}

// GenerateArticle writes free text of caller-chosen length. Metered.
func (s *Service) GenerateArticle(ctx context.Context, account models.Account, prompt string, length int) Result {
	if strings.TrimSpace(prompt) == "" || length <= 0 {
		return Fail(ErrKindInvalidInput, "Prompt and length are required.")
	}
	if err := s.Guard.Check(account, quota.OperationMetered); err != nil {
		return denied(err)
	}

	content, err := s.Text.Complete(ctx, prompt, length)
	if err != nil {
		s.Log.Error("article completion failed", "user_id", account.ID, "error", err)
		return Fail(ErrKindProviderFailure, err.Error())
	}

	return s.finish(ctx, account, models.Creation{
		UserID:  account.ID,
		Kind:    models.CREATION_KIND_ARTICLE,
		Prompt:  prompt,
		Content: content,
	})
}

// GenerateBlogTitle writes short title text. Metered.
func (s *Service) GenerateBlogTitle(ctx context.Context, account models.Account, prompt string) Result {
	if strings.TrimSpace(prompt) == "" {
		return Fail(ErrKindInvalidInput, "Prompt is required.")
	}
	if err := s.Guard.Check(account, quota.OperationMetered); err != nil {
		return denied(err)
	}

	content, err := s.Text.Complete(ctx, prompt, blogTitleMaxTokens)
	if err != nil {
		s.Log.Error("blog title completion failed", "user_id", account.ID, "error", err)
		return Fail(ErrKindProviderFailure, err.Error())
	}

	return s.finish(ctx, account, models.Creation{
		UserID:  account.ID,
		Kind:    models.CREATION_KIND_BLOG_TITLE,
		Prompt:  prompt,
		Content: content,
	})
}

// GenerateImage synthesizes an image and stores it. Premium only. The
// publish flag is fixed at creation time; nothing in this service toggles
// it later.
func (s *Service) GenerateImage(ctx context.Context, account models.Account, prompt string, publish bool) Result {
	if len(strings.TrimSpace(prompt)) < 5 {
		return Fail(ErrKindInvalidInput, "Invalid prompt for image generation.")
	}
	if err := s.Guard.Check(account, quota.OperationPremiumOnly); err != nil {
		return denied(err)
	}

	image, err := s.Images.Generate(ctx, prompt)
	if err != nil {
		s.Log.Error("image synthesis failed", "user_id", account.ID, "error", err)
		return Fail(ErrKindProviderFailure, err.Error())
	}
	url, err := s.Store.Upload(ctx, image)
	if err != nil {
		s.Log.Error("image upload failed", "user_id", account.ID, "error", err)
		return Fail(ErrKindProviderFailure, err.Error())
	}

	return s.finish(ctx, account, models.Creation{
		UserID:  account.ID,
		Kind:    models.CREATION_KIND_IMAGE,
		Prompt:  prompt,
		Content: url,
		Publish: publish,
	})
}

// RemoveBackground strips the background from an uploaded image. Premium
// only.
func (s *Service) RemoveBackground(ctx context.Context, account models.Account, image []byte) Result {
	if len(image) == 0 {
		return Fail(ErrKindInvalidInput, "No image received")
	}
	if err := s.Guard.Check(account, quota.OperationPremiumOnly); err != nil {
		return denied(err)
	}

	url, err := s.Store.RemoveBackground(ctx, image)
	if err != nil {
		s.Log.Error("background removal failed", "user_id", account.ID, "error", err)
		return Fail(ErrKindProviderFailure, err.Error())
	}

	return s.finish(ctx, account, models.Creation{
		UserID:  account.ID,
		Kind:    models.CREATION_KIND_IMAGE,
		Prompt:  "Remove background from image",
		Content: url,
	})
}

// RemoveObject erases the described object from an uploaded image. Premium
// only.
func (s *Service) RemoveObject(ctx context.Context, account models.Account, image []byte, object string) Result {
	if len(image) == 0 {
		return Fail(ErrKindInvalidInput, "No file received.")
	}
	if strings.TrimSpace(object) == "" {
		return Fail(ErrKindInvalidInput, "Object description is required.")
	}
	if err := s.Guard.Check(account, quota.OperationPremiumOnly); err != nil {
		return denied(err)
	}

	url, err := s.Store.RemoveObject(ctx, image, object)
	if err != nil {
		s.Log.Error("object removal failed", "user_id", account.ID, "error", err)
		return Fail(ErrKindProviderFailure, err.Error())
	}

	return s.finish(ctx, account, models.Creation{
		UserID:  account.ID,
		Kind:    models.CREATION_KIND_IMAGE,
		Prompt:  fmt.Sprintf("Removed %s from image", object),
		Content: url,
	})
}

// ReviewResume extracts the resume text and asks the model for structured
// feedback. Premium only. The stored prompt is the fixed label, never the
// document content.
func (s *Service) ReviewResume(ctx context.Context, account models.Account, resume []byte) Result {
	if len(resume) == 0 {
		return Fail(ErrKindInvalidInput, "No file received. Please upload a PDF resume.")
	}
	if len(resume) > MaxResumeSize {
		return Fail(ErrKindPayloadTooLarge, "Resume file size exceeds allowed size (5MB).")
	}
	if err := s.Guard.Check(account, quota.OperationPremiumOnly); err != nil {
		return denied(err)
	}

	text, err := s.Documents.ExtractText(resume)
	if err != nil {
		s.Log.Error("resume extraction failed", "user_id", account.ID, "error", err)
		return Fail(ErrKindUnreadableDocument, err.Error())
	}

	content, err := s.Text.Complete(ctx, fmt.Sprintf(resumeReviewPromptTemplate, text), resumeReviewMaxTokens)
	if err != nil {
		s.Log.Error("resume review completion failed", "user_id", account.ID, "error", err)
		return Fail(ErrKindProviderFailure, err.Error())
	}

	return s.finish(ctx, account, models.Creation{
		UserID:  account.ID,
		Kind:    models.CREATION_KIND_RESUME_REVIEW,
		Prompt:  "Resume Review",
		Content: content,
	})
}

// finish persists the creation and then, and only then, commits the quota
// unit. A persistence failure surfaces to the caller and costs no unit even
// though the provider already did the work.
func (s *Service) finish(ctx context.Context, account models.Account, creation models.Creation) Result {
	creation.ID = uuid.NewString()
	if err := s.Creations.Insert(&creation); err != nil {
		s.Log.Error("creation insert failed", "user_id", account.ID, "kind", creation.Kind, "error", err)
		return Fail(ErrKindPersistenceFailure, "Could not save the result, please try again.")
	}

	s.Guard.Commit(ctx, account)

	s.Log.Info("creation persisted",
		"creation_id", creation.ID, "user_id", account.ID, "kind", creation.Kind)
	return Ok(creation.Content)
}

func denied(err error) Result {
	if errors.Is(err, quota.ErrPremiumRequired) {
		return Fail(ErrKindTierRequired, err.Error())
	}
	return Fail(ErrKindQuotaExceeded, err.Error())
}
