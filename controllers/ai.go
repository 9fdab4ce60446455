package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GenerateArticleRequest struct {
	Prompt string `json:"prompt" form:"prompt"`
	Length int    `json:"length" form:"length"`
}

type GenerateBlogTitleRequest struct {
	Prompt string `json:"prompt" form:"prompt"`
}

type GenerateImageRequest struct {
	Prompt  string `json:"prompt" form:"prompt"`
	Publish bool   `json:"publish" form:"publish"`
}

// POST /api/ai/generate-article
func GenerateArticle(c *gin.Context) {
	account, ok := GetAccount(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req GenerateArticleRequest
	if err := c.Bind(&req); err != nil {
		RespondMessage(c, false, err.Error())
		return
	}

	RespondResult(c, ai.GenerateArticle(c.Request.Context(), account, req.Prompt, req.Length))
}

// POST /api/ai/generate-blog-title
func GenerateBlogTitle(c *gin.Context) {
	account, ok := GetAccount(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req GenerateBlogTitleRequest
	if err := c.Bind(&req); err != nil {
		RespondMessage(c, false, err.Error())
		return
	}

	RespondResult(c, ai.GenerateBlogTitle(c.Request.Context(), account, req.Prompt))
}

// POST /api/ai/generate-image
func GenerateImage(c *gin.Context) {
	account, ok := GetAccount(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req GenerateImageRequest
	if err := c.Bind(&req); err != nil {
		RespondMessage(c, false, err.Error())
		return
	}

	RespondResult(c, ai.GenerateImage(c.Request.Context(), account, req.Prompt, req.Publish))
}

// POST /api/ai/remove-image-background (multipart, field "image")
func RemoveImageBackground(c *gin.Context) {
	account, ok := GetAccount(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	image, err := readUpload(c, "image")
	if err != nil {
		RespondMessage(c, false, "Could not read the uploaded file.")
		return
	}

	RespondResult(c, ai.RemoveBackground(c.Request.Context(), account, image))
}

// POST /api/ai/remove-image-object (multipart, field "image" + "object")
func RemoveImageObject(c *gin.Context) {
	account, ok := GetAccount(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	image, err := readUpload(c, "image")
	if err != nil {
		RespondMessage(c, false, "Could not read the uploaded file.")
		return
	}
	object := c.PostForm("object")

	RespondResult(c, ai.RemoveObject(c.Request.Context(), account, image, object))
}

// POST /api/ai/resume-review (multipart, field "resume")
func ResumeReview(c *gin.Context) {
	account, ok := GetAccount(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	resume, err := readUpload(c, "resume")
	if err != nil {
		RespondMessage(c, false, "Could not read the uploaded file.")
		return
	}

	RespondResult(c, ai.ReviewResume(c.Request.Context(), account, resume))
}

// readUpload reads one multipart file field fully. A missing field comes
// back as (nil, nil); the pipeline owns the "no file" and size rejections
// so the taxonomy stays in one place. Anything else that keeps us from
// reading the bytes is an error the handler must report.
func readUpload(c *gin.Context, field string) ([]byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return data, nil
}
