package response_models

import "aurora/internal/models/db_models"

type ImageResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	URL         string `json:"image"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	UploadedAt  string `json:"uploaded_at"`
}

func NewImageResponse(img *db_models.UploadedImage, uploadedAt string) ImageResponse {
	return ImageResponse{
		ID:          img.ID.String(),
		UserID:      img.AccountID.String(),
		URL:         img.URL,
		ContentType: img.ContentType,
		SizeBytes:   img.SizeBytes,
		UploadedAt:  uploadedAt,
	}
}
