package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"aurora/internal/access"
	"aurora/internal/config"
	"aurora/internal/models/db_models"
	"aurora/internal/models/request_models"
	"aurora/internal/models/response_models"
	"aurora/internal/repositories"
	"aurora/pkg/storage"
	"aurora/pkg/utils"
)

type ImageServiceInterface interface {
	Upload(ctx context.Context, caller access.Principal, data []byte) (*response_models.ImageResponse, error)
	ListImages(ctx context.Context, caller access.Principal, page, pageSize int) ([]response_models.ImageResponse, error)
	GetImage(ctx context.Context, caller access.Principal, id string) (*response_models.ImageResponse, error)
	DeleteImage(ctx context.Context, caller access.Principal, id string) error
	// Analyze records a result computed elsewhere and resolves its product
	// recommendations against the catalog. body is the raw JSON document.
	Analyze(ctx context.Context, caller access.Principal, id string, body []byte) (map[string]interface{}, error)
}

type ImageService struct {
	imageRepo   repositories.ImageRepositoryInterface
	productRepo repositories.ProductRepository
	objects     storage.ObjectStore
	gateway     *access.Gateway
	maxBytes    int64
	log         *zap.Logger
}

func NewImageService(
	imageRepo repositories.ImageRepositoryInterface,
	productRepo repositories.ProductRepository,
	objects storage.ObjectStore,
	gateway *access.Gateway,
	cfg config.StorageConfig,
	log *zap.Logger,
) *ImageService {
	return &ImageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		objects:     objects,
		gateway:     gateway,
		maxBytes:    cfg.MaxUploadBytes,
		log:         log.Named("images"),
	}
}

func imageFieldError(message string) error {
	verr := utils.NewValidationError()
	verr.Add("image", message)
	return verr
}

func (s *ImageService) Upload(ctx context.Context, caller access.Principal, data []byte) (*response_models.ImageResponse, error) {
	if !s.gateway.AuthorizeOwn(caller, access.ResourceImage, access.ActionWrite) {
		return nil, denied(caller)
	}

	if len(data) == 0 {
		return nil, imageFieldError("No file was submitted.")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, imageFieldError(fmt.Sprintf("File too large; the limit is %d bytes.", s.maxBytes))
	}

	contentType, ext, err := storage.DetectImage(data)
	if err != nil {
		return nil, imageFieldError("Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}

	owner, err := uuid.Parse(caller.UserID)
	if err != nil {
		return nil, utils.ErrUnauthenticated
	}

	key := storage.ObjectKey("images", ext, time.Now().UTC())
	url, err := s.objects.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		s.log.Error("store image", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrStorage, err)
	}

	image := &db_models.UploadedImage{
		AccountID:   owner,
		StorageKey:  key,
		URL:         url,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}
	if err := s.imageRepo.CreateImage(ctx, image); err != nil {
		_ = s.objects.Delete(ctx, key)
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	s.log.Info("image uploaded",
		zap.String("image_id", image.ID.String()),
		zap.String("content_type", contentType),
		zap.Int64("size", image.SizeBytes))

	resp := toImageResponse(image)
	return &resp, nil
}

func toImageResponse(image *db_models.UploadedImage) response_models.ImageResponse {
	return response_models.NewImageResponse(image, utils.FormatUnixRFC3339(image.CreatedAt))
}

// ListImages returns the caller's own images, or every image for staff.
func (s *ImageService) ListImages(ctx context.Context, caller access.Principal, page, pageSize int) ([]response_models.ImageResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	var owner string
	switch {
	case s.gateway.Authorize(caller, access.ResourceImage, access.ActionRead, ""):
	case s.gateway.AuthorizeOwn(caller, access.ResourceImage, access.ActionRead):
		owner = caller.UserID
	default:
		return nil, denied(caller)
	}

	images, err := s.imageRepo.ListImages(ctx, owner, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	return lo.Map(images, func(img db_models.UploadedImage, _ int) response_models.ImageResponse {
		return toImageResponse(&img)
	}), nil
}

// load fetches an image and checks act against its owner. A caller who may
// not see the image gets ErrNotFound rather than learning it exists.
func (s *ImageService) load(ctx context.Context, caller access.Principal, id string, act access.Action) (*db_models.UploadedImage, error) {
	if !caller.Authenticated() {
		return nil, utils.ErrUnauthenticated
	}
	id, ok := parseID(id)
	if !ok {
		return nil, utils.ErrNotFound
	}

	image, err := s.imageRepo.GetImage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if image == nil {
		return nil, utils.ErrNotFound
	}

	owner := image.AccountID.String()
	if !s.gateway.Authorize(caller, access.ResourceImage, act, owner) {
		if s.gateway.Authorize(caller, access.ResourceImage, access.ActionRead, owner) {
			return nil, utils.ErrForbidden
		}
		return nil, utils.ErrNotFound
	}
	return image, nil
}

func (s *ImageService) GetImage(ctx context.Context, caller access.Principal, id string) (*response_models.ImageResponse, error) {
	image, err := s.load(ctx, caller, id, access.ActionRead)
	if err != nil {
		return nil, err
	}
	resp := toImageResponse(image)
	return &resp, nil
}

func (s *ImageService) DeleteImage(ctx context.Context, caller access.Principal, id string) error {
	image, err := s.load(ctx, caller, id, access.ActionDelete)
	if err != nil {
		return err
	}

	if err := s.imageRepo.DeleteImage(ctx, image.ID.String()); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if err := s.objects.Delete(ctx, image.StorageKey); err != nil {
		s.log.Warn("delete stored image", zap.String("key", image.StorageKey), zap.Error(err))
	}
	return nil
}

func (s *ImageService) Analyze(ctx context.Context, caller access.Principal, id string, body []byte) (map[string]interface{}, error) {
	image, err := s.load(ctx, caller, id, access.ActionWrite)
	if err != nil {
		return nil, err
	}

	var payload map[string]interface{}
	var request request_models.AnalyzeImageRequest
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		verr := utils.NewValidationError()
		verr.Add("non_field_errors", "Invalid JSON body.")
		return nil, verr
	}
	if err := json.Unmarshal(body, &request); err != nil {
		verr := utils.NewValidationError()
		verr.Add("non_field_errors", fmt.Sprintf("Malformed analysis result: %v", err))
		return nil, verr
	}

	verr := utils.NewValidationError()
	if request.Condition == nil {
		verr.Add("condition", "Missing required field: condition")
	}
	if request.Confidence == nil {
		verr.Add("confidence", "Missing required field: confidence")
	}
	if request.RecommendationType == nil {
		verr.Add("recommendation_type", "Missing required field: recommendation_type")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	analysis := &db_models.AnalysisResult{
		ImageID:            image.ID,
		AccountID:          image.AccountID,
		Condition:          *request.Condition,
		Confidence:         *request.Confidence,
		RecommendationType: *request.RecommendationType,
		Message:            request.Message,
		Payload:            datatypes.JSON(body),
	}
	if err := s.imageRepo.CreateAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if _, present := payload["recommendations"]; !present {
		return payload, nil
	}

	names := lo.Uniq(lo.Compact(lo.Map(request.Recommendations, func(r request_models.Recommendation, _ int) string {
		return strings.TrimSpace(r.Product)
	})))
	if len(names) == 0 {
		return payload, nil
	}

	products, err := s.productRepo.FindByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	payload["products"] = MatchProducts(products, *request.Condition)
	delete(payload, "recommendations")
	return payload, nil
}

// MatchProducts keeps the products whose category, or one of whose
// suitable_for labels, mentions condition.
func MatchProducts(products []db_models.Product, condition string) []db_models.Product {
	condition = strings.ToLower(strings.TrimSpace(condition))
	return lo.Filter(products, func(p db_models.Product, _ int) bool {
		if strings.Contains(strings.ToLower(p.Category), condition) {
			return true
		}
		return lo.ContainsBy(p.SuitableFor, func(label string) bool {
			return strings.Contains(strings.ToLower(label), condition)
		})
	})
}
