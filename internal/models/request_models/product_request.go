package request_models

import "aurora/internal/models/db_models"

type CreateProductRequest struct {
	Name        string              `json:"name" form:"name"`
	Brand       string              `json:"brand" form:"brand"`
	Category    string              `json:"category" form:"category"`
	Description string              `json:"description" form:"description"`
	Price       float64             `json:"price" form:"price"`
	Stock       int                 `json:"stock" form:"stock"`
	SuitableFor db_models.CommaList `json:"suitable_for"`
	Targets     db_models.CommaList `json:"targets"`
	WhenToApply db_models.CommaList `json:"when_to_apply"`
}

type UpdateProductRequest struct {
	Name        *string              `json:"name"`
	Brand       *string              `json:"brand"`
	Category    *string              `json:"category"`
	Description *string              `json:"description"`
	Price       *float64             `json:"price"`
	Stock       *int                 `json:"stock"`
	SuitableFor *db_models.CommaList `json:"suitable_for"`
	Targets     *db_models.CommaList `json:"targets"`
	WhenToApply *db_models.CommaList `json:"when_to_apply"`
}
