package db_models

type Product struct {
	BaseModel
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Brand       string    `json:"brand"`
	Category    string    `gorm:"index" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null;default:0" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	ImageURL    string    `json:"image"`
	ImageKey    string    `json:"-"`
	SuitableFor CommaList `json:"suitable_for"`
	Targets     CommaList `json:"targets"`
	WhenToApply CommaList `json:"when_to_apply"`
}
