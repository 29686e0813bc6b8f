package db_models

// Category is a fixed classification tag. Rows are created by the seeder only.
type Category struct {
	CategoryID   uint    `gorm:"column:category_id;primaryKey;autoIncrement"`
	CategoryName string  `gorm:"column:category_name;size:50;unique;not null"`
	Events       []Event `gorm:"foreignKey:CategoryID;references:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Category) TableName() string {
	return "category"
}
