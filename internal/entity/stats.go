package entity

import "time"

// RecentMaterial - короткая карточка материала для панели администратора
type RecentMaterial struct {
	ID            string     `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	University    University `json:"university" db:"university"`
	ViewCount     int64      `json:"view_count" db:"view_count"`
	DownloadCount int64      `json:"download_count" db:"download_count"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

type DashboardStats struct {
	TotalMaterials  int64                `json:"total_materials"`
	TotalViews      int64                `json:"total_views"`
	TotalDownloads  int64                `json:"total_downloads"`
	ByUniversity    map[University]int64 `json:"by_university"`
	RecentMaterials []*RecentMaterial    `json:"recent_materials"`
}
