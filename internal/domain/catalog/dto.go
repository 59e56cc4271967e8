// internal/domain/catalog/dto.go
package catalog

type ProductListFilters struct {
	TierLevel *int `form:"tier_level"`
	Page      int  `form:"page"`
	PageSize  int  `form:"page_size"`
}

type ProductListResponse struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}
