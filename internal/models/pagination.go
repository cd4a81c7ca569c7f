package models

// PageInfo is the out-of-band metadata that comes in the X-Pagination header
type PageInfo struct {
	TotalCount       int  `json:"totalCount"`
	TotalPeopleCount *int `json:"totalPeopleCount,omitempty"`
	PageSize         int  `json:"pageSize"`
	CurrentPage      int  `json:"currentPage"`
	TotalPages       int  `json:"totalPages"`
}

// DefaultPageInfo is used when a list response carries no usable pagination header
func DefaultPageInfo() PageInfo {
	return PageInfo{
		TotalCount:  0,
		PageSize:    0,
		CurrentPage: 1,
		TotalPages:  1,
	}
}

// Page combines pagination metadata with the items of a list response
type Page[T any] struct {
	PageInfo
	Data []T `json:"data"`
}
