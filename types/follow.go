package types

type GetFollowingListRequest struct {
	Cursor   int `form:"cursor"`
	PageSize int `form:"page_size"`
}

type GetFollowingListResponse struct {
	Following []UserBrief `json:"following"`
	Total     int64       `json:"total"`
	HasMore   bool        `json:"has_more"`
}
