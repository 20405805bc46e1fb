package types

type PostDTO struct {
	Id           int64     `json:"id"`
	Author       UserBrief `json:"author"`
	URL          string    `json:"url"`
	Caption      string    `json:"caption"`
	Status       int       `json:"status"`
	LikeCount    uint32    `json:"like_count"`
	CommentCount uint32    `json:"comment_count"`
	CreatedAt    int64     `json:"created_at"`
}

type CreatePostResp struct {
	PostId int64  `json:"post_id"`
	URL    string `json:"url"`
}

type ListPostsRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type ReviewPostRequest struct {
	// approve / reject
	Action string `json:"action" binding:"required,oneof=approve reject"`
}
